// Package pong registers the classic two-paddle arena variant.
// The left paddle reads AxisLeftPaddle and the right paddle AxisRightPaddle.
package pong

import (
	"github.com/vovakirdan/tui-pong/internal/arena"
	"github.com/vovakirdan/tui-pong/internal/registry"
)

// ID is the variant identifier used on the command line and in match history.
const ID = "pong"

// Axes lists the inputs a pong round reads.
var Axes = []arena.AxisID{arena.AxisLeftPaddle, arena.AxisRightPaddle}

// New builds a classic round: two paddles, one ball, no movers.
func New(cfg arena.Config) (*arena.Round, error) {
	return arena.NewRound(cfg, arena.WithPaddleAxes(arena.AxisLeftPaddle, arena.AxisRightPaddle))
}

func init() {
	registry.Register(registry.Info{
		ID:    ID,
		Title: "Pong",
		Axes:  Axes,
	}, New)
}
