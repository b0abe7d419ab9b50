// Package brave registers the pong variant with an extra free-moving
// entity driven by its own pair of axes.
package brave

import (
	"github.com/vovakirdan/tui-pong/internal/arena"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/registry"
)

const (
	ID        = "brave"
	MoverName = "brave"
)

// Axes lists the inputs a brave round reads: both paddles, then the mover.
var Axes = append(append([]arena.AxisID(nil), pong.Axes...), arena.AxisBraveX, arena.AxisBraveY)

// New builds a pong round with the brave mover at the arena centre.
func New(cfg arena.Config) (*arena.Round, error) {
	return arena.NewRound(cfg,
		arena.WithPaddleAxes(arena.AxisLeftPaddle, arena.AxisRightPaddle),
		arena.WithMover(arena.NewMover(MoverName, arena.AxisBraveX, arena.AxisBraveY, cfg)),
	)
}

func init() {
	registry.Register(registry.Info{
		ID:    ID,
		Title: "Pong + Brave",
		Axes:  Axes,
	}, New)
}
