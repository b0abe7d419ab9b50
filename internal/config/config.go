// Package config loads arena configuration from YAML or TOML files and
// applies difficulty presets and match rules on top of it.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-pong/internal/arena"
)

// ErrInvalidMatch is returned for match rules that cannot be played.
var ErrInvalidMatch = errors.New("config: invalid match rules")

// File is the on-disk shape of an arena configuration.
type File struct {
	Arena  ArenaSection  `yaml:"arena" toml:"arena"`
	Paddle PaddleSection `yaml:"paddle" toml:"paddle"`
	Ball   BallSection   `yaml:"ball" toml:"ball"`
	Round  RoundSection  `yaml:"round" toml:"round"`
	Mover  MoverSection  `yaml:"mover" toml:"mover"`
	Match  MatchSection  `yaml:"match" toml:"match"`

	// Source is where the file was read from ("embedded" for the default).
	Source string `yaml:"-" toml:"-"`
}

// ArenaSection defines the playing field.
type ArenaSection struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// PaddleSection defines both paddles.
type PaddleSection struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
	Speed  float64 `yaml:"speed" toml:"speed"`
}

// BallSection defines the ball and its serve velocity.
type BallSection struct {
	Radius    float64 `yaml:"radius" toml:"radius"`
	VelocityX float64 `yaml:"velocity_x" toml:"velocity_x"`
	VelocityY float64 `yaml:"velocity_y" toml:"velocity_y"`
}

// RoundSection defines round timing.
type RoundSection struct {
	SpawnDelay float64 `yaml:"spawn_delay" toml:"spawn_delay"`
}

// MoverSection defines the free-moving entity of the brave variant.
type MoverSection struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
	Speed  float64 `yaml:"speed" toml:"speed"`
}

// MatchSection defines when a match ends.
type MatchSection struct {
	WinScore int `yaml:"win_score" toml:"win_score"` // 0 plays forever
}

// Default returns the built-in configuration.
func Default() File {
	d := arena.DefaultConfig()
	return File{
		Arena:  ArenaSection{Width: d.ArenaWidth, Height: d.ArenaHeight},
		Paddle: PaddleSection{Width: d.PaddleWidth, Height: d.PaddleHeight, Speed: d.PaddleSpeed},
		Ball:   BallSection{Radius: d.BallRadius, VelocityX: d.BallVelocityX, VelocityY: d.BallVelocityY},
		Round:  RoundSection{SpawnDelay: d.SpawnDelay},
		Mover:  MoverSection{Width: d.MoverWidth, Height: d.MoverHeight, Speed: d.MoverSpeed},
		Match:  MatchSection{WinScore: 5},
		Source: "builtin",
	}
}

// ArenaConfig converts the file into a simulation config.
func (f File) ArenaConfig() arena.Config {
	return arena.Config{
		ArenaWidth:    f.Arena.Width,
		ArenaHeight:   f.Arena.Height,
		PaddleWidth:   f.Paddle.Width,
		PaddleHeight:  f.Paddle.Height,
		PaddleSpeed:   f.Paddle.Speed,
		BallRadius:    f.Ball.Radius,
		BallVelocityX: f.Ball.VelocityX,
		BallVelocityY: f.Ball.VelocityY,
		SpawnDelay:    f.Round.SpawnDelay,
		MoverWidth:    f.Mover.Width,
		MoverHeight:   f.Mover.Height,
		MoverSpeed:    f.Mover.Speed,
	}
}

// Validate checks the arena geometry and the match rules.
func (f File) Validate() error {
	if err := f.ArenaConfig().Validate(); err != nil {
		return fmt.Errorf("config: %s: %w", f.Source, err)
	}
	if f.Match.WinScore < 0 {
		return fmt.Errorf("%w: win_score %d is negative", ErrInvalidMatch, f.Match.WinScore)
	}
	return nil
}
