// Package arena implements the deterministic Pong simulation core:
// paddle movement from input axes, delayed ball spawning, ball motion with
// wall and paddle collision, and scoring.
// It has no dependencies outside the standard library and performs no I/O,
// so the platform layer can drive it from any frame clock.
package arena

import (
	"errors"
	"fmt"
	"math"
)

// Default geometry, matching the classic 100x100 arena.
const (
	DefaultArenaWidth    = 100.0
	DefaultArenaHeight   = 100.0
	DefaultPaddleWidth   = 4.0
	DefaultPaddleHeight  = 16.0
	DefaultPaddleSpeed   = 75.0 // Units per second at full axis deflection
	DefaultBallRadius    = 2.0
	DefaultBallVelocityX = 75.0
	DefaultBallVelocityY = 50.0
	DefaultSpawnDelay    = 1.0 // Seconds before the ball appears
	DefaultMoverWidth    = 4.0
	DefaultMoverHeight   = 4.0
	DefaultMoverSpeed    = 50.0
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("arena: invalid config")

// Config holds the static arena geometry and speeds.
// A Round copies it at creation; changing a Config afterwards has no effect
// on rounds already built from it.
type Config struct {
	ArenaWidth  float64
	ArenaHeight float64

	PaddleWidth  float64
	PaddleHeight float64
	PaddleSpeed  float64

	BallRadius    float64
	BallVelocityX float64
	BallVelocityY float64

	SpawnDelay float64

	MoverWidth  float64
	MoverHeight float64
	MoverSpeed  float64
}

// DefaultConfig returns the classic arena configuration.
func DefaultConfig() Config {
	return Config{
		ArenaWidth:    DefaultArenaWidth,
		ArenaHeight:   DefaultArenaHeight,
		PaddleWidth:   DefaultPaddleWidth,
		PaddleHeight:  DefaultPaddleHeight,
		PaddleSpeed:   DefaultPaddleSpeed,
		BallRadius:    DefaultBallRadius,
		BallVelocityX: DefaultBallVelocityX,
		BallVelocityY: DefaultBallVelocityY,
		SpawnDelay:    DefaultSpawnDelay,
		MoverWidth:    DefaultMoverWidth,
		MoverHeight:   DefaultMoverHeight,
		MoverSpeed:    DefaultMoverSpeed,
	}
}

// Validate checks that the configuration describes a playable arena.
func (c Config) Validate() error {
	positive := []struct {
		name string
		val  float64
	}{
		{"arena width", c.ArenaWidth},
		{"arena height", c.ArenaHeight},
		{"paddle width", c.PaddleWidth},
		{"paddle height", c.PaddleHeight},
		{"paddle speed", c.PaddleSpeed},
		{"ball radius", c.BallRadius},
		{"mover width", c.MoverWidth},
		{"mover height", c.MoverHeight},
		{"mover speed", c.MoverSpeed},
	}
	for _, p := range positive {
		if !finite(p.val) || p.val <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, p.name, p.val)
		}
	}

	if !finite(c.BallVelocityX) || !finite(c.BallVelocityY) {
		return fmt.Errorf("%w: ball velocity must be finite", ErrInvalidConfig)
	}
	if c.BallVelocityX == 0 {
		return fmt.Errorf("%w: ball velocity x must be non-zero", ErrInvalidConfig)
	}
	if !finite(c.SpawnDelay) || c.SpawnDelay < 0 {
		return fmt.Errorf("%w: spawn delay must be >= 0, got %v", ErrInvalidConfig, c.SpawnDelay)
	}

	if c.PaddleHeight > c.ArenaHeight {
		return fmt.Errorf("%w: paddle height %v exceeds arena height %v", ErrInvalidConfig, c.PaddleHeight, c.ArenaHeight)
	}
	if 2*c.PaddleWidth >= c.ArenaWidth {
		return fmt.Errorf("%w: paddles overlap in a %v wide arena", ErrInvalidConfig, c.ArenaWidth)
	}
	if 2*c.BallRadius >= c.ArenaHeight || 2*c.BallRadius >= c.ArenaWidth {
		return fmt.Errorf("%w: ball radius %v does not fit the arena", ErrInvalidConfig, c.BallRadius)
	}
	if c.MoverWidth > c.ArenaWidth || c.MoverHeight > c.ArenaHeight {
		return fmt.Errorf("%w: mover does not fit the arena", ErrInvalidConfig)
	}

	return nil
}

// BallSpeed returns the magnitude of the configured serve velocity.
func (c Config) BallSpeed() float64 {
	return math.Hypot(c.BallVelocityX, c.BallVelocityY)
}

// MaxDelta is the longest frame Advance accepts. Within it the ball is
// resolved in at most maxSubsteps passes of no more than one radius each.
func (c Config) MaxDelta() float64 {
	return maxSubsteps * c.BallRadius / c.BallSpeed()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
