package core

import "time"

// RuntimeConfig describes the terminal a round is rendered to and how the
// frame clock runs.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Frames per second requested from the clock

	// MaxFrameDelta caps the dt handed to the simulation after a stall
	// (suspended terminal, slow SSH link).
	MaxFrameDelta time.Duration
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:       80,
		ScreenH:       24,
		TickRate:      60,
		MaxFrameDelta: 250 * time.Millisecond,
	}
}

// FrameInterval returns the wall-clock time between frames.
func (c RuntimeConfig) FrameInterval() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// FrameDelta converts the time between two frames to simulation seconds,
// clamped to [0, MaxFrameDelta].
func (c RuntimeConfig) FrameDelta(prev, now time.Time) float64 {
	if prev.IsZero() {
		return c.FrameInterval().Seconds()
	}
	d := now.Sub(prev)
	if d < 0 {
		d = 0
	}
	if c.MaxFrameDelta > 0 && d > c.MaxFrameDelta {
		d = c.MaxFrameDelta
	}
	return d.Seconds()
}
