package tui

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/arena"
)

// DefaultHoldDuration is how long a single key press keeps its axis
// deflected. Terminals report key presses and auto-repeats but never
// releases, so a held key looks like a stream of presses.
const DefaultHoldDuration = 150 * time.Millisecond

type heldKey struct {
	value float64
	until time.Time
}

// KeyAxes is an arena.InputSampler fed by key presses. A press holds its
// axis at a fixed value until the hold expires; after that, and for axes
// never pressed, the axis reports no reading.
type KeyAxes struct {
	hold time.Duration
	now  time.Time
	held map[arena.AxisID]heldKey
}

// NewKeyAxes creates a sampler with the given hold duration.
// A non-positive hold uses DefaultHoldDuration.
func NewKeyAxes(hold time.Duration) *KeyAxes {
	if hold <= 0 {
		hold = DefaultHoldDuration
	}
	return &KeyAxes{
		hold: hold,
		held: make(map[arena.AxisID]heldKey),
	}
}

// Press deflects an axis starting at the given time. A later press on
// the same axis replaces the earlier one.
func (k *KeyAxes) Press(axis arena.AxisID, value float64, at time.Time) {
	k.held[axis] = heldKey{value: value, until: at.Add(k.hold)}
}

// SetTime moves the sampler's clock to the current frame.
func (k *KeyAxes) SetTime(now time.Time) {
	k.now = now
}

// Reset drops every held key.
func (k *KeyAxes) Reset() {
	clear(k.held)
}

// Sample implements arena.InputSampler.
func (k *KeyAxes) Sample(axis arena.AxisID) (float64, bool) {
	h, ok := k.held[axis]
	if !ok {
		return 0, false
	}
	if !k.now.Before(h.until) {
		delete(k.held, axis)
		return 0, false
	}
	return h.value, true
}

// loggingSampler reports at debug level when an axis stops producing
// readings. It logs transitions only so an idle axis does not flood the log.
type loggingSampler struct {
	in      arena.InputSampler
	logger  *log.Logger
	reading map[arena.AxisID]bool
}

func newLoggingSampler(in arena.InputSampler, logger *log.Logger) *loggingSampler {
	return &loggingSampler{
		in:      in,
		logger:  logger,
		reading: make(map[arena.AxisID]bool),
	}
}

func (s *loggingSampler) Sample(axis arena.AxisID) (float64, bool) {
	v, ok := s.in.Sample(axis)
	if ok != s.reading[axis] {
		if ok {
			s.logger.Debug("axis reading", "axis", axis, "value", v)
		} else {
			s.logger.Debug("no reading", "axis", axis)
		}
		s.reading[axis] = ok
	}
	return v, ok
}
