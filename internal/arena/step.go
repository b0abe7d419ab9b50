package arena

import (
	"errors"
	"fmt"
	"math"
)

// maxSubsteps bounds the work done for one frame regardless of dt.
const maxSubsteps = 64

var (
	// ErrInvalidDelta is returned for negative, NaN or infinite frame times
	// and for frames longer than Config.MaxDelta.
	ErrInvalidDelta = errors.New("arena: invalid frame delta")
	// ErrNilRound is returned when Advance is called without a round.
	ErrNilRound = errors.New("arena: nil round")
)

// Advance moves the simulation forward by dt seconds.
//
// Order within a frame: paddles, movers, then either the spawn timer (no
// ball) or ball integration with collisions (ball in play). A ball is not
// integrated in the frame it spawns. A zero dt is a no-op that emits
// nothing. A negative, non-finite or longer than Config.MaxDelta dt is
// rejected and the round is left as is.
func Advance(r *Round, dt float64, in InputSampler) ([]Event, error) {
	if r == nil {
		return nil, ErrNilRound
	}
	if !finite(dt) || dt < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDelta, dt)
	}
	if limit := r.cfg.MaxDelta(); dt > limit {
		return nil, fmt.Errorf("%w: %v exceeds the %v maximum", ErrInvalidDelta, dt, limit)
	}
	if dt == 0 {
		return nil, nil
	}
	if in == nil {
		in = NoInput
	}

	r.frame++

	var events []Event
	events = r.movePaddles(dt, in, events)
	events = r.moveMovers(dt, in, events)

	if r.ball == nil {
		res := Tick(r.spawnTimer, dt)
		if res.Fired {
			r.spawnTimer = 0
			r.spawnBall()
			events = append(events, BallSpawned())
		} else {
			r.spawnTimer = res.Remaining
		}
		return events, nil
	}

	return r.stepBall(dt, events), nil
}

// movePaddles applies each paddle's axis. Only an actual change of
// position emits PaddleMoved.
func (r *Round) movePaddles(dt float64, in InputSampler, events []Event) []Event {
	for i := range r.paddles {
		p := &r.paddles[i]
		mv := sampleAxis(in, p.Axis)
		if mv == 0 {
			continue
		}

		half := p.Height / 2
		y := clampF(p.Y+mv*r.cfg.PaddleSpeed*dt, half, r.cfg.ArenaHeight-half)
		if y == p.Y {
			continue
		}
		p.Y = y
		events = append(events, PaddleMoved(p.Side))
	}
	return events
}

// moveMovers applies the X and Y axes of every mover independently.
func (r *Round) moveMovers(dt float64, in InputSampler, events []Event) []Event {
	for i := range r.movers {
		m := &r.movers[i]
		mx := sampleAxis(in, m.AxisX)
		my := sampleAxis(in, m.AxisY)
		if mx == 0 && my == 0 {
			continue
		}

		moved := *m
		moved.X += mx * r.cfg.MoverSpeed * dt
		moved.Y += my * r.cfg.MoverSpeed * dt
		moved = clampMover(moved, r.cfg)
		if moved.X == m.X && moved.Y == m.Y {
			continue
		}
		*m = moved
		events = append(events, MoverMoved(m.Name))
	}
	return events
}

// stepBall integrates the ball over dt, splitting the frame so that no
// sub-step moves the ball further than its radius.
func (r *Round) stepBall(dt float64, events []Event) []Event {
	n := substeps(*r.ball, dt)
	h := dt / float64(n)

	for range n {
		if side, scored := r.integrateBall(h); scored {
			return append(events, r.score(side))
		}
	}
	return events
}

// integrateBall performs one resolution pass: integrate, top/bottom walls,
// paddles, then end walls. Wall resolution runs before the paddle test so
// the paddle sees the post-reflection position.
func (r *Round) integrateBall(h float64) (Side, bool) {
	b := r.ball
	b.X += b.VX * h
	b.Y += b.VY * h

	r.resolveWalls(b)
	r.resolvePaddles(b)

	switch {
	case b.X-b.Radius <= 0:
		return Right, true
	case b.X+b.Radius >= r.cfg.ArenaWidth:
		return Left, true
	}
	return 0, false
}

// resolveWalls reflects VY when the ball touches the floor or ceiling while
// moving into it, then clamps Y back inside.
func (r *Round) resolveWalls(b *Ball) {
	top := r.cfg.ArenaHeight - b.Radius
	switch {
	case b.Y-b.Radius <= 0:
		if b.VY < 0 {
			b.VY = -b.VY
		}
	case b.Y+b.Radius >= r.cfg.ArenaHeight:
		if b.VY > 0 {
			b.VY = -b.VY
		}
	}
	b.Y = clampF(b.Y, b.Radius, top)
}

// resolvePaddles reflects VX off the first paddle the ball overlaps and
// places it one radius in front of that paddle's face.
func (r *Round) resolvePaddles(b *Ball) {
	for _, p := range r.paddles {
		if !b.approaching(p) || !b.overlaps(p) {
			continue
		}
		b.VX = -b.VX
		if p.Side == Left {
			b.X = p.Face() + b.Radius
		} else {
			b.X = p.Face() - b.Radius
		}
		return
	}
}

// substeps returns how many passes dt needs for the ball.
func substeps(b Ball, dt float64) int {
	travel := b.Speed() * dt
	if b.Radius <= 0 || travel <= b.Radius {
		return 1
	}
	n := int(math.Ceil(travel / b.Radius))
	return min(max(n, 1), maxSubsteps)
}

// clampMover keeps a mover fully inside the arena.
func clampMover(m Mover, cfg Config) Mover {
	hw, hh := m.Width/2, m.Height/2
	m.X = clampF(m.X, hw, cfg.ArenaWidth-hw)
	m.Y = clampF(m.Y, hh, cfg.ArenaHeight-hh)
	return m
}

// clampF restricts v to [lo, hi].
func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
