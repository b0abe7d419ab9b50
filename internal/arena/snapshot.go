package arena

import "math"

// MoverState is the position of one mover in a snapshot.
type MoverState struct {
	Name string  `yaml:"name"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

// Snapshot is a read-only copy of a round, taken after Advance, that a
// renderer can draw without holding the round.
type Snapshot struct {
	Frame      uint64       `yaml:"frame"`
	Phase      string       `yaml:"phase"`
	LeftY      float64      `yaml:"left_y"`
	RightY     float64      `yaml:"right_y"`
	BallActive bool         `yaml:"ball_active"`
	BallX      float64      `yaml:"ball_x"`
	BallY      float64      `yaml:"ball_y"`
	BallVX     float64      `yaml:"ball_vx"`
	BallVY     float64      `yaml:"ball_vy"`
	SpawnTimer float64      `yaml:"spawn_timer"`
	ScoreLeft  uint32       `yaml:"score_left"`
	ScoreRight uint32       `yaml:"score_right"`
	Movers     []MoverState `yaml:"movers,omitempty"`
}

// Snapshot returns the current round state.
func (r *Round) Snapshot() Snapshot {
	snap := Snapshot{
		Frame:      r.frame,
		Phase:      r.Phase().String(),
		LeftY:      r.paddles[Left].Y,
		RightY:     r.paddles[Right].Y,
		ScoreLeft:  r.scores[Left],
		ScoreRight: r.scores[Right],
	}

	if r.ball != nil {
		snap.BallActive = true
		snap.BallX = r.ball.X
		snap.BallY = r.ball.Y
		snap.BallVX = r.ball.VX
		snap.BallVY = r.ball.VY
	} else {
		snap.SpawnTimer = r.spawnTimer
	}

	if len(r.movers) > 0 {
		snap.Movers = make([]MoverState, len(r.movers))
		for i, m := range r.movers {
			snap.Movers[i] = MoverState{Name: m.Name, X: m.X, Y: m.Y}
		}
	}

	return snap
}

// Hash folds every field of the snapshot into a single value for
// determinism checks.
func (s Snapshot) Hash() uint64 {
	h := s.Frame
	mix := func(v uint64) {
		h = h*31 + v
	}
	mixF := func(f float64) {
		mix(math.Float64bits(f))
	}

	mixF(s.LeftY)
	mixF(s.RightY)
	if s.BallActive {
		mix(1)
	} else {
		mix(0)
	}
	mixF(s.BallX)
	mixF(s.BallY)
	mixF(s.BallVX)
	mixF(s.BallVY)
	mixF(s.SpawnTimer)
	mix(uint64(s.ScoreLeft))
	mix(uint64(s.ScoreRight))

	for _, m := range s.Movers {
		for _, c := range []byte(m.Name) {
			mix(uint64(c))
		}
		mixF(m.X)
		mixF(m.Y)
	}

	return h
}
