package arena

import "math"

// Phase describes the round state machine.
type Phase int

const (
	PhaseWaiting Phase = iota // No ball; spawn timer counting down
	PhaseInPlay               // Ball in play
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhaseInPlay:
		return "in_play"
	default:
		return "unknown"
	}
}

// Round owns every entity of a match: exactly two paddles, at most one ball,
// the spawn timer, the scores and any movers.
// Its fields are only changed by Advance; accessors return copies.
type Round struct {
	cfg        Config
	paddles    [2]Paddle // Indexed by Side
	ball       *Ball
	spawnTimer float64 // Valid while ball == nil
	scores     [2]uint32
	movers     []Mover
	serveTo    Side // Horizontal direction of the next serve
	frame      uint64
}

// Option customises a new round.
type Option func(*Round)

// WithPaddleAxes binds the paddles to input axes.
// By default they read AxisLeftPaddle and AxisRightPaddle.
func WithPaddleAxes(left, right AxisID) Option {
	return func(r *Round) {
		r.paddles[Left].Axis = left
		r.paddles[Right].Axis = right
	}
}

// WithMover adds an axis-driven mover to the round.
func WithMover(m Mover) Option {
	return func(r *Round) {
		r.movers = append(r.movers, m)
	}
}

// NewRound creates a round in the waiting phase with the spawn timer armed.
func NewRound(cfg Config, opts ...Option) (*Round, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Round{
		cfg: cfg,
		paddles: [2]Paddle{
			newPaddle(Left, AxisLeftPaddle, cfg),
			newPaddle(Right, AxisRightPaddle, cfg),
		},
		spawnTimer: cfg.SpawnDelay,
		serveTo:    Right,
	}
	if cfg.BallVelocityX < 0 {
		r.serveTo = Left
	}

	for _, opt := range opts {
		opt(r)
	}
	for i := range r.movers {
		r.movers[i] = clampMover(r.movers[i], cfg)
	}

	return r, nil
}

// Config returns the configuration the round was built with.
func (r *Round) Config() Config {
	return r.cfg
}

// Paddle returns a copy of the paddle on the given side.
func (r *Round) Paddle(side Side) Paddle {
	return r.paddles[side]
}

// Ball returns a copy of the ball and whether one is in play.
func (r *Round) Ball() (Ball, bool) {
	if r.ball == nil {
		return Ball{}, false
	}
	return *r.ball, true
}

// SpawnTimer returns the seconds until the next ball appears.
// ok is false while a ball is in play.
func (r *Round) SpawnTimer() (remaining float64, ok bool) {
	if r.ball != nil {
		return 0, false
	}
	return r.spawnTimer, true
}

// Score returns the points won by side.
func (r *Round) Score(side Side) uint32 {
	return r.scores[side]
}

// Movers returns a copy of the round's movers.
func (r *Round) Movers() []Mover {
	out := make([]Mover, len(r.movers))
	copy(out, r.movers)
	return out
}

// Phase returns the current state machine phase.
func (r *Round) Phase() Phase {
	if r.ball == nil {
		return PhaseWaiting
	}
	return PhaseInPlay
}

// Frame returns the number of non-empty Advance calls so far.
func (r *Round) Frame() uint64 {
	return r.frame
}

// spawnBall puts a new ball at the arena centre heading toward serveTo.
// Spawning over a live ball is a logic error.
func (r *Round) spawnBall() {
	if r.ball != nil {
		panic("arena: spawn while a ball is in play")
	}

	vx := math.Abs(r.cfg.BallVelocityX)
	if r.serveTo == Left {
		vx = -vx
	}
	r.ball = &Ball{
		X:      r.cfg.ArenaWidth / 2,
		Y:      r.cfg.ArenaHeight / 2,
		VX:     vx,
		VY:     r.cfg.BallVelocityY,
		Radius: r.cfg.BallRadius,
	}
}

// score ends the current ball: the scorer gets a point, the timer re-arms,
// and the next serve heads toward the side that conceded.
func (r *Round) score(side Side) Event {
	r.ball = nil
	r.scores[side]++
	r.spawnTimer = r.cfg.SpawnDelay
	r.serveTo = side.Opponent()
	return Scored(side)
}
