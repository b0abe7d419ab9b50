package arena

import "math"

// Side identifies which end of the arena a paddle defends.
type Side int

const (
	Left Side = iota
	Right
)

// String returns a human-readable name for the side.
func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == Left {
		return Right
	}
	return Left
}

// Paddle is a vertical bar anchored at its centre.
// X is fixed by Side; Y only changes through input.
type Paddle struct {
	Side   Side
	X, Y   float64
	Width  float64
	Height float64
	Axis   AxisID // Input axis driving vertical movement
}

// newPaddle places a paddle flush against its end wall, vertically centred.
func newPaddle(side Side, axis AxisID, cfg Config) Paddle {
	x := cfg.PaddleWidth / 2
	if side == Right {
		x = cfg.ArenaWidth - cfg.PaddleWidth/2
	}
	return Paddle{
		Side:   side,
		X:      x,
		Y:      cfg.ArenaHeight / 2,
		Width:  cfg.PaddleWidth,
		Height: cfg.PaddleHeight,
		Axis:   axis,
	}
}

// Top returns the y-coordinate of the upper edge.
func (p Paddle) Top() float64 {
	return p.Y + p.Height/2
}

// Bottom returns the y-coordinate of the lower edge.
func (p Paddle) Bottom() float64 {
	return p.Y - p.Height/2
}

// Face returns the x-coordinate of the edge facing the arena interior.
func (p Paddle) Face() float64 {
	if p.Side == Left {
		return p.X + p.Width/2
	}
	return p.X - p.Width/2
}

// Ball is a circle with constant speed; only its direction changes.
type Ball struct {
	X, Y   float64
	VX, VY float64
	Radius float64
}

// Speed returns the magnitude of the ball's velocity.
func (b Ball) Speed() float64 {
	return math.Hypot(b.VX, b.VY)
}

// overlaps reports whether the ball's bounding circle touches the paddle's
// bounding rectangle, using the axis-aligned distance test.
func (b Ball) overlaps(p Paddle) bool {
	dx := math.Abs(b.X - p.X)
	dy := math.Abs(b.Y - p.Y)
	return dx <= p.Width/2+b.Radius && dy <= p.Height/2+b.Radius
}

// approaching reports whether the ball is travelling toward the paddle and
// has not yet passed its centre line. A ball behind the paddle can no
// longer be returned.
func (b Ball) approaching(p Paddle) bool {
	if p.Side == Left {
		return b.VX < 0 && b.X >= p.X
	}
	return b.VX > 0 && b.X <= p.X
}

// Mover is a free entity driven by two independent axes.
type Mover struct {
	Name   string
	X, Y   float64
	Width  float64
	Height float64
	AxisX  AxisID
	AxisY  AxisID
}

// NewMover creates a mover centred in the arena using the configured size.
func NewMover(name string, axisX, axisY AxisID, cfg Config) Mover {
	return Mover{
		Name:   name,
		X:      cfg.ArenaWidth / 2,
		Y:      cfg.ArenaHeight / 2,
		Width:  cfg.MoverWidth,
		Height: cfg.MoverHeight,
		AxisX:  axisX,
		AxisY:  axisY,
	}
}
