package arena

import (
	"errors"
	"testing"
)

func TestNewRoundInitialState(t *testing.T) {
	r := newTestRound(t)

	if r.Phase() != PhaseWaiting {
		t.Errorf("Phase() = %v, expected waiting", r.Phase())
	}
	if remaining, ok := r.SpawnTimer(); !ok || remaining != 1.0 {
		t.Errorf("SpawnTimer() = (%v, %v), expected (1, true)", remaining, ok)
	}
	if _, ok := r.Ball(); ok {
		t.Error("new round should have no ball")
	}
	if r.Frame() != 0 {
		t.Errorf("Frame() = %d, expected 0", r.Frame())
	}

	tests := []struct {
		side Side
		x    float64
		axis AxisID
	}{
		{Left, 2, AxisLeftPaddle},
		{Right, 98, AxisRightPaddle},
	}
	for _, tc := range tests {
		p := r.Paddle(tc.side)
		if p.X != tc.x || p.Y != 50 {
			t.Errorf("%s paddle at (%v, %v), expected (%v, 50)", tc.side, p.X, p.Y, tc.x)
		}
		if p.Axis != tc.axis {
			t.Errorf("%s paddle axis = %q, expected %q", tc.side, p.Axis, tc.axis)
		}
		if r.Score(tc.side) != 0 {
			t.Errorf("Score(%s) = %d, expected 0", tc.side, r.Score(tc.side))
		}
	}
}

func TestNewRoundRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BallRadius = -1

	r, err := NewRound(cfg)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("NewRound() error = %v, expected ErrInvalidConfig", err)
	}
	if r != nil {
		t.Error("NewRound() should return nil on error")
	}
}

func TestWithPaddleAxes(t *testing.T) {
	r := newTestRound(t, WithPaddleAxes("p1", "p2"))

	mustAdvance(t, r, 0.1, AxisValues{"p1": 1, AxisLeftPaddle: -1})

	if got := r.Paddle(Left).Y; !approx(got, 57.5) {
		t.Errorf("left Y = %v, expected 57.5 driven by p1", got)
	}
	if got := r.Paddle(Right).Y; got != 50 {
		t.Errorf("right Y = %v, expected 50", got)
	}
}

func TestMoversReturnsCopy(t *testing.T) {
	r := newTestRound(t, WithMover(NewMover("brave", AxisBraveX, AxisBraveY, DefaultConfig())))

	movers := r.Movers()
	movers[0].X = 0

	if got := r.Movers()[0].X; got != 50 {
		t.Errorf("mover X = %v after mutating a copy, expected 50", got)
	}
}

func TestNewRoundClampsMovers(t *testing.T) {
	m := NewMover("brave", AxisBraveX, AxisBraveY, DefaultConfig())
	m.X, m.Y = -30, 400

	r := newTestRound(t, WithMover(m))

	got := r.Movers()[0]
	if got.X != 2 || got.Y != 98 {
		t.Errorf("mover at (%v, %v), expected (2, 98)", got.X, got.Y)
	}
}

func TestSpawnOverLiveBallPanics(t *testing.T) {
	r := newTestRound(t)
	r.spawnBall()

	defer func() {
		if recover() == nil {
			t.Error("spawnBall() over a live ball should panic")
		}
	}()
	r.spawnBall()
}

func TestSideOpponent(t *testing.T) {
	if Left.Opponent() != Right || Right.Opponent() != Left {
		t.Error("Opponent() should swap sides")
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		event    Event
		expected string
	}{
		{PaddleMoved(Left), "paddle_moved{left}"},
		{BallSpawned(), "ball_spawned"},
		{Scored(Right), "scored{right}"},
		{MoverMoved("brave"), "mover_moved{brave}"},
	}

	for _, tc := range tests {
		if got := tc.event.String(); got != tc.expected {
			t.Errorf("String() = %q, expected %q", got, tc.expected)
		}
	}
}

func TestSnapshot(t *testing.T) {
	r := newTestRound(t, WithMover(NewMover("brave", AxisBraveX, AxisBraveY, DefaultConfig())))

	snap := r.Snapshot()
	if snap.Phase != "waiting" || snap.BallActive || snap.SpawnTimer != 1.0 {
		t.Errorf("waiting snapshot = %+v", snap)
	}
	if len(snap.Movers) != 1 || snap.Movers[0].Name != "brave" {
		t.Errorf("Movers = %+v, expected one brave mover", snap.Movers)
	}

	mustAdvance(t, r, 1.0, nil)
	played := r.Snapshot()
	if played.Phase != "in_play" || !played.BallActive || played.BallX != 50 {
		t.Errorf("in-play snapshot = %+v", played)
	}
	if played.SpawnTimer != 0 {
		t.Errorf("SpawnTimer = %v, expected 0 while in play", played.SpawnTimer)
	}

	if snap.Hash() == played.Hash() {
		t.Error("different states should hash differently")
	}
	if played.Hash() != r.Snapshot().Hash() {
		t.Error("Hash() should be stable for the same state")
	}
}
