package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/arena"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestKeyAxesNeverPressed(t *testing.T) {
	k := NewKeyAxes(0)
	k.SetTime(t0)

	if v, ok := k.Sample(arena.AxisLeftPaddle); ok || v != 0 {
		t.Errorf("Sample() = (%v, %v), expected no reading", v, ok)
	}
	if k.hold != DefaultHoldDuration {
		t.Errorf("hold = %v, expected default %v", k.hold, DefaultHoldDuration)
	}
}

func TestKeyAxesHoldAndExpiry(t *testing.T) {
	k := NewKeyAxes(150 * time.Millisecond)
	k.Press(arena.AxisLeftPaddle, 1, t0)

	tests := []struct {
		name  string
		at    time.Duration
		value float64
		ok    bool
	}{
		{"same instant", 0, 1, true},
		{"within hold", 149 * time.Millisecond, 1, true},
		{"hold expired", 150 * time.Millisecond, 0, false},
		{"stays expired", 10 * time.Millisecond, 0, false},
	}

	for _, tc := range tests {
		k.SetTime(t0.Add(tc.at))
		v, ok := k.Sample(arena.AxisLeftPaddle)
		if v != tc.value || ok != tc.ok {
			t.Errorf("%s: Sample() = (%v, %v), expected (%v, %v)", tc.name, v, ok, tc.value, tc.ok)
		}
	}
}

func TestKeyAxesPressReplaces(t *testing.T) {
	k := NewKeyAxes(100 * time.Millisecond)
	k.Press(arena.AxisRightPaddle, 1, t0)
	k.Press(arena.AxisRightPaddle, -1, t0.Add(80*time.Millisecond))

	k.SetTime(t0.Add(150 * time.Millisecond))
	if v, ok := k.Sample(arena.AxisRightPaddle); !ok || v != -1 {
		t.Errorf("Sample() = (%v, %v), expected the later press (-1, true)", v, ok)
	}

	// Other axes are independent
	if _, ok := k.Sample(arena.AxisLeftPaddle); ok {
		t.Error("an unpressed axis should have no reading")
	}

	k.Reset()
	if _, ok := k.Sample(arena.AxisRightPaddle); ok {
		t.Error("Reset() should drop held keys")
	}
}

func TestLoggingSamplerLogsTransitions(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	k := NewKeyAxes(100 * time.Millisecond)
	s := newLoggingSampler(k, logger)

	k.Press(arena.AxisBraveX, -1, t0)
	k.SetTime(t0)
	if v, ok := s.Sample(arena.AxisBraveX); !ok || v != -1 {
		t.Fatalf("Sample() = (%v, %v), expected (-1, true)", v, ok)
	}

	k.SetTime(t0.Add(time.Second))
	for range 3 {
		if _, ok := s.Sample(arena.AxisBraveX); ok {
			t.Fatal("expired press should have no reading")
		}
	}

	out := buf.String()
	if n := strings.Count(out, "no reading"); n != 1 {
		t.Errorf("logged %d 'no reading' lines, expected 1:\n%s", n, out)
	}
	if !strings.Contains(out, "brave_x") {
		t.Errorf("log should name the axis:\n%s", out)
	}
}
