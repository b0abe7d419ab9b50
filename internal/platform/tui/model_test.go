package tui

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pong/internal/arena"
	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	_ "github.com/vovakirdan/tui-pong/internal/games/brave"
	_ "github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

const frame = time.Second / 60

func testOptions(variant string, winScore int, store *storage.Store) GameOptions {
	cfg := config.Default()
	cfg.Match.WinScore = winScore
	return GameOptions{
		Variant: variant,
		Config:  cfg,
		Runtime: core.DefaultConfig(),
		Store:   store,
		Hold:    150 * time.Millisecond,
	}
}

func newTestModel(t *testing.T, opts GameOptions) Model {
	t.Helper()
	m, err := NewModel(opts)
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	m.now = func() time.Time { return t0 }
	return m
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "matches.db"))
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return model, cmd
}

func tick(t *testing.T, m Model, at time.Time) Model {
	t.Helper()
	m, _ = step(t, m, TickMsg{Time: at, Clock: m.clockID})
	return m
}

// playUntil ticks at 60 fps until done reports true or the frame limit is hit.
func playUntil(t *testing.T, m Model, limit int, done func(Model) bool) (Model, time.Time) {
	t.Helper()
	at := t0
	for range limit {
		m = tick(t, m, at)
		at = at.Add(frame)
		if done(m) {
			return m, at
		}
	}
	t.Fatalf("condition not reached after %d frames", limit)
	return m, at
}

func TestNewModelUnknownVariant(t *testing.T) {
	if _, err := NewModel(testOptions("tennis", 5, nil)); err == nil {
		t.Error("NewModel() with an unknown variant should fail")
	}
}

func TestModelTickAdvancesRound(t *testing.T) {
	m := newTestModel(t, testOptions("pong", 5, nil))

	m = tick(t, m, t0)
	if m.Round().Frame() != 1 {
		t.Fatalf("Frame() = %d after one tick, expected 1", m.Round().Frame())
	}

	// Ticks from another match's clock are ignored
	m, cmd := step(t, m, TickMsg{Time: t0.Add(frame), Clock: m.clockID + 1})
	if cmd != nil || m.Round().Frame() != 1 {
		t.Errorf("foreign tick advanced the round (frame %d, cmd %v)", m.Round().Frame(), cmd != nil)
	}
}

func TestModelClampsFrameToArenaLimit(t *testing.T) {
	opts := testOptions("pong", 0, nil)
	// Fast small ball: the arena resolves well under one 60 fps frame
	opts.Config.Ball = config.BallSection{Radius: 0.1, VelocityX: 1000, VelocityY: 0}
	opts.Config.Round.SpawnDelay = 0
	m := newTestModel(t, opts)

	limit := opts.Config.ArenaConfig().MaxDelta()
	if limit >= frame.Seconds() {
		t.Fatalf("MaxDelta() = %v, expected less than one frame", limit)
	}

	at := t0
	for range 3 {
		m = tick(t, m, at)
		at = at.Add(frame)
	}
	if m.Round().Frame() != 3 {
		t.Errorf("Frame() = %d after three ticks, expected 3", m.Round().Frame())
	}
	if math.Abs(m.elapsed-3*limit) > 1e-12 {
		t.Errorf("elapsed = %v, expected %v", m.elapsed, 3*limit)
	}
}

func TestModelKeyHoldMovesPaddle(t *testing.T) {
	m := newTestModel(t, testOptions("pong", 5, nil))
	m = tick(t, m, t0)

	m, _ = step(t, m, runeKey('w'))
	m = tick(t, m, t0.Add(20*time.Millisecond))

	// 75 units/s for 20ms
	if y := m.Round().Paddle(arena.Left).Y; math.Abs(y-51.5) > 1e-9 {
		t.Fatalf("left paddle Y = %v, expected 51.5", y)
	}

	// The hold has expired by the next frame
	m = tick(t, m, t0.Add(200*time.Millisecond))
	if y := m.Round().Paddle(arena.Left).Y; math.Abs(y-51.5) > 1e-9 {
		t.Errorf("left paddle Y = %v after the hold expired, expected 51.5", y)
	}
	if y := m.Round().Paddle(arena.Right).Y; y != 50 {
		t.Errorf("right paddle Y = %v, expected it untouched", y)
	}
}

func TestModelPause(t *testing.T) {
	m := newTestModel(t, testOptions("pong", 5, nil))
	m = tick(t, m, t0)

	m, _ = step(t, m, runeKey('p'))
	if !m.IsPaused() {
		t.Fatal("p should pause")
	}
	m = tick(t, m, t0.Add(frame))
	if m.Round().Frame() != 1 {
		t.Errorf("paused round advanced to frame %d", m.Round().Frame())
	}

	m, _ = step(t, m, runeKey('p'))
	m = tick(t, m, t0.Add(2*frame))
	if m.IsPaused() || m.Round().Frame() != 2 {
		t.Errorf("resumed round: paused=%v frame=%d, expected running at frame 2", m.IsPaused(), m.Round().Frame())
	}
}

func TestModelMatchEndsAndIsSaved(t *testing.T) {
	store := openStore(t)
	opts := testOptions("pong", 1, store)
	opts.Player = "alice"
	m := newTestModel(t, opts)

	// With no input the first serve passes the right paddle
	m, end := playUntil(t, m, 300, Model.IsOver)

	if m.winner != arena.Left {
		t.Errorf("winner = %v, expected left", m.winner)
	}

	// The round no longer advances once the match is over
	frames := m.Round().Frame()
	m = tick(t, m, end)
	if m.Round().Frame() != frames {
		t.Error("round advanced after the match ended")
	}

	matches, err := store.RecentMatches("pong", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("saved %d matches, expected 1", len(matches))
	}
	got := matches[0]
	if got.ScoreLeft != 1 || got.ScoreRight != 0 || got.Winner != storage.WinnerLeft {
		t.Errorf("saved match = %+v, expected 1:0 won by left", got)
	}
	if got.EndReason != storage.EndCompleted || got.Player != "alice" || got.Frames != frames {
		t.Errorf("saved match = %+v, expected completed by alice after %d frames", got, frames)
	}
	if got.Duration < time.Second {
		t.Errorf("Duration = %v, expected more than the spawn delay", got.Duration)
	}

	// Restart starts a fresh round
	m, _ = step(t, m, runeKey('r'))
	if m.IsOver() || m.Round().Frame() != 0 || m.Round().Score(arena.Left) != 0 {
		t.Error("restart should reset the match")
	}
}

func TestModelQuitRecordsUnfinishedMatch(t *testing.T) {
	store := openStore(t)
	m := newTestModel(t, testOptions("pong", 0, store))

	m, _ = playUntil(t, m, 300, func(m Model) bool {
		return m.Round().Score(arena.Left) > 0
	})
	if m.IsOver() {
		t.Fatal("a zero win score should never end the match")
	}

	m, cmd := step(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Fatal("q should quit")
	}

	matches, err := store.RecentMatches("pong", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 || matches[0].EndReason != storage.EndQuit || matches[0].Winner != storage.WinnerNone {
		t.Errorf("saved matches = %+v, expected one quit match without a winner", matches)
	}
}

func TestModelQuitWithoutPointsIsNotSaved(t *testing.T) {
	store := openStore(t)
	m := newTestModel(t, testOptions("pong", 5, store))
	m = tick(t, m, t0)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("esc should go back to the menu")
	}

	matches, _ := store.RecentMatches("", 0)
	if len(matches) != 0 {
		t.Errorf("saved %d matches, expected none before any point", len(matches))
	}
}

func TestModelResizeKeepsRound(t *testing.T) {
	m := newTestModel(t, testOptions("brave", 5, nil))
	m = tick(t, m, t0)

	m, _ = step(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.screen.Width() != 120 || m.screen.Height() != 39 {
		t.Errorf("screen = %dx%d, expected 120x39 with a help row", m.screen.Width(), m.screen.Height())
	}
	if m.Round().Frame() != 1 {
		t.Error("resizing should not reset the round")
	}
	if len(m.Round().Movers()) != 1 {
		t.Error("brave rounds should carry the mover")
	}
	if m.View() == "" {
		t.Error("View() should render the arena")
	}
}
