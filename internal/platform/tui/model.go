package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/arena"
	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/registry"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

// GameOptions configures a match.
type GameOptions struct {
	Variant string
	Config  config.File
	Runtime core.RuntimeConfig
	Store   *storage.Store // Optional; matches are not recorded when nil
	Logger  *log.Logger    // Optional; defaults to a discarding logger
	Player  string

	// Hold is how long a key press deflects its axis.
	Hold time.Duration
}

func (o GameOptions) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

// Model is the Bubble Tea model that plays one match of a variant.
type Model struct {
	info     registry.Info
	opts     GameOptions
	arenaCfg arena.Config
	round    *arena.Round
	screen   *core.Screen
	keys     GameKeyMap
	help     help.Model
	axes     *KeyAxes
	sampler  arena.InputSampler
	logger   *log.Logger
	now      func() time.Time
	clockID  uint64

	lastTick time.Time
	elapsed  float64 // Simulated seconds, pauses excluded

	paused     bool
	over       bool
	winner     arena.Side
	saved      bool
	quitting   bool
	backToMenu bool
	standalone bool // Back quits instead of returning to a menu
}

// NewModel creates a model for the variant named in opts.
func NewModel(opts GameOptions) (Model, error) {
	info, err := registry.Lookup(opts.Variant)
	if err != nil {
		return Model{}, err
	}

	arenaCfg := opts.Config.ArenaConfig()
	round, err := registry.Create(info.ID, arenaCfg)
	if err != nil {
		return Model{}, err
	}

	logger := opts.logger().With("variant", info.ID)
	axes := NewKeyAxes(opts.Hold)

	h := help.New()
	h.Width = opts.Runtime.ScreenW

	return Model{
		info:     info,
		opts:     opts,
		arenaCfg: arenaCfg,
		round:    round,
		screen:   core.NewScreen(opts.Runtime.ScreenW, max(opts.Runtime.ScreenH-1, 0)),
		keys:     DefaultGameKeyMap(info.Axes),
		help:     h,
		axes:     axes,
		sampler:  newLoggingSampler(axes, logger),
		logger:   logger,
		now:      time.Now,
		clockID:  newClockID(),
	}, nil
}

// Init starts the frame clock.
func (m Model) Init() tea.Cmd {
	m.logger.Info("match started", "player", m.opts.Player, "win_score", m.opts.Config.Match.WinScore)
	return tickCmd(m.opts.Runtime.FrameInterval(), m.clockID)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 0))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.Clock != m.clockID {
			return m, nil
		}
		return m.handleTick(msg.Time)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.recordQuit()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.recordQuit()
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		if !m.over {
			m.paused = !m.paused
			m.axes.Reset()
		}
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		if m.over || m.paused {
			m.recordQuit()
			m.restart()
		}
		return m, nil
	}

	if ak, ok := m.keys.MatchAxis(msg); ok && !m.paused && !m.over {
		m.axes.Press(ak.Axis, ak.Value, m.now())
	}
	return m, nil
}

// handleTick advances the round by the wall-clock time since the last frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	next := tickCmd(m.opts.Runtime.FrameInterval(), m.clockID)

	// A slow link can stall longer than the arena resolves in one frame
	dt := min(m.opts.Runtime.FrameDelta(m.lastTick, now), m.arenaCfg.MaxDelta())
	m.lastTick = now

	if m.paused || m.over {
		return m, next
	}

	m.axes.SetTime(now)
	events, err := arena.Advance(m.round, dt, m.sampler)
	if err != nil {
		m.logger.Error("frame skipped", "dt", dt, "error", err)
		return m, next
	}
	m.elapsed += dt

	m.logEvents(events)
	m.checkWin()

	return m, next
}

func (m *Model) logEvents(events []arena.Event) {
	for _, e := range events {
		switch e.Kind {
		case arena.EventScored:
			m.logger.Debug("point scored",
				"side", e.Side,
				"left", m.round.Score(arena.Left),
				"right", m.round.Score(arena.Right),
			)
		case arena.EventMoverMoved:
			for _, mv := range m.round.Movers() {
				if mv.Name == e.Mover {
					m.logger.Debug("mover moved", "name", mv.Name, "x", mv.X, "y", mv.Y)
				}
			}
		case arena.EventPaddleMoved:
			m.logger.Debug("paddle moved", "side", e.Side, "y", m.round.Paddle(e.Side).Y)
		default:
			m.logger.Debug(e.String(), "frame", m.round.Frame())
		}
	}
}

// checkWin ends the match once a side reaches the win score.
func (m *Model) checkWin() {
	target := m.opts.Config.Match.WinScore
	if target <= 0 {
		return
	}

	for _, side := range []arena.Side{arena.Left, arena.Right} {
		if int(m.round.Score(side)) >= target {
			m.over = true
			m.winner = side
			m.axes.Reset()
			m.saveMatch(storage.EndCompleted)
			return
		}
	}
}

// recordQuit stores an unfinished match if any point was played.
func (m *Model) recordQuit() {
	if m.over || m.round.Score(arena.Left)+m.round.Score(arena.Right) == 0 {
		return
	}
	m.saveMatch(storage.EndQuit)
}

// saveMatch writes the match to the store once. Failures are logged and
// the game carries on.
func (m *Model) saveMatch(reason string) {
	if m.saved {
		return
	}
	m.saved = true

	winner := storage.WinnerNone
	if reason == storage.EndCompleted {
		winner = m.winner.String()
	}

	match := storage.Match{
		Variant:    m.info.ID,
		ScoreLeft:  int(m.round.Score(arena.Left)),
		ScoreRight: int(m.round.Score(arena.Right)),
		Winner:     winner,
		EndReason:  reason,
		Duration:   time.Duration(m.elapsed * float64(time.Second)),
		Frames:     m.round.Frame(),
		Player:     m.opts.Player,
	}

	if m.opts.Store == nil {
		m.logger.Info("match finished", "reason", reason, "left", match.ScoreLeft, "right", match.ScoreRight)
		return
	}

	id, err := m.opts.Store.SaveMatch(match)
	if err != nil {
		m.logger.Warn("could not save match", "error", err)
		return
	}
	m.logger.Info("match finished",
		"id", id,
		"reason", reason,
		"left", match.ScoreLeft,
		"right", match.ScoreRight,
		"duration", match.Duration.Round(time.Millisecond),
	)
}

// restart replaces the round with a fresh one.
func (m *Model) restart() {
	round, err := registry.Create(m.info.ID, m.arenaCfg)
	if err != nil {
		m.logger.Error("cannot restart", "error", err)
		return
	}

	m.round = round
	m.elapsed = 0
	m.lastTick = time.Time{}
	m.paused = false
	m.over = false
	m.saved = false
	m.axes.Reset()
	m.logger.Info("match restarted")
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".pong", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}

	timestamp := m.now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.info.ID, timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

func (m *Model) draw() {
	DrawArena(m.screen, m.round.Snapshot(), m.arenaCfg, HUD{
		Title:    m.info.Title,
		WinScore: m.opts.Config.Match.WinScore,
		Paused:   m.paused,
		Over:     m.over,
		Winner:   m.winner,
	})
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.draw()

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Round returns the round being played.
func (m Model) Round() *arena.Round {
	return m.round
}

// IsOver reports whether a side has reached the win score.
func (m Model) IsOver() bool {
	return m.over
}

// IsPaused reports whether the simulation is paused.
func (m Model) IsPaused() bool {
	return m.paused
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single match in the terminal.
func Run(opts GameOptions) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
