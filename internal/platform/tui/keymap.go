package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pong/internal/arena"
)

// AxisKey binds a key to a fixed reading on one axis.
type AxisKey struct {
	Binding key.Binding
	Axis    arena.AxisID
	Value   float64
}

// GameKeyMap defines the key bindings used during a match.
type GameKeyMap struct {
	LeftUp, LeftDown   key.Binding
	RightUp, RightDown key.Binding

	BraveUp, BraveDown    key.Binding
	BraveLeft, BraveRight key.Binding

	Pause      key.Binding
	Restart    key.Binding
	Back       key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding

	// axes limits the bindings shown and matched to the variant's axes.
	axes []arena.AxisID
}

// DefaultGameKeyMap returns the bindings for a variant reading the given axes.
func DefaultGameKeyMap(axes []arena.AxisID) GameKeyMap {
	return GameKeyMap{
		LeftUp: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w/s", "left paddle"),
		),
		LeftDown: key.NewBinding(
			key.WithKeys("s"),
		),
		RightUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑/↓", "right paddle"),
		),
		RightDown: key.NewBinding(
			key.WithKeys("down"),
		),
		BraveUp: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("ijkl", "brave"),
		),
		BraveDown: key.NewBinding(
			key.WithKeys("k"),
		),
		BraveLeft: key.NewBinding(
			key.WithKeys("j"),
		),
		BraveRight: key.NewBinding(
			key.WithKeys("l"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "menu"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("^s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		axes: axes,
	}
}

func (k GameKeyMap) reads(axis arena.AxisID) bool {
	for _, a := range k.axes {
		if a == axis {
			return true
		}
	}
	return false
}

// AxisKeys returns the movement bindings for the axes the variant reads.
// Screen up is positive Y in arena coordinates.
func (k GameKeyMap) AxisKeys() []AxisKey {
	all := []AxisKey{
		{k.LeftUp, arena.AxisLeftPaddle, 1},
		{k.LeftDown, arena.AxisLeftPaddle, -1},
		{k.RightUp, arena.AxisRightPaddle, 1},
		{k.RightDown, arena.AxisRightPaddle, -1},
		{k.BraveUp, arena.AxisBraveY, 1},
		{k.BraveDown, arena.AxisBraveY, -1},
		{k.BraveLeft, arena.AxisBraveX, -1},
		{k.BraveRight, arena.AxisBraveX, 1},
	}

	result := make([]AxisKey, 0, len(all))
	for _, ak := range all {
		if k.reads(ak.Axis) {
			result = append(result, ak)
		}
	}
	return result
}

// MatchAxis finds the axis binding for a key message.
func (k GameKeyMap) MatchAxis(msg tea.KeyMsg) (AxisKey, bool) {
	for _, ak := range k.AxisKeys() {
		if key.Matches(msg, ak.Binding) {
			return ak, true
		}
	}
	return AxisKey{}, false
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	bindings := k.movementHelp()
	return append(bindings, k.Pause, k.Back, k.Help, k.Quit)
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.movementHelp(),
		{k.Pause, k.Restart, k.Screenshot},
		{k.Back, k.Help, k.Quit},
	}
}

func (k GameKeyMap) movementHelp() []key.Binding {
	var bindings []key.Binding
	if k.reads(arena.AxisLeftPaddle) {
		bindings = append(bindings, k.LeftUp)
	}
	if k.reads(arena.AxisRightPaddle) {
		bindings = append(bindings, k.RightUp)
	}
	if k.reads(arena.AxisBraveX) || k.reads(arena.AxisBraveY) {
		bindings = append(bindings, k.BraveUp)
	}
	return bindings
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
