// Package tui provides the Bubble Tea integration for the arena.
// It runs the frame clock, turns key presses into axis readings, and
// draws round snapshots to the terminal.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per frame. Clock identifies the match whose frame
// clock produced it, so ticks left over from an abandoned match are dropped.
type TickMsg struct {
	Time  time.Time
	Clock uint64
}

var clocks atomic.Uint64

// newClockID returns a fresh frame clock identifier.
func newClockID() uint64 {
	return clocks.Add(1)
}

// tickCmd schedules the next frame of the given clock after interval.
func tickCmd(interval time.Duration, clock uint64) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Clock: clock}
	})
}
