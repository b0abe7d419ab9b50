package tui

import (
	"fmt"

	"github.com/vovakirdan/tui-pong/internal/arena"
	"github.com/vovakirdan/tui-pong/internal/core"
)

// Glyphs used by the arena view.
const (
	PaddleChar = '█'
	BallChar   = '●'
	MoverChar  = '▒'
	NetChar    = '┊'
)

// Minimum screen size that still fits the field and its border.
const (
	minViewWidth  = 20
	minViewHeight = 8
)

// HUD carries the match state drawn around the field.
type HUD struct {
	Title    string
	WinScore int
	Paused   bool
	Over     bool
	Winner   arena.Side
}

// fieldRect returns the cells inside the field border for a screen.
func fieldRect(w, h int) core.Rect {
	return core.NewRect(1, 2, w-2, h-3)
}

// DrawArena renders a snapshot onto the screen. Row 0 holds the scores;
// the rest is the bordered field scaled to fit.
func DrawArena(dst *core.Screen, snap arena.Snapshot, cfg arena.Config, hud HUD) {
	dst.Clear()

	w, h := dst.Width(), dst.Height()
	if w < minViewWidth || h < minViewHeight {
		dst.DrawText(0, 0, "terminal too small", core.ColorRed)
		return
	}

	dst.DrawBox(core.NewRect(0, 1, w, h-1), core.ColorGray)
	field := fieldRect(w, h)
	vp := core.NewViewport(cfg.ArenaWidth, cfg.ArenaHeight, field)

	netX, _ := vp.ToCell(cfg.ArenaWidth/2, 0)
	for y := field.Y; y < field.Bottom(); y += 2 {
		dst.SetColored(netX, y, NetChar, core.ColorGray)
	}

	left := vp.Box(cfg.PaddleWidth/2, snap.LeftY, cfg.PaddleWidth, cfg.PaddleHeight)
	right := vp.Box(cfg.ArenaWidth-cfg.PaddleWidth/2, snap.RightY, cfg.PaddleWidth, cfg.PaddleHeight)
	dst.DrawRect(left, PaddleChar, core.ColorCyan)
	dst.DrawRect(right, PaddleChar, core.ColorMagenta)

	for _, m := range snap.Movers {
		dst.DrawRect(vp.Box(m.X, m.Y, cfg.MoverWidth, cfg.MoverHeight), MoverChar, core.ColorGreen)
	}

	if snap.BallActive {
		bx, by := vp.ToCell(snap.BallX, snap.BallY)
		dst.SetColored(bx, by, BallChar, core.ColorYellow)
	}

	drawHUD(dst, snap, hud)

	switch {
	case hud.Over:
		title := "LEFT WINS!"
		if hud.Winner == arena.Right {
			title = "RIGHT WINS!"
		}
		drawCenteredMessage(dst, title, "R: Restart | Esc: Menu")
	case hud.Paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

func drawHUD(dst *core.Screen, snap arena.Snapshot, hud HUD) {
	w := dst.Width()

	dst.DrawText(1, 0, hud.Title, core.ColorWhite)

	scores := fmt.Sprintf("%d  :  %d", snap.ScoreLeft, snap.ScoreRight)
	dst.DrawTextCentered(0, scores, core.ColorWhite)

	var status string
	switch {
	case !snap.BallActive:
		status = fmt.Sprintf("serve in %.1fs", snap.SpawnTimer)
	case hud.WinScore > 0:
		status = fmt.Sprintf("first to %d", hud.WinScore)
	}
	if status != "" {
		dst.DrawText(w-len(status)-1, 0, status, core.ColorGray)
	}
}

// drawCenteredMessage draws a boxed two-line message in the middle of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)

	dst.DrawText(box.X+(boxW-len(title))/2, box.Y+1, title, core.ColorYellow)
	dst.DrawText(box.X+(boxW-len(subtitle))/2, box.Y+3, subtitle, core.ColorDefault)
}
