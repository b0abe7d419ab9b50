package core

// Color represents a foreground color for a screen cell.
type Color uint8

// Colors used by the arena view.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorGray
)
