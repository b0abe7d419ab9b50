// Package core provides the terminal-side building blocks shared by the
// arena view: a coloured character buffer, integer rectangles and the
// mapping from arena units to character cells. It has no external
// dependencies (especially no Bubble Tea) so it can be tested in isolation.
package core

import "math"

// Rect is an axis-aligned block of cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center cell of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Viewport maps a y-up world of WorldW x WorldH units onto a block of
// terminal cells whose row 0 is at the top.
type Viewport struct {
	WorldW, WorldH float64
	Cells          Rect
}

// NewViewport fits a world of the given size into cells.
func NewViewport(worldW, worldH float64, cells Rect) Viewport {
	return Viewport{WorldW: worldW, WorldH: worldH, Cells: cells}
}

// ToCell converts a world point to the cell containing it. Points on the
// far edges land in the last column/row.
func (v Viewport) ToCell(x, y float64) (int, int) {
	if v.WorldW <= 0 || v.WorldH <= 0 || v.Cells.W <= 0 || v.Cells.H <= 0 {
		return v.Cells.X, v.Cells.Y
	}
	cx := int(math.Floor(x / v.WorldW * float64(v.Cells.W)))
	cy := int(math.Floor((v.WorldH - y) / v.WorldH * float64(v.Cells.H)))
	cx = Clamp(cx, 0, v.Cells.W-1)
	cy = Clamp(cy, 0, v.Cells.H-1)
	return v.Cells.X + cx, v.Cells.Y + cy
}

// Box converts a centre-anchored world box to the cells it covers.
// The result is always at least one cell.
func (v Viewport) Box(cx, cy, w, h float64) Rect {
	x0, y0 := v.ToCell(cx-w/2, cy+h/2)
	x1, y1 := v.ToCell(cx+w/2, cy-h/2)
	return NewRect(x0, y0, max(x1-x0+1, 1), max(y1-y0+1, 1))
}
