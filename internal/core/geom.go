// Package core provides the fundamental types of the pong simulation.
// It contains no external dependencies (especially no Bubble Tea or ebiten)
// to keep game logic pure and testable.
package core

import "math"

// Rect is an integer rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// RectF is a rectangle in logical (simulation) units.
type RectF struct {
	X, Y float64
	W, H float64
}

// Right returns the x-coordinate of the right edge.
func (r RectF) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r RectF) Bottom() float64 {
	return r.Y + r.H
}

// CellSpan returns the integer cell range [lo, hi) that the interval
// [start, start+length) covers when each cell is size units wide.
// An interval ending exactly on a cell boundary does not reach the next cell.
func CellSpan(start, length, size float64) (lo, hi int) {
	lo = int(math.Floor(start / size))
	hi = int(math.Ceil((start + length) / size))
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}
