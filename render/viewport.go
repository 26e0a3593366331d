package render

import (
	"math"

	"github.com/lixenwraith/particle-pool/particle"
)

// Viewport maps the world region onto the terminal cells inside the border
// Row layout: border at 0 and Rows-2, status line at Rows-1
type Viewport struct {
	Cols, Rows int
	World      particle.Bounds
}

// NewViewport sizes a viewport for a screen of cols x rows
func NewViewport(cols, rows int, world particle.Bounds) Viewport {
	return Viewport{Cols: cols, Rows: rows, World: world}
}

// Inner returns the field size in cells, zero when the screen is too small
func (v Viewport) Inner() (w, h int) {
	w, h = v.Cols-2, v.Rows-3
	if w < 1 || h < 1 {
		return 0, 0
	}
	return w, h
}

// WorldToCell returns the screen cell for a world point
// ok is false for points outside the world or when there is no field
func (v Viewport) WorldToCell(x, y float64) (col, row int, ok bool) {
	w, h := v.Inner()
	if w == 0 || !v.World.Contains(x, y) {
		return 0, 0, false
	}
	col = 1 + int(math.Floor(x/v.World.Width*float64(w-1)+0.5))
	row = 1 + int(math.Floor(y/v.World.Height*float64(h-1)+0.5))
	return col, row, true
}

// CellToWorld returns the world point at the center of a field cell
// ok is false for border, status and off-screen cells
func (v Viewport) CellToWorld(col, row int) (x, y float64, ok bool) {
	w, h := v.Inner()
	if w == 0 || col < 1 || col > w || row < 1 || row > h {
		return 0, 0, false
	}
	x = cellFraction(col-1, w) * v.World.Width
	y = cellFraction(row-1, h) * v.World.Height
	return x, y, true
}

// Center returns the world center point
func (v Viewport) Center() (x, y float64) {
	return v.World.Width / 2, v.World.Height / 2
}

func cellFraction(i, n int) float64 {
	if n <= 1 {
		return 0.5
	}
	return float64(i) / float64(n-1)
}
