package render

import (
	"testing"

	"github.com/lixenwraith/particle-pool/particle"
)

func TestViewportWorldToCellCorners(t *testing.T) {
	v := NewViewport(42, 13, particle.Bounds{Width: 400, Height: 400})
	w, h := v.Inner()
	if w != 40 || h != 10 {
		t.Fatalf("Expected inner 40x10, got %dx%d", w, h)
	}

	tests := []struct {
		name     string
		x, y     float64
		col, row int
	}{
		{"origin", 0, 0, 1, 1},
		{"far corner", 400, 400, 40, 10},
		{"center", 200, 200, 21, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, row, ok := v.WorldToCell(tt.x, tt.y)
			if !ok || col != tt.col || row != tt.row {
				t.Errorf("WorldToCell(%v,%v) = (%d,%d,%v), want (%d,%d)", tt.x, tt.y, col, row, ok, tt.col, tt.row)
			}
		})
	}
}

func TestViewportRejectsOutside(t *testing.T) {
	v := NewViewport(42, 13, particle.Bounds{Width: 400, Height: 400})

	if _, _, ok := v.WorldToCell(401, 10); ok {
		t.Error("Expected point outside world to be rejected")
	}
	if _, _, ok := v.CellToWorld(0, 5); ok {
		t.Error("Expected border cell to be rejected")
	}
	if _, _, ok := v.CellToWorld(5, 12); ok {
		t.Error("Expected status row to be rejected")
	}
}

func TestViewportRoundTrip(t *testing.T) {
	v := NewViewport(42, 13, particle.Bounds{Width: 400, Height: 300})
	w, h := v.Inner()

	for col := 1; col <= w; col++ {
		for row := 1; row <= h; row++ {
			x, y, ok := v.CellToWorld(col, row)
			if !ok {
				t.Fatalf("CellToWorld(%d,%d) rejected", col, row)
			}
			c, r, ok := v.WorldToCell(x, y)
			if !ok || c != col || r != row {
				t.Fatalf("Round trip (%d,%d) -> (%f,%f) -> (%d,%d)", col, row, x, y, c, r)
			}
		}
	}
}

func TestViewportTooSmall(t *testing.T) {
	v := NewViewport(2, 3, particle.Bounds{Width: 10, Height: 10})
	if w, h := v.Inner(); w != 0 || h != 0 {
		t.Errorf("Expected empty field, got %dx%d", w, h)
	}
	if _, _, ok := v.WorldToCell(5, 5); ok {
		t.Error("Expected no mapping without a field")
	}
}

func TestViewportCenter(t *testing.T) {
	v := NewViewport(80, 24, particle.Bounds{Width: 400, Height: 300})
	if x, y := v.Center(); x != 200 || y != 150 {
		t.Errorf("Expected (200,150), got (%f,%f)", x, y)
	}
}
