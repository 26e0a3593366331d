// Package render draws the particle pool into a tcell screen.
package render

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/particle-pool/engine"
	"github.com/lixenwraith/particle-pool/particle"
)

const (
	particleGlyph = '•'
	helpText      = "click/space spawn  c clear  p pause  d dump  q quit"
	exhaustedText = "Pool exhausted!"
)

// PoolView is the read side of the pool used for drawing
type PoolView interface {
	Each(fn func(*particle.Particle))
	ActiveCount() int
	Capacity() int
	Bounds() particle.Bounds
}

// Renderer draws frames; call only from the loop goroutine
type Renderer struct {
	screen tcell.Screen
	pool   PoolView
	notice time.Duration

	viewport    Viewport
	exhaustedAt time.Time
}

// NewRenderer creates a renderer sized to the current screen
func NewRenderer(screen tcell.Screen, pool PoolView, notice time.Duration) *Renderer {
	r := &Renderer{
		screen: screen,
		pool:   pool,
		notice: notice,
	}
	r.Resize()
	return r
}

// Resize re-reads the screen size
func (r *Renderer) Resize() {
	cols, rows := r.screen.Size()
	r.viewport = NewViewport(cols, rows, r.pool.Bounds())
}

// Viewport returns the current world-to-screen mapping
func (r *Renderer) Viewport() Viewport {
	return r.viewport
}

// NoteExhausted shows the exhaustion notice for the configured duration from at
func (r *Renderer) NoteExhausted(at time.Time) {
	r.exhaustedAt = at
}

// Draw renders one frame; now is real time for notice expiry
func (r *Renderer) Draw(frame engine.Frame, now time.Time) {
	bg := tcell.StyleDefault.Background(RgbBackground)
	r.screen.SetStyle(bg)
	r.screen.Clear()

	r.drawBorder(bg.Foreground(RgbBorder))

	r.pool.Each(func(p *particle.Particle) {
		col, row, ok := r.viewport.WorldToCell(p.Position())
		if !ok {
			return
		}
		r.screen.SetContent(col, row, particleGlyph, nil, bg.Foreground(ParticleColor(p.Speed())))
	})

	r.drawStatus(bg, frame, now)
	r.screen.Show()
}

func (r *Renderer) drawBorder(style tcell.Style) {
	w, h := r.viewport.Inner()
	if w == 0 {
		return
	}
	right, bottom := w+1, h+1

	for x := 1; x < right; x++ {
		r.screen.SetContent(x, 0, tcell.RuneHLine, nil, style)
		r.screen.SetContent(x, bottom, tcell.RuneHLine, nil, style)
	}
	for y := 1; y < bottom; y++ {
		r.screen.SetContent(0, y, tcell.RuneVLine, nil, style)
		r.screen.SetContent(right, y, tcell.RuneVLine, nil, style)
	}
	r.screen.SetContent(0, 0, tcell.RuneULCorner, nil, style)
	r.screen.SetContent(right, 0, tcell.RuneURCorner, nil, style)
	r.screen.SetContent(0, bottom, tcell.RuneLLCorner, nil, style)
	r.screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, style)
}

func (r *Renderer) drawStatus(bg tcell.Style, frame engine.Frame, now time.Time) {
	row := r.viewport.Rows - 1
	if row < 0 {
		return
	}

	x := drawText(r.screen, 0, row, bg.Foreground(RgbStatusBar),
		fmt.Sprintf("Active: %d/%d  Tick: %d  Skipped: %d", r.pool.ActiveCount(), r.pool.Capacity(), frame.Tick, frame.Skipped))

	if frame.Paused {
		x = drawText(r.screen, x+2, row, bg.Foreground(RgbPaused).Bold(true), "PAUSED")
	}
	if r.ExhaustedVisible(now) {
		x = drawText(r.screen, x+2, row, bg.Foreground(RgbExhausted).Bold(true), exhaustedText)
	}

	if start := r.viewport.Cols - len(helpText); start > x+2 {
		drawText(r.screen, start, row, bg.Foreground(RgbHelpText), helpText)
	}
}

// ExhaustedVisible reports whether the exhaustion notice is shown at now
func (r *Renderer) ExhaustedVisible(now time.Time) bool {
	return !r.exhaustedAt.IsZero() && now.Sub(r.exhaustedAt) < r.notice
}

// drawText writes s from (x, y) and returns the column after the last rune
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) int {
	cols, _ := s.Size()
	for _, ch := range text {
		if x >= cols {
			break
		}
		s.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}
