package render

import (
	"github.com/gdamore/tcell/v2"
)

var (
	RgbBorder      = tcell.NewRGBColor(90, 90, 110)   // Muted frame
	RgbStatusBar   = tcell.NewRGBColor(255, 255, 255) // White
	RgbHelpText    = tcell.NewRGBColor(140, 140, 140) // Gray
	RgbPaused      = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbExhausted   = tcell.NewRGBColor(255, 80, 80)   // Red
	RgbBackground  = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbParticleLow = tcell.NewRGBColor(0, 200, 0)     // Slow particles
)

// maxSpeedShade is the speed at which particles reach full yellow
const maxSpeedShade = 4.0

// ParticleColor shades green toward yellow as speed rises
func ParticleColor(speed float64) tcell.Color {
	t := speed / maxSpeedShade
	switch {
	case t <= 0:
		return RgbParticleLow
	case t > 1:
		t = 1
	}
	return tcell.NewRGBColor(int32(255*t), int32(200+55*t), 0)
}
