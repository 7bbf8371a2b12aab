package styling

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

func toTcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// shiftLightness moves the color's HSL lightness the given percentage of the
// way towards white (positive) or black (negative).
func shiftLightness(c colorful.Color, percentage int) colorful.Color {
	h, s, l := c.Hsl()
	scalar := float64(percentage) / 100
	if scalar >= 0 {
		l += (1 - l) * scalar
	} else {
		l += l * scalar
	}
	return colorful.Hsl(h, s, l).Clamped()
}
