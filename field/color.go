package field

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSLToRGB converts a hue in turns (wrapped into [0, 1)), saturation and
// lightness into RGB channels in [0, 1].
func HSLToRGB(h, s, l float64) (r, g, b float64) {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	c := colorful.Hsl(h*360, clamp01(s), clamp01(l)).Clamped()
	return c.R, c.G, c.B
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
