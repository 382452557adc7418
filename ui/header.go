package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sniperfx/nav"
)

// HeaderBar draws the navigation header from nav state.
type HeaderBar struct {
	renderer *Renderer
	fontSize int32
	height   int32
}

// NewHeaderBar creates a header renderer.
func NewHeaderBar(fontSize, height int) *HeaderBar {
	return &HeaderBar{
		renderer: NewRenderer(),
		fontSize: int32(fontSize),
		height:   int32(height),
	}
}

// Measure returns the pixel width of a label; pass it to nav.Header.Layout.
func (b *HeaderBar) Measure(label string) float64 {
	return float64(rl.MeasureText(label, b.fontSize))
}

// Draw renders the header bar, its links and the active indicator.
func (b *HeaderBar) Draw(h *nav.Header, screenW int32) {
	theme := b.renderer.Theme
	offsetY, opacity := h.Bar()
	if opacity <= 0 {
		return
	}
	top := int32(offsetY)

	rl.DrawRectangle(0, top, screenW, b.height, fade(theme.HeaderBg, opacity))

	for _, it := range h.Items() {
		if it.Opacity <= 0 {
			continue
		}
		r := it.Rect
		y := r.Y + offsetY + it.OffsetY

		if it.GlowOpacity > 0 {
			cx, cy := r.Center()
			w := r.W * it.GlowScale
			hgt := r.H * it.GlowScale
			rl.DrawRectangleRounded(
				rl.Rectangle{X: float32(cx - w/2), Y: float32(cy + offsetY + it.OffsetY - hgt/2), Width: float32(w), Height: float32(hgt)},
				0.5, 8, fade(theme.LinkGlow, it.GlowOpacity*0.3*opacity),
			)
		}

		color := theme.LinkColor
		if it.Active || it.Hovered {
			color = theme.LinkActive
		}
		size := int32(float64(b.fontSize)*it.Scale + 0.5)
		textW := rl.MeasureText(it.Label, size)
		tx := int32(r.X + (r.W-float64(textW))/2)
		ty := int32(y + (r.H-float64(size))/2)
		rl.DrawText(it.Label, tx, ty, size, fade(color, it.Opacity*opacity))
	}

	if ind, ok := h.Indicator(); ok {
		rl.DrawRectangle(int32(ind.X), int32(ind.Y+offsetY), int32(ind.W), int32(ind.H), fade(theme.LinkActive, opacity))
	}
}
