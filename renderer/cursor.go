package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sniperfx/effects"
)

var (
	cursorColor = rl.White
	trailColor  = rl.Color{R: 147, G: 197, B: 253, A: 255} // blue-300
	sparkColor  = rl.Color{R: 96, G: 165, B: 250, A: 255} // blue-400
)

// CursorRenderer draws the custom cursor, its trail and the nav sparks.
type CursorRenderer struct{}

// NewCursorRenderer creates a new cursor renderer.
func NewCursorRenderer() *CursorRenderer {
	return &CursorRenderer{}
}

// Draw renders one frame of the overlay.
func (r *CursorRenderer) Draw(fx *effects.World) {
	for _, d := range fx.Sparks() {
		drawDot(d, sparkColor)
	}

	// Tail first so the head stays on top
	trail := fx.Trail()
	for i := len(trail) - 1; i >= 0; i-- {
		drawDot(trail[i], trailColor)
	}

	cur := fx.Cursor()
	rl.DrawCircleLines(int32(cur.X), int32(cur.Y), float32(cur.Radius), cursorColor)
}

func drawDot(d effects.Dot, base rl.Color) {
	if d.Alpha <= 0 || d.Radius <= 0 {
		return
	}
	c := base
	c.A = uint8(float64(base.A) * clampAlpha(d.Alpha))
	rl.DrawCircleV(rl.NewVector2(float32(d.X), float32(d.Y)), float32(d.Radius), c)
}

func clampAlpha(a float64) float64 {
	if a > 1 {
		return 1
	}
	return a
}
