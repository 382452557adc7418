package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sniperfx/config"
)

// Backdrop clears the frame and draws the faint glow plane behind the field.
type Backdrop struct {
	clear rl.Color
	glow  rl.Color

	// Glow quad corners, counter-clockwise as seen from the camera
	corners [4]rl.Vector3
}

// NewBackdrop creates a backdrop from the scene settings.
func NewBackdrop(cfg *config.Config) *Backdrop {
	g := cfg.Scene.Glow
	h := float32(g.Size / 2)
	z := float32(g.Z)
	return &Backdrop{
		clear: Color(cfg.Derived.Background, 1),
		glow:  Color(cfg.Derived.GlowColor, g.Opacity),
		corners: [4]rl.Vector3{
			rl.NewVector3(-h, -h, z),
			rl.NewVector3(h, -h, z),
			rl.NewVector3(h, h, z),
			rl.NewVector3(-h, h, z),
		},
	}
}

// Clear fills the frame with the background colour.
func (b *Backdrop) Clear() {
	rl.ClearBackground(b.clear)
}

// DrawGlow adds the glow plane. Must be called inside BeginMode3D.
func (b *Backdrop) DrawGlow() {
	rl.BeginBlendMode(rl.BlendAdditive)
	c := b.corners
	rl.DrawTriangle3D(c[0], c[1], c[2], b.glow)
	rl.DrawTriangle3D(c[0], c[2], c[3], b.glow)
	rl.EndBlendMode()
}
