package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/sniperfx/camera"
	"github.com/pthm-cable/sniperfx/config"
	"github.com/pthm-cable/sniperfx/field"
)

// PointCloud draws a particle field as small cubes. It keeps its own copy of
// the field buffers and refreshes it only when the field reports changes.
type PointCloud struct {
	field *field.Field

	points []r3.Vec
	colors []config.RGB

	size    rl.Vector3
	opacity float64

	fogNear, fogFar float64
	fogColor        config.RGB
}

// NewPointCloud creates a renderer for f using the field and fog settings in cfg.
func NewPointCloud(f *field.Field, cfg *config.Config) *PointCloud {
	s := float32(cfg.Field.PointSize)
	p := &PointCloud{
		field:    f,
		points:   make([]r3.Vec, f.Count()),
		colors:   make([]config.RGB, f.Count()),
		size:     rl.NewVector3(s, s, s),
		opacity:  cfg.Field.Opacity,
		fogNear:  cfg.Scene.Fog.Near,
		fogFar:   cfg.Scene.Fog.Far,
		fogColor: cfg.Derived.FogColor,
	}
	p.Sync()
	return p
}

// Sync copies the field buffers that changed since the last sync and clears
// the field's dirty flags. Returns true if anything was copied.
func (p *PointCloud) Sync() bool {
	posDirty, colDirty := p.field.Dirty()
	if !posDirty && !colDirty {
		return false
	}

	if posDirty {
		pos := p.field.Positions()
		for i := range p.points {
			p.points[i] = r3.Vec{X: float64(pos[i*3]), Y: float64(pos[i*3+1]), Z: float64(pos[i*3+2])}
		}
	}
	if colDirty {
		col := p.field.Colors()
		for i := range p.colors {
			p.colors[i] = config.RGB{R: float64(col[i*3]), G: float64(col[i*3+1]), B: float64(col[i*3+2])}
		}
	}

	p.field.ClearDirty()
	return true
}

// Draw renders the cloud rotated by o. Must be called inside BeginMode3D.
func (p *PointCloud) Draw(cam *camera.Perspective, o field.Orientation) {
	rotate := o.Rotator()
	for i, pt := range p.points {
		world := rotate(pt)
		fog := camera.FogFactor(cam.Depth(world), p.fogNear, p.fogFar)
		if fog >= 1 {
			continue
		}

		c := p.colors[i]
		mixed := config.RGB{
			R: c.R + (p.fogColor.R-c.R)*fog,
			G: c.G + (p.fogColor.G-c.G)*fog,
			B: c.B + (p.fogColor.B-c.B)*fog,
		}
		rl.DrawCubeV(vec3(world), p.size, Color(mixed, p.opacity))
	}
}
