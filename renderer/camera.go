// Package renderer draws the scene into a raylib window: the backdrop, the
// particle point cloud and the cursor overlay.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/sniperfx/camera"
	"github.com/pthm-cable/sniperfx/config"
)

// Camera3D converts the scene camera to raylib's representation.
func Camera3D(c *camera.Perspective) rl.Camera3D {
	return rl.Camera3D{
		Position:   vec3(c.Position),
		Target:     vec3(c.Target),
		Up:         vec3(c.Up),
		Fovy:       float32(c.FOV * 180 / math.Pi),
		Projection: rl.CameraPerspective,
	}
}

func vec3(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

// Color converts a parsed config colour to an rl.Color with the given alpha.
func Color(c config.RGB, alpha float64) rl.Color {
	return rl.Color{
		R: channel(c.R),
		G: channel(c.G),
		B: channel(c.B),
		A: channel(alpha),
	}
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
