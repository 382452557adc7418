// Package camera provides the perspective camera that views the particle
// field and an orbit controller that can steer it.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Perspective is a pinhole camera looking from Position towards Target.
type Perspective struct {
	Position r3.Vec
	Target   r3.Vec
	Up       r3.Vec

	// Vertical field of view in radians
	FOV float64

	// Clip distances along the view direction
	Near, Far float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64
}

// New creates a camera at position looking at the origin.
func New(viewportW, viewportH float64, position r3.Vec, fov float64) *Perspective {
	return &Perspective{
		Position:  position,
		Up:        r3.Vec{Y: 1},
		FOV:       fov,
		Near:      0.1,
		Far:       1000,
		ViewportW: viewportW,
		ViewportH: viewportH,
	}
}

// Aspect returns the viewport width/height ratio.
func (c *Perspective) Aspect() float64 {
	if c.ViewportH == 0 {
		return 1
	}
	return c.ViewportW / c.ViewportH
}

// basis returns the camera's right, up and forward unit vectors.
func (c *Perspective) basis() (right, up, forward r3.Vec) {
	forward = r3.Unit(r3.Sub(c.Target, c.Position))
	right = r3.Unit(r3.Cross(forward, c.Up))
	up = r3.Cross(right, forward)
	return right, up, forward
}

// Project converts a world point to screen coordinates. depth is the distance
// along the view direction. ok is false when the point falls outside the view
// frustum.
func (c *Perspective) Project(p r3.Vec) (sx, sy, depth float64, ok bool) {
	right, up, forward := c.basis()
	rel := r3.Sub(p, c.Position)

	depth = r3.Dot(rel, forward)
	if depth <= c.Near || depth >= c.Far {
		return 0, 0, depth, false
	}

	f := 1 / math.Tan(c.FOV/2)
	ndcX := r3.Dot(rel, right) * f / (c.Aspect() * depth)
	ndcY := r3.Dot(rel, up) * f / depth

	sx = (ndcX + 1) / 2 * c.ViewportW
	sy = (1 - ndcY) / 2 * c.ViewportH
	return sx, sy, depth, ndcX >= -1 && ndcX <= 1 && ndcY >= -1 && ndcY <= 1
}

// Depth returns the distance of p along the view direction, the same value
// Project reports.
func (c *Perspective) Depth(p r3.Vec) float64 {
	forward := r3.Unit(r3.Sub(c.Target, c.Position))
	return r3.Dot(r3.Sub(p, c.Position), forward)
}

// Resize updates viewport dimensions.
func (c *Perspective) Resize(viewportW, viewportH float64) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// FogFactor returns how much of a point at view depth d is hidden by fog: 0
// before near, 1 beyond far and a smoothstep in between.
func FogFactor(d, near, far float64) float64 {
	if far <= near {
		return 0
	}
	t := clamp((d-near)/(far-near), 0, 1)
	return t * t * (3 - 2*t)
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
