package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Orbit rotates a camera around a target on a sphere. Azimuth is measured
// around +Y from +Z, polar from +Y. Rotation input is accumulated as a
// velocity and bled off by Damping each update, so drags glide to a stop.
type Orbit struct {
	Target  r3.Vec
	Radius  float64
	Azimuth float64
	Polar   float64

	// Polar constraints (radians)
	MinPolar, MaxPolar float64

	AutoRotate      bool
	AutoRotateSpeed float64 // 2.0 = one turn per 30s
	Damping         float64 // 0 applies input immediately
	DragSpeed       float64 // radians per screen pixel

	azimuthVel float64
	polarVel   float64

	homeAzimuth, homePolar float64
}

// NewOrbit creates an orbit controller starting from position around target.
func NewOrbit(position, target r3.Vec, minPolar, maxPolar float64) *Orbit {
	offset := r3.Sub(position, target)
	radius := r3.Norm(offset)

	polar := math.Pi / 2
	if radius > 0 {
		polar = math.Acos(clamp(offset.Y/radius, -1, 1))
	}
	o := &Orbit{
		Target:    target,
		Radius:    radius,
		Azimuth:   math.Atan2(offset.X, offset.Z),
		Polar:     polar,
		MinPolar:  minPolar,
		MaxPolar:  maxPolar,
		DragSpeed: 0.005,
	}
	o.Polar = clamp(o.Polar, o.MinPolar, o.MaxPolar)
	o.homeAzimuth, o.homePolar = o.Azimuth, o.Polar
	return o
}

// Drag feeds a pointer drag of (dx, dy) screen pixels into the controller.
func (o *Orbit) Drag(dx, dy float64) {
	o.azimuthVel -= dx * o.DragSpeed
	o.polarVel -= dy * o.DragSpeed
}

// Update advances the controller by dt seconds.
func (o *Orbit) Update(dt float64) {
	if o.AutoRotate {
		o.azimuthVel -= 2 * math.Pi / 60 * o.AutoRotateSpeed * dt
	}

	if o.Damping > 0 {
		o.Azimuth += o.azimuthVel * o.Damping
		o.Polar += o.polarVel * o.Damping
		o.azimuthVel *= 1 - o.Damping
		o.polarVel *= 1 - o.Damping
	} else {
		o.Azimuth += o.azimuthVel
		o.Polar += o.polarVel
		o.azimuthVel, o.polarVel = 0, 0
	}

	o.Polar = clamp(o.Polar, o.MinPolar, o.MaxPolar)
}

// Position returns the camera position on the orbit sphere.
func (o *Orbit) Position() r3.Vec {
	sinPolar := math.Sin(o.Polar)
	return r3.Add(o.Target, r3.Vec{
		X: o.Radius * sinPolar * math.Sin(o.Azimuth),
		Y: o.Radius * math.Cos(o.Polar),
		Z: o.Radius * sinPolar * math.Cos(o.Azimuth),
	})
}

// Apply moves c onto the orbit, looking at the target.
func (o *Orbit) Apply(c *Perspective) {
	c.Position = o.Position()
	c.Target = o.Target
}

// Reset returns the controller to its starting angles and stops any motion.
func (o *Orbit) Reset() {
	o.Azimuth, o.Polar = o.homeAzimuth, o.homePolar
	o.azimuthVel, o.polarVel = 0, 0
}
