package field

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Whole-field rotation rates.
const (
	YawRate        = 0.05
	PitchRate      = 0.03
	PitchAmplitude = 0.2
)

var (
	axisX = r3.Vec{X: 1}
	axisY = r3.Vec{Y: 1}
)

// Orientation is the rigid rotation a host applies to the whole field when
// drawing it. It is object transform state; it never touches the buffers.
type Orientation struct {
	Yaw   float64 // radians about Y
	Pitch float64 // radians about X
}

// OrientationAt returns the field orientation at elapsed seconds t.
func OrientationAt(t float64) Orientation {
	return Orientation{
		Yaw:   t * YawRate,
		Pitch: math.Sin(t*PitchRate) * PitchAmplitude,
	}
}

// Apply rotates p by the orientation using Euler XYZ order: yaw is applied
// first, then pitch.
func (o Orientation) Apply(p r3.Vec) r3.Vec {
	p = r3.NewRotation(o.Yaw, axisY).Rotate(p)
	return r3.NewRotation(o.Pitch, axisX).Rotate(p)
}

// Rotator returns a function applying o to many points without rebuilding
// the rotations for each one.
func (o Orientation) Rotator() func(r3.Vec) r3.Vec {
	yaw := r3.NewRotation(o.Yaw, axisY)
	pitch := r3.NewRotation(o.Pitch, axisX)
	return func(p r3.Vec) r3.Vec {
		return pitch.Rotate(yaw.Rotate(p))
	}
}
