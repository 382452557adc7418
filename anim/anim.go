// Package anim holds the small animation primitives shared by the header and
// the cursor effects: damped springs and keyframe interpolation.
package anim

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Spring describes a damped harmonic oscillator.
type Spring struct {
	Frequency float64 // angular frequency, rad/s
	Damping   float64 // ratio: <1 bouncy, 1 critical, >1 sluggish
}

// FromStiffness converts stiffness/damping coefficients for a unit mass into
// angular frequency and damping ratio.
func FromStiffness(stiffness, damping float64) Spring {
	w := math.Sqrt(stiffness)
	if w == 0 {
		return Spring{}
	}
	return Spring{Frequency: w, Damping: damping / (2 * w)}
}

// SettleIn returns a critically damped spring that covers nearly all of its
// distance in about d seconds.
func SettleIn(d float64) Spring {
	if d <= 0 {
		d = 0.5
	}
	return Spring{Frequency: 2 * math.Pi / d, Damping: 1}
}

// Motion animates a scalar toward a target.
type Motion struct {
	Pos, Vel float64

	params Spring
	step   harmonica.Spring
	stepDT float64
}

// NewMotion starts a motion at pos using spring s.
func NewMotion(s Spring, pos float64) Motion {
	return Motion{Pos: pos, params: s}
}

// Step advances the motion by dt seconds toward target and returns the new position.
func (m *Motion) Step(dt, target float64) float64 {
	if dt <= 0 {
		return m.Pos
	}
	// harmonica bakes dt into its coefficients
	if dt != m.stepDT {
		m.step = harmonica.NewSpring(dt, m.params.Frequency, m.params.Damping)
		m.stepDT = dt
	}
	m.Pos, m.Vel = m.step.Update(m.Pos, m.Vel, target)
	return m.Pos
}

// Settled reports whether the motion rests within eps of target.
func (m *Motion) Settled(target, eps float64) bool {
	return math.Abs(m.Pos-target) <= eps && math.Abs(m.Vel) <= eps
}

// Keyframes interpolates linearly across evenly spaced frames at progress t
// in [0, 1]. Progress outside the range clamps to the end frames.
func Keyframes(t float64, frames ...float64) float64 {
	switch len(frames) {
	case 0:
		return 0
	case 1:
		return frames[0]
	}
	if t <= 0 {
		return frames[0]
	}
	if t >= 1 {
		return frames[len(frames)-1]
	}

	pos := t * float64(len(frames)-1)
	i := int(pos)
	frac := pos - float64(i)
	return frames[i]*(1-frac) + frames[i+1]*frac
}

// Loop returns progress in [0, 1) through a repeating cycle of the given
// period, starting after delay. ok is false until the delay has elapsed.
func Loop(elapsed, delay, period float64) (progress float64, ok bool) {
	t := elapsed - delay
	if t < 0 || period <= 0 {
		return 0, false
	}
	return math.Mod(t, period) / period, true
}
