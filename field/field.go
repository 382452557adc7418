// Package field generates and animates the background particle field: a
// spherical shell of points whose heights ripple and whose colours cycle
// over time. Positions and colours live in two flat float32 buffers laid out
// as vertex attributes (three components per particle) so renderers can
// upload them directly.
package field

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// DefaultCount is the particle count used by the site background.
const DefaultCount = 3000

// Shell and colour parameters.
const (
	MinRadius   = 10.0
	RadiusRange = 30.0
	MaxRadius   = MinRadius + RadiusRange

	Saturation = 0.6
	Lightness  = 0.5

	// Generation hue maps x in [-hueSpan/2, hueSpan/2] onto [0, 1].
	hueSpan = 80.0
)

// Wave motion parameters.
const (
	WavePhaseScale = 0.1 // phase offset per unit of x
	WaveAmplitude  = 0.1 // height added per frame at peak
	HueTimeScale   = 0.1
	HuePhaseScale  = 0.01
)

// ErrInvalidConfiguration is returned when a field cannot be built from the
// requested parameters.
var ErrInvalidConfiguration = errors.New("field: invalid configuration")

// Source is the random source used during generation. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Field owns the position and colour buffers of a particle cloud.
// Both buffers hold exactly 3*Count values and are never reallocated.
type Field struct {
	positions []float32
	colors    []float32
	count     int

	positionsDirty bool
	colorsDirty    bool

	onDirty func(positions, colors bool)
}

// Generate builds a field of count particles distributed over a spherical
// shell of radius [MinRadius, MaxRadius] around the origin. Colour is derived
// from each particle's x coordinate. A nil rng uses a time-seeded generator.
func Generate(count int, rng Source) (*Field, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: particle count must be positive, got %d", ErrInvalidConfiguration, count)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	f := &Field{
		positions: make([]float32, count*3),
		colors:    make([]float32, count*3),
		count:     count,
	}

	for i := 0; i < count; i++ {
		// Inverse-CDF polar angle keeps the density uniform over the sphere
		theta := rng.Float64() * 2 * math.Pi
		phi := math.Acos(rng.Float64()*2 - 1)
		radius := rng.Float64()*RadiusRange + MinRadius

		sinPhi := math.Sin(phi)
		i3 := i * 3
		f.positions[i3] = float32(radius * sinPhi * math.Cos(theta))
		f.positions[i3+1] = float32(radius * sinPhi * math.Sin(theta))
		f.positions[i3+2] = float32(radius * math.Cos(phi))

		hue := (float64(f.positions[i3]) + hueSpan/2) / hueSpan
		f.setColor(i3, hue)
	}

	f.positionsDirty = true
	f.colorsDirty = true
	return f, nil
}

// Update advances the animation to elapsed seconds. Each particle's height is
// nudged by a sine wave whose phase travels along x, and its colour is
// recomputed from a slowly cycling hue. The height change accumulates: it is
// applied to the previous frame's value, not to the generated one.
func (f *Field) Update(elapsed float64) {
	for i := 0; i < f.count; i++ {
		i3 := i * 3
		x := float64(f.positions[i3])
		y := float64(f.positions[i3+1])

		f.positions[i3+1] = float32(y + math.Sin(elapsed+x*WavePhaseScale)*WaveAmplitude)
		f.setColor(i3, Hue(elapsed, x))
	}

	f.positionsDirty = true
	f.colorsDirty = true
	if f.onDirty != nil {
		f.onDirty(true, true)
	}
}

// Hue returns the animated hue in [0, 1] for a particle at x at time t.
// It is periodic in t with period 20π.
func Hue(t, x float64) float64 {
	return (math.Sin(t*HueTimeScale+x*HuePhaseScale) + 1) * 0.5
}

func (f *Field) setColor(i3 int, hue float64) {
	r, g, b := HSLToRGB(hue, Saturation, Lightness)
	f.colors[i3] = float32(r)
	f.colors[i3+1] = float32(g)
	f.colors[i3+2] = float32(b)
}

// Count returns the number of particles.
func (f *Field) Count() int {
	return f.count
}

// Positions returns the position buffer (x, y, z per particle).
// The returned slice aliases the field's storage for its whole lifetime;
// callers must treat it as read-only.
func (f *Field) Positions() []float32 {
	return f.positions
}

// Colors returns the colour buffer (r, g, b in [0, 1] per particle).
// Same aliasing rules as Positions.
func (f *Field) Colors() []float32 {
	return f.colors
}

// Position returns particle i's coordinates.
func (f *Field) Position(i int) (x, y, z float32) {
	i3 := i * 3
	return f.positions[i3], f.positions[i3+1], f.positions[i3+2]
}

// Color returns particle i's colour.
func (f *Field) Color(i int) (r, g, b float32) {
	i3 := i * 3
	return f.colors[i3], f.colors[i3+1], f.colors[i3+2]
}

// Dirty reports which buffers changed since the last ClearDirty.
func (f *Field) Dirty() (positions, colors bool) {
	return f.positionsDirty, f.colorsDirty
}

// ClearDirty is called by a renderer once it has re-uploaded the buffers.
func (f *Field) ClearDirty() {
	f.positionsDirty = false
	f.colorsDirty = false
}

// OnDirty registers fn to be called after every Update. Pass nil to remove it.
func (f *Field) OnDirty(fn func(positions, colors bool)) {
	f.onDirty = fn
}
