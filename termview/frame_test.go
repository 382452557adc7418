package termview

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/sniperfx/camera"
	"github.com/pthm-cable/sniperfx/field"
)

// seq replays a fixed list of uniform draws.
type seq struct {
	v []float64
	i int
}

func (s *seq) Float64() float64 {
	x := s.v[s.i%len(s.v)]
	s.i++
	return x
}

// Draws (theta, phi, radius): {0, 1, 0} places a point at (0, 0, 10) and
// {0, 0, 0} at (0, 0, -10).
var (
	nearPoint = []float64{0, 1, 0}
	farPoint  = []float64{0, 0, 0}
)

func newTestField(t *testing.T, draws ...[]float64) *field.Field {
	t.Helper()
	var all []float64
	for _, d := range draws {
		all = append(all, d...)
	}
	f, err := field.Generate(len(draws), &seq{v: all})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return f
}

func newTestCamera() *camera.Perspective {
	return camera.New(1, 1, r3.Vec{Z: 30}, 75*math.Pi/180)
}

func TestRasterize_CenterPoint(t *testing.T) {
	f := newTestField(t, nearPoint)
	fr := NewFrame(80, 24)

	n := fr.Rasterize(f, field.Orientation{}, newTestCamera(), 30, 100)
	if n != 1 {
		t.Fatalf("visible = %d, want 1", n)
	}

	c := fr.At(40, 12)
	if !c.Set {
		t.Fatal("expected centre cell (40, 12) to be set")
	}
	if c.Rune != '@' {
		t.Errorf("rune = %q, want '@' for a point in front of the fog", c.Rune)
	}
	if math.Abs(c.Depth-20) > 1e-4 {
		t.Errorf("depth = %v, want 20", c.Depth)
	}

	r, g, b := f.Color(0)
	if math.Abs(c.R-float64(r)) > 1e-9 || math.Abs(c.G-float64(g)) > 1e-9 || math.Abs(c.B-float64(b)) > 1e-9 {
		t.Errorf("colour = (%v, %v, %v), want unfaded (%v, %v, %v)", c.R, c.G, c.B, r, g, b)
	}
}

func TestRasterize_NearestWins(t *testing.T) {
	for _, order := range [][][]float64{{nearPoint, farPoint}, {farPoint, nearPoint}} {
		f := newTestField(t, order...)
		fr := NewFrame(80, 24)
		fr.Rasterize(f, field.Orientation{}, newTestCamera(), 30, 100)

		if c := fr.At(40, 12); math.Abs(c.Depth-20) > 1e-4 {
			t.Errorf("centre depth = %v, want the nearer point at 20", c.Depth)
		}
	}
}

func TestRasterize_FogFadesAndCulls(t *testing.T) {
	f := newTestField(t, nearPoint)
	fr := NewFrame(80, 24)

	// Distance 20 is halfway through [0, 40]
	fr.Rasterize(f, field.Orientation{}, newTestCamera(), 0, 40)
	c := fr.At(40, 12)
	if c.Rune != '+' {
		t.Errorf("rune = %q, want '+' at half fog", c.Rune)
	}
	r, _, _ := f.Color(0)
	if math.Abs(c.R-float64(r)*0.5) > 1e-6 {
		t.Errorf("red = %v, want %v", c.R, float64(r)*0.5)
	}

	if n := fr.Rasterize(f, field.Orientation{}, newTestCamera(), 1, 5); n != 0 {
		t.Errorf("visible = %d beyond fog far, want 0", n)
	}
	if fr.At(40, 12).Set {
		t.Error("cell still set after rasterising a fully fogged field")
	}
}

func TestRasterize_AppliesOrientation(t *testing.T) {
	f := newTestField(t, nearPoint)
	fr := NewFrame(80, 24)

	// A half turn of yaw moves the point behind the origin
	fr.Rasterize(f, field.Orientation{Yaw: math.Pi}, newTestCamera(), 30, 100)
	if c := fr.At(40, 12); math.Abs(c.Depth-40) > 1e-4 {
		t.Errorf("depth = %v, want 40 after half-turn yaw", c.Depth)
	}
}

func TestRasterize_DoesNotMutateCamera(t *testing.T) {
	f := newTestField(t, nearPoint)
	cam := newTestCamera()
	NewFrame(80, 24).Rasterize(f, field.Orientation{}, cam, 30, 100)

	if cam.ViewportW != 1 || cam.ViewportH != 1 {
		t.Errorf("camera viewport changed to %vx%v", cam.ViewportW, cam.ViewportH)
	}
}

func TestFrameResize(t *testing.T) {
	fr := NewFrame(4, 4)
	fr.Resize(2, 3)
	if fr.W != 2 || fr.H != 3 {
		t.Fatalf("size = %dx%d, want 2x3", fr.W, fr.H)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			if fr.At(x, y).Set {
				t.Errorf("cell (%d, %d) set after resize", x, y)
			}
		}
	}

	empty := NewFrame(0, 0)
	if n := empty.Rasterize(newTestField(t, nearPoint), field.Orientation{}, newTestCamera(), 30, 100); n != 0 {
		t.Errorf("visible = %d on empty frame, want 0", n)
	}
}
