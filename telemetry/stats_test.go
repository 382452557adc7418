package telemetry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/sniperfx/field"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func newField(t *testing.T, n int) *field.Field {
	t.Helper()
	f, err := field.Generate(n, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return f
}

func TestSampleField(t *testing.T) {
	f := newField(t, 2000)
	s := SampleField(f)

	if s.Count != 2000 {
		t.Errorf("Count = %d, want 2000", s.Count)
	}
	if s.RadiusP10 < field.MinRadius || s.RadiusP90 > field.MaxRadius {
		t.Errorf("radius percentiles [%v, %v] outside shell", s.RadiusP10, s.RadiusP90)
	}
	if !(s.RadiusP10 <= s.RadiusP50 && s.RadiusP50 <= s.RadiusP90) {
		t.Errorf("percentiles out of order: %v %v %v", s.RadiusP10, s.RadiusP50, s.RadiusP90)
	}
	// Radius is uniform in [10, 40)
	if math.Abs(s.RadiusMean-25) > 1.5 {
		t.Errorf("RadiusMean = %v, want ~25", s.RadiusMean)
	}
	if s.RadiusStd <= 0 {
		t.Errorf("RadiusStd = %v, want > 0", s.RadiusStd)
	}
	if s.HeightMin > s.HeightMean || s.HeightMean > s.HeightMax {
		t.Errorf("height mean %v not within [%v, %v]", s.HeightMean, s.HeightMin, s.HeightMax)
	}
	for name, v := range map[string]float64{"red": s.RedMean, "green": s.GreenMean, "blue": s.BlueMean} {
		if v < 0 || v > 1 {
			t.Errorf("%s mean = %v, want in [0,1]", name, v)
		}
	}
}

func TestSampleFieldSinglePoint(t *testing.T) {
	f := newField(t, 1)
	s := SampleField(f)

	x, y, z := f.Position(0)
	want := math.Sqrt(float64(x)*float64(x) + float64(y)*float64(y) + float64(z)*float64(z))
	if math.Abs(s.RadiusMean-want) > 1e-9 || s.RadiusStd != 0 {
		t.Errorf("radius = %v±%v, want %v±0", s.RadiusMean, s.RadiusStd, want)
	}
	if s.HeightMin != s.HeightMax || s.HeightMin != float64(y) {
		t.Errorf("height range [%v, %v], want %v", s.HeightMin, s.HeightMax, y)
	}
}

func TestCollectorWindows(t *testing.T) {
	f := newField(t, 100)
	c := NewCollector(1.0)
	c.Start(f)

	const dt = 0.25
	var elapsed float64
	var flushed []WindowStats
	for frame := int64(1); frame <= 8; frame++ {
		elapsed += dt
		f.Update(elapsed)
		c.RecordFrame()
		if c.ShouldFlush(elapsed) {
			flushed = append(flushed, c.Flush(frame, elapsed, f, field.OrientationAt(elapsed)))
		}
	}

	if len(flushed) != 2 {
		t.Fatalf("flushed %d windows, want 2", len(flushed))
	}
	for i, w := range flushed {
		if w.Frames != 4 {
			t.Errorf("window %d: Frames = %d, want 4", i, w.Frames)
		}
		if w.Particles != 100 {
			t.Errorf("window %d: Particles = %d, want 100", i, w.Particles)
		}
	}
	if flushed[0].WindowStartFrame != 0 || flushed[0].WindowEndFrame != 4 {
		t.Errorf("first window frames [%d, %d], want [0, 4]", flushed[0].WindowStartFrame, flushed[0].WindowEndFrame)
	}
	if flushed[1].WindowStartFrame != 4 || flushed[1].WindowEndFrame != 8 {
		t.Errorf("second window frames [%d, %d], want [4, 8]", flushed[1].WindowStartFrame, flushed[1].WindowEndFrame)
	}
	if want := field.OrientationAt(2.0).Yaw; flushed[1].Yaw != want {
		t.Errorf("Yaw = %v, want %v", flushed[1].Yaw, want)
	}
}

func TestCollectorHeightDrift(t *testing.T) {
	f := newField(t, 50)
	c := NewCollector(10)
	c.Start(f)
	before := SampleField(f).HeightMean

	f.Update(0.5)
	f.Update(1.0)
	after := SampleField(f).HeightMean

	w := c.Flush(2, 1.0, f, field.OrientationAt(1.0))
	if math.Abs(w.HeightDrift-(after-before)) > 1e-12 {
		t.Errorf("HeightDrift = %v, want %v", w.HeightDrift, after-before)
	}

	// Next window starts from the flushed mean
	w = c.Flush(3, 2.0, f, field.OrientationAt(2.0))
	if w.HeightDrift != 0 {
		t.Errorf("HeightDrift without updates = %v, want 0", w.HeightDrift)
	}
}

func TestNewCollectorDefaultWindow(t *testing.T) {
	if got := NewCollector(0).WindowDuration(); got != 10 {
		t.Errorf("WindowDuration() = %v, want 10", got)
	}
}
