package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/sniperfx/field"
)

// WindowStats holds aggregated field statistics for a time window.
type WindowStats struct {
	WindowStartFrame int64   `csv:"-"`
	WindowEndFrame   int64   `csv:"window_end"`
	ElapsedSec       float64 `csv:"elapsed"`
	Frames           int     `csv:"frames"`
	Particles        int     `csv:"particles"`

	// Distance from origin
	RadiusMean float64 `csv:"radius_mean"`
	RadiusStd  float64 `csv:"radius_std"`
	RadiusP10  float64 `csv:"radius_p10"`
	RadiusP50  float64 `csv:"radius_p50"`
	RadiusP90  float64 `csv:"radius_p90"`

	// Vertical wave motion
	HeightMean  float64 `csv:"height_mean"`
	HeightMin   float64 `csv:"height_min"`
	HeightMax   float64 `csv:"height_max"`
	HeightDrift float64 `csv:"height_drift"` // change in mean height over the window

	// Colour
	RedMean   float64 `csv:"red_mean"`
	GreenMean float64 `csv:"green_mean"`
	BlueMean  float64 `csv:"blue_mean"`

	// Whole-field rotation at window end
	Yaw   float64 `csv:"yaw"`
	Pitch float64 `csv:"pitch"`
}

// FieldSample is a point-in-time summary of a particle field.
type FieldSample struct {
	Count                        int
	RadiusMean, RadiusStd        float64
	RadiusP10, RadiusP50         float64
	RadiusP90                    float64
	HeightMean, HeightMin        float64
	HeightMax                    float64
	RedMean, GreenMean, BlueMean float64
}

// SampleField summarises the current buffers of f.
func SampleField(f *field.Field) FieldSample {
	n := f.Count()
	radii := make([]float64, n)
	heights := make([]float64, n)
	reds := make([]float64, n)
	greens := make([]float64, n)
	blues := make([]float64, n)

	for i := 0; i < n; i++ {
		x, y, z := f.Position(i)
		radii[i] = r3.Norm(r3.Vec{X: float64(x), Y: float64(y), Z: float64(z)})
		heights[i] = float64(y)
		r, g, b := f.Color(i)
		reds[i], greens[i], blues[i] = float64(r), float64(g), float64(b)
	}

	s := FieldSample{Count: n}
	s.RadiusMean, s.RadiusStd = stat.PopMeanStdDev(radii, nil)
	sort.Float64s(radii)
	s.RadiusP10 = Percentile(radii, 0.10)
	s.RadiusP50 = Percentile(radii, 0.50)
	s.RadiusP90 = Percentile(radii, 0.90)

	s.HeightMean = stat.Mean(heights, nil)
	s.HeightMin = floats.Min(heights)
	s.HeightMax = floats.Max(heights)

	s.RedMean = stat.Mean(reds, nil)
	s.GreenMean = stat.Mean(greens, nil)
	s.BlueMean = stat.Mean(blues, nil)
	return s
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartFrame),
		slog.Int64("window_end", s.WindowEndFrame),
		slog.Float64("elapsed", s.ElapsedSec),
		slog.Int("frames", s.Frames),
		slog.Int("particles", s.Particles),
		slog.Float64("radius_mean", s.RadiusMean),
		slog.Float64("radius_std", s.RadiusStd),
		slog.Float64("radius_p50", s.RadiusP50),
		slog.Float64("height_mean", s.HeightMean),
		slog.Float64("height_drift", s.HeightDrift),
		slog.Float64("yaw", s.Yaw),
		slog.Float64("pitch", s.Pitch),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndFrame,
		"elapsed", s.ElapsedSec,
		"frames", s.Frames,
		"particles", s.Particles,
		"radius_mean", s.RadiusMean,
		"radius_std", s.RadiusStd,
		"radius_p10", s.RadiusP10,
		"radius_p50", s.RadiusP50,
		"radius_p90", s.RadiusP90,
		"height_mean", s.HeightMean,
		"height_min", s.HeightMin,
		"height_max", s.HeightMax,
		"height_drift", s.HeightDrift,
		"red_mean", s.RedMean,
		"green_mean", s.GreenMean,
		"blue_mean", s.BlueMean,
		"yaw", s.Yaw,
		"pitch", s.Pitch,
	)
}
