package telemetry

import "github.com/pthm-cable/sniperfx/field"

// Collector groups frames into fixed windows of scene time and produces
// WindowStats for each.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	windowStartFrame int64
	windowStartSec   float64
	frames           int

	// Mean height at the start of the window, for drift
	startHeight float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in scene seconds.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 10
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// Start records the baseline for the first window.
func (c *Collector) Start(f *field.Field) {
	c.startHeight = SampleField(f).HeightMean
}

// RecordFrame counts a frame in the current window.
func (c *Collector) RecordFrame() {
	c.frames++
}

// ShouldFlush returns true once the current window has covered its duration.
func (c *Collector) ShouldFlush(elapsed float64) bool {
	return elapsed-c.windowStartSec >= c.windowDurationSec
}

// Flush produces a WindowStats and resets for the next window.
func (c *Collector) Flush(frame int64, elapsed float64, f *field.Field, o field.Orientation) WindowStats {
	s := SampleField(f)

	stats := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   frame,
		ElapsedSec:       elapsed,
		Frames:           c.frames,
		Particles:        s.Count,

		RadiusMean: s.RadiusMean,
		RadiusStd:  s.RadiusStd,
		RadiusP10:  s.RadiusP10,
		RadiusP50:  s.RadiusP50,
		RadiusP90:  s.RadiusP90,

		HeightMean:  s.HeightMean,
		HeightMin:   s.HeightMin,
		HeightMax:   s.HeightMax,
		HeightDrift: s.HeightMean - c.startHeight,

		RedMean:   s.RedMean,
		GreenMean: s.GreenMean,
		BlueMean:  s.BlueMean,

		Yaw:   o.Yaw,
		Pitch: o.Pitch,
	}

	// Reset for next window
	c.windowStartFrame = frame
	c.windowStartSec = elapsed
	c.frames = 0
	c.startHeight = s.HeightMean

	return stats
}

// WindowDuration returns the window length in scene seconds.
func (c *Collector) WindowDuration() float64 {
	return c.windowDurationSec
}
