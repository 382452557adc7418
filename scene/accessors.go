package scene

import (
	"github.com/pthm-cable/sniperfx/camera"
	"github.com/pthm-cable/sniperfx/config"
	"github.com/pthm-cable/sniperfx/effects"
	"github.com/pthm-cable/sniperfx/field"
	"github.com/pthm-cable/sniperfx/nav"
	"github.com/pthm-cable/sniperfx/telemetry"
)

// Config returns the scene configuration.
func (s *Scene) Config() *config.Config {
	return s.cfg
}

// Seed returns the seed of the current field.
func (s *Scene) Seed() int64 {
	return s.seed
}

// Paused reports whether the clock is stopped.
func (s *Scene) Paused() bool {
	return s.paused
}

// Elapsed returns scene time in seconds.
func (s *Scene) Elapsed() float64 {
	return s.clock.Elapsed()
}

// Frame returns the number of unpaused steps taken.
func (s *Scene) Frame() int64 {
	return s.clock.Frame()
}

// Field returns the current particle field. Regenerate replaces it.
func (s *Scene) Field() *field.Field {
	return s.field
}

// Orientation returns the whole-field rotation for the current frame.
func (s *Scene) Orientation() field.Orientation {
	return s.orientation
}

// Camera returns the scene camera.
func (s *Scene) Camera() *camera.Perspective {
	return s.camera
}

// Orbit returns the orbit controller, or nil when disabled.
func (s *Scene) Orbit() *camera.Orbit {
	return s.orbit
}

// Effects returns the cursor and spark effects world.
func (s *Scene) Effects() *effects.World {
	return s.effects
}

// Nav returns the navigation header.
func (s *Scene) Nav() *nav.Header {
	return s.nav
}

// Perf returns the step timing collector.
func (s *Scene) Perf() *telemetry.PerfCollector {
	return s.perf
}

// OutputDir returns the output directory, or empty when output is disabled.
func (s *Scene) OutputDir() string {
	return s.output.Dir()
}
