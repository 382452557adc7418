// Package scene drives the animated background: it owns the clock, the
// particle field and everything animated around it, and advances them once
// per frame. Drawing is left to the window, terminal and snapshot frontends.
package scene

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/sniperfx/camera"
	"github.com/pthm-cable/sniperfx/config"
	"github.com/pthm-cable/sniperfx/effects"
	"github.com/pthm-cable/sniperfx/field"
	"github.com/pthm-cable/sniperfx/nav"
	"github.com/pthm-cable/sniperfx/telemetry"
)

// Options configures a scene instance.
type Options struct {
	Config         *config.Config // nil uses config.Cfg()
	Seed           int64          // 0 = config seed, then time-based
	LogStats       bool           // emit window stats via slog
	StatsWindowSec float64        // 0 = config value
	OutputDir      string         // empty disables CSV output
	StepsPerUpdate int            // steps per UpdateHeadless call
	ActivePath     string         // highlighted nav link
}

// Scene holds the complete animated state.
type Scene struct {
	cfg  *config.Config
	rng  *rand.Rand
	seed int64

	clock       Clock
	field       *field.Field
	orientation field.Orientation

	camera *camera.Perspective
	orbit  *camera.Orbit

	effects *effects.World
	nav     *nav.Header

	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	logStats  bool

	statsCallback func(telemetry.WindowStats)

	paused         bool
	stepsPerUpdate int
}

// New builds a scene from opts.
func New(opts Options) (*Scene, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Field.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	s := &Scene{
		cfg:            cfg,
		rng:            rand.New(rand.NewSource(seed)),
		seed:           seed,
		perf:           telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector:      telemetry.NewCollector(statsWindow),
		logStats:       opts.LogStats,
		stepsPerUpdate: steps,
	}

	f, err := field.Generate(cfg.Field.Count, s.rng)
	if err != nil {
		return nil, fmt.Errorf("generating field: %w", err)
	}
	s.field = f
	s.collector.Start(f)

	pos := cfg.Scene.Camera.Position
	s.camera = camera.New(
		float64(cfg.Screen.Width), float64(cfg.Screen.Height),
		r3.Vec{X: pos[0], Y: pos[1], Z: pos[2]},
		cfg.Derived.FOVRadians,
	)
	if cfg.Orbit.Enabled {
		s.orbit = camera.NewOrbit(s.camera.Position, s.camera.Target, cfg.Derived.MinPolar, cfg.Derived.MaxPolar)
		s.orbit.AutoRotate = cfg.Orbit.AutoRotate
		s.orbit.AutoRotateSpeed = cfg.Orbit.AutoRotateSpeed
		s.orbit.Damping = cfg.Orbit.Damping
		s.orbit.DragSpeed = cfg.Orbit.DragSpeed
		s.orbit.Apply(s.camera)
	}

	s.effects = effects.New(cfg, s.rng)
	s.nav = nav.New(cfg, opts.ActivePath)
	s.nav.OnHover(s.onNavHover)

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	s.output = output
	if err := s.output.WriteConfig(cfg); err != nil {
		s.output.Close()
		return nil, fmt.Errorf("writing config: %w", err)
	}

	slog.Info("scene created",
		"seed", seed,
		"particles", f.Count(),
		"orbit", cfg.Orbit.Enabled,
		"active", s.nav.Active(),
	)
	return s, nil
}

// onNavHover attaches or removes the sparks of a link.
func (s *Scene) onNavHover(index int, anchor nav.Rect, hovering bool) {
	if !hovering {
		s.effects.HoverEnd(index)
		return
	}
	x, y := anchor.Center()
	s.effects.HoverStart(index, x, y)
}

// Step advances the scene by dt seconds. A paused scene keeps its clock and
// field still while the camera and UI animations keep running.
func (s *Scene) Step(dt float64) {
	if dt < 0 {
		dt = 0
	}
	s.perf.StartStep()

	if !s.paused {
		s.perf.StartPhase(telemetry.PhaseField)
		elapsed := s.clock.Advance(dt)
		s.field.Update(elapsed)

		s.perf.StartPhase(telemetry.PhaseOrientation)
		s.orientation = field.OrientationAt(elapsed)
	}

	s.perf.StartPhase(telemetry.PhaseCamera)
	if s.orbit != nil {
		s.orbit.Update(dt)
		s.orbit.Apply(s.camera)
	}

	s.perf.StartPhase(telemetry.PhaseNav)
	s.nav.Step(dt)

	s.perf.StartPhase(telemetry.PhaseEffects)
	if i := s.nav.Hovered(); i >= 0 {
		// Sparks follow the link while the header slides or is laid out again
		x, y := s.nav.Anchor(i).Center()
		s.effects.MoveSparks(i, x, y)
	}
	s.effects.Step(dt)

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	if !s.paused {
		s.collector.RecordFrame()
		s.flushTelemetry()
	}

	s.perf.EndStep()
}

// UpdateHeadless runs the configured number of fixed-dt steps.
func (s *Scene) UpdateHeadless() {
	for i := 0; i < s.stepsPerUpdate; i++ {
		s.Step(s.cfg.Derived.DT)
	}
}

// flushTelemetry emits a stats record when the current window is complete.
func (s *Scene) flushTelemetry() {
	elapsed := s.clock.Elapsed()
	if !s.collector.ShouldFlush(elapsed) {
		return
	}

	stats := s.collector.Flush(s.clock.Frame(), elapsed, s.field, s.orientation)
	perfStats := s.perf.Stats()

	if s.statsCallback != nil {
		s.statsCallback(stats)
	}

	if s.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := s.output.WriteStats(stats); err != nil {
		slog.Error("failed to write field stats", "error", err)
	}
	if err := s.output.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// PointerMoved feeds a pointer position in screen pixels.
func (s *Scene) PointerMoved(x, y float64) {
	s.effects.SetPointer(x, y)
	s.nav.PointerMoved(x, y)
}

// SetPointerDown records whether the primary pointer button is held.
func (s *Scene) SetPointerDown(down bool) {
	s.nav.SetPressed(down)
}

// Click activates the nav link under (x, y), if any. Returns its href.
func (s *Scene) Click(x, y float64) (href string, ok bool) {
	index, ok := s.nav.HitTest(x, y)
	if !ok {
		return "", false
	}
	href = s.nav.Items()[index].Href
	s.nav.Navigate(href)
	slog.Info("navigate", "href", href, "elapsed", s.clock.Elapsed())
	return href, true
}

// Drag rotates the orbit camera by a pointer drag in pixels. It does nothing
// when the orbit controller is disabled.
func (s *Scene) Drag(dx, dy float64) {
	if s.orbit != nil {
		s.orbit.Drag(dx, dy)
	}
}

// ResetCamera restores the initial camera view.
func (s *Scene) ResetCamera() {
	if s.orbit == nil {
		return
	}
	s.orbit.Reset()
	s.orbit.Apply(s.camera)
}

// Regenerate replaces the field with a freshly generated one and restarts the
// clock. seed 0 draws a new seed from the scene's generator.
func (s *Scene) Regenerate(seed int64) error {
	if seed == 0 {
		seed = s.rng.Int63()
	}
	f, err := field.Generate(s.cfg.Field.Count, rand.New(rand.NewSource(seed)))
	if err != nil {
		return fmt.Errorf("regenerating field: %w", err)
	}

	s.field = f
	s.seed = seed
	s.clock.Reset()
	s.orientation = field.Orientation{}
	s.collector = telemetry.NewCollector(s.collector.WindowDuration())
	s.collector.Start(f)

	slog.Info("field regenerated", "seed", seed, "particles", f.Count())
	return nil
}

// Layout positions the nav links for a screen width; measure returns a
// label's pixel width.
func (s *Scene) Layout(screenW float64, measure func(label string) float64) {
	s.nav.Layout(screenW, measure)
}

// ControlsWidth is the width of the window controls panel in pixels.
const ControlsWidth = 220

const panelMargin = 10

// ControlsOrigin returns the top-left corner of the controls panel for a
// screen width: right-aligned just below the header.
func (s *Scene) ControlsOrigin(screenW float64) (x, y float64) {
	return screenW - ControlsWidth - panelMargin, float64(s.cfg.Nav.Height) + panelMargin
}

// Resize updates the camera viewport.
func (s *Scene) Resize(w, h float64) {
	s.camera.Resize(w, h)
}

// SetPaused pauses or resumes the clock.
func (s *Scene) SetPaused(paused bool) {
	s.paused = paused
}

// TogglePause flips the paused state and returns the new value.
func (s *Scene) TogglePause() bool {
	s.paused = !s.paused
	return s.paused
}

// SetAutoRotate updates the orbit auto-rotation settings.
func (s *Scene) SetAutoRotate(on bool, speed float64) {
	if s.orbit == nil {
		return
	}
	s.orbit.AutoRotate = on
	s.orbit.AutoRotateSpeed = speed
}

// SetStatsCallback registers fn to receive every flushed stats window.
func (s *Scene) SetStatsCallback(fn func(telemetry.WindowStats)) {
	s.statsCallback = fn
}

// Close flushes and closes output files.
func (s *Scene) Close() error {
	return s.output.Close()
}
