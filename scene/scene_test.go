package scene

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/sniperfx/config"
	"github.com/pthm-cable/sniperfx/field"
	"github.com/pthm-cable/sniperfx/telemetry"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Defaults()
	cfg.Field.Count = 200
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	return cfg
}

func newTestScene(t *testing.T, opts Options) *Scene {
	t.Helper()
	if opts.Config == nil {
		opts.Config = testConfig(t)
	}
	if opts.Seed == 0 {
		opts.Seed = 42
	}
	s, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func fixedWidth(label string) float64 {
	return float64(len(label)) * 10
}

func TestClock(t *testing.T) {
	var c Clock
	c.Advance(0.5)
	c.Advance(-1)
	c.Advance(0.25)

	if c.Elapsed() != 0.75 {
		t.Errorf("Elapsed() = %v, want 0.75", c.Elapsed())
	}
	if c.Frame() != 3 {
		t.Errorf("Frame() = %d, want 3", c.Frame())
	}

	c.Reset()
	if c.Elapsed() != 0 || c.Frame() != 0 {
		t.Errorf("after Reset: elapsed %v frame %d", c.Elapsed(), c.Frame())
	}
}

func TestNewRejectsInvalidCount(t *testing.T) {
	cfg := testConfig(t)
	cfg.Field.Count = 0

	if _, err := New(Options{Config: cfg, Seed: 1}); err == nil {
		t.Fatal("expected error for zero particle count")
	}
}

func TestStepUpdatesFieldAndOrientation(t *testing.T) {
	s := newTestScene(t, Options{})
	_, y0, _ := s.Field().Position(0)

	s.Step(0.5)
	s.Step(0.5)

	if s.Elapsed() != 1.0 {
		t.Errorf("Elapsed() = %v, want 1.0", s.Elapsed())
	}
	if _, y1, _ := s.Field().Position(0); y1 == y0 {
		t.Error("particle height unchanged after two steps")
	}
	if got, want := s.Orientation(), field.OrientationAt(1.0); got != want {
		t.Errorf("Orientation() = %+v, want %+v", got, want)
	}
}

func TestStepNegativeDelta(t *testing.T) {
	s := newTestScene(t, Options{})
	s.Step(0.25)
	s.Step(-3)

	if s.Elapsed() != 0.25 {
		t.Errorf("Elapsed() = %v, want 0.25 after a negative delta", s.Elapsed())
	}
}

func TestPausedSceneHoldsField(t *testing.T) {
	s := newTestScene(t, Options{})
	s.Step(0.1)

	before := append([]float32(nil), s.Field().Positions()...)
	s.SetPaused(true)
	for i := 0; i < 10; i++ {
		s.Step(0.1)
	}

	if s.Elapsed() != 0.1 {
		t.Errorf("Elapsed() = %v while paused, want 0.1", s.Elapsed())
	}
	for i, v := range s.Field().Positions() {
		if v != before[i] {
			t.Fatalf("position %d changed while paused", i)
		}
	}

	if s.TogglePause() {
		t.Error("TogglePause() = true, want resumed")
	}
	s.Step(0.1)
	if s.Elapsed() <= 0.1 {
		t.Error("clock did not advance after resuming")
	}
}

func TestUpdateHeadless(t *testing.T) {
	s := newTestScene(t, Options{StepsPerUpdate: 3})
	s.UpdateHeadless()

	if s.Frame() != 3 {
		t.Errorf("Frame() = %d, want 3", s.Frame())
	}
	if want := 3 * s.Config().Derived.DT; math.Abs(s.Elapsed()-want) > 1e-12 {
		t.Errorf("Elapsed() = %v, want %v", s.Elapsed(), want)
	}
}

func TestSameSeedSameScene(t *testing.T) {
	a := newTestScene(t, Options{Seed: 7})
	b := newTestScene(t, Options{Seed: 7})
	for i := 0; i < 5; i++ {
		a.Step(1.0 / 60)
		b.Step(1.0 / 60)
	}

	pa, pb := a.Field().Positions(), b.Field().Positions()
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("positions diverge at %d: %v vs %v", i, pa[i], pb[i])
		}
	}
}

func TestStatsWindows(t *testing.T) {
	var windows []telemetry.WindowStats
	s := newTestScene(t, Options{StatsWindowSec: 1.0})
	s.SetStatsCallback(func(w telemetry.WindowStats) {
		windows = append(windows, w)
	})

	for i := 0; i < 12; i++ {
		s.Step(0.25)
	}

	if len(windows) != 3 {
		t.Fatalf("got %d windows, want 3", len(windows))
	}
	for i, w := range windows {
		if w.Frames != 4 {
			t.Errorf("window %d: Frames = %d, want 4", i, w.Frames)
		}
		if w.Particles != 200 {
			t.Errorf("window %d: Particles = %d, want 200", i, w.Particles)
		}
	}
}

func TestOutputFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	s := newTestScene(t, Options{OutputDir: dir, StatsWindowSec: 0.5})
	for i := 0; i < 4; i++ {
		s.Step(0.25)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	for _, name := range []string{"config.yaml", "field_stats.csv", "perf.csv"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}

// settle runs the entrance animation long enough for the header to come to rest.
func settle(s *Scene) {
	for i := 0; i < 180; i++ {
		s.Step(1.0 / 60)
	}
}

func TestNavHoverSpawnsSparks(t *testing.T) {
	s := newTestScene(t, Options{ActivePath: "/"})
	s.Layout(1280, fixedWidth)
	settle(s)

	item := s.Nav().Items()[2]
	cx, cy := item.Rect.Center()
	offsetY, _ := s.Nav().Bar()

	s.PointerMoved(cx, cy+offsetY)
	if got, want := s.Effects().SparkCount(), s.Config().Nav.SparksPerItem; got != want {
		t.Errorf("SparkCount() = %d after hover, want %d", got, want)
	}

	s.PointerMoved(0, 600)
	if got := s.Effects().SparkCount(); got != 0 {
		t.Errorf("SparkCount() = %d after leaving, want 0", got)
	}
}

func TestClickNavigates(t *testing.T) {
	s := newTestScene(t, Options{ActivePath: "/"})
	s.Layout(1280, fixedWidth)
	settle(s)

	item := s.Nav().Items()[3]
	cx, cy := item.Rect.Center()
	offsetY, _ := s.Nav().Bar()

	href, ok := s.Click(cx, cy+offsetY)
	if !ok || href != item.Href {
		t.Fatalf("Click = (%q, %v), want (%q, true)", href, ok, item.Href)
	}
	if s.Nav().Active() != item.Href {
		t.Errorf("Active() = %q, want %q", s.Nav().Active(), item.Href)
	}

	if _, ok := s.Click(5, 700); ok {
		t.Error("click outside the header hit a link")
	}
}

func TestRegenerate(t *testing.T) {
	s := newTestScene(t, Options{})
	s.Step(1)
	old := s.Field()

	if err := s.Regenerate(99); err != nil {
		t.Fatalf("Regenerate: %v", err)
	}
	if s.Field() == old {
		t.Error("Regenerate kept the old field")
	}
	if s.Seed() != 99 {
		t.Errorf("Seed() = %d, want 99", s.Seed())
	}
	if s.Elapsed() != 0 || s.Frame() != 0 {
		t.Errorf("clock not reset: elapsed %v frame %d", s.Elapsed(), s.Frame())
	}
	if s.Field().Count() != 200 {
		t.Errorf("Count() = %d, want 200", s.Field().Count())
	}
}

func TestOrbitCamera(t *testing.T) {
	cfg := testConfig(t)
	cfg.Orbit.Enabled = true
	s := newTestScene(t, Options{Config: cfg})

	start := s.Camera().Position
	for i := 0; i < 60; i++ {
		s.Step(1.0 / 60)
	}
	if s.Camera().Position == start {
		t.Error("auto-rotate did not move the camera")
	}

	s.ResetCamera()
	if d := s.Camera().Position; math.Abs(d.X-start.X) > 1e-9 || math.Abs(d.Z-start.Z) > 1e-9 {
		t.Errorf("ResetCamera position = %+v, want %+v", d, start)
	}
}

func TestOrbitDisabledIgnoresDrag(t *testing.T) {
	s := newTestScene(t, Options{})
	start := s.Camera().Position

	s.Drag(100, 50)
	s.Step(1.0 / 60)
	s.ResetCamera()

	if s.Orbit() != nil {
		t.Fatal("orbit enabled by default")
	}
	if s.Camera().Position != start {
		t.Errorf("camera moved to %+v without orbit", s.Camera().Position)
	}
}

func TestSparksTrackSlidingHeader(t *testing.T) {
	s := newTestScene(t, Options{ActivePath: "/"})
	s.Layout(1280, fixedWidth)
	for i := 0; i < 6; i++ {
		s.Step(1.0 / 60)
	}

	item := s.Nav().Items()[0]
	cx, cy := item.Rect.Center()
	offsetY, _ := s.Nav().Bar()
	s.PointerMoved(cx, cy+offsetY)
	if s.Nav().Hovered() != 0 {
		t.Fatalf("Hovered() = %d, want 0", s.Nav().Hovered())
	}

	spread := s.Config().Nav.SparkSpread
	settle(s)
	for _, d := range s.Effects().Sparks() {
		if math.Abs(d.Y-cy) > spread+0.5 {
			t.Errorf("spark y = %f, want within %f of the settled link at %f", d.Y, spread, cy)
		}
	}

	// A relayout while hovering moves the sparks with the link
	s.Layout(800, fixedWidth)
	s.Step(1.0 / 60)
	nx, _ := s.Nav().Items()[0].Rect.Center()
	for _, d := range s.Effects().Sparks() {
		if math.Abs(d.X-nx) > spread+0.5 {
			t.Errorf("spark x = %f, want within %f of the relaid link at %f", d.X, spread, nx)
		}
	}
}

func TestControlsOrigin(t *testing.T) {
	s := newTestScene(t, Options{})

	for _, w := range []float64{1280, 800} {
		x, y := s.ControlsOrigin(w)
		if x != w-ControlsWidth-10 {
			t.Errorf("ControlsOrigin(%v) x = %v, want %v", w, x, w-ControlsWidth-10)
		}
		if y != float64(s.Config().Nav.Height)+10 {
			t.Errorf("ControlsOrigin(%v) y = %v, want %v", w, y, float64(s.Config().Nav.Height)+10)
		}
	}
}
