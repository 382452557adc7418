package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sniperfx/config"
	"github.com/pthm-cable/sniperfx/game"
	"github.com/pthm-cable/sniperfx/scene"
	"github.com/pthm-cable/sniperfx/termview"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	terminal := flag.Bool("terminal", false, "Render in the terminal instead of a window")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = config seed, then time-based)")
	count := flag.Int("count", 0, "Particle count (0 = use config)")
	maxFrames := flag.Int64("max-frames", 0, "Stop after N frames (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Scene steps per headless update call")
	activePath := flag.String("path", "/", "Current page path for the header")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *count > 0 {
		cfg.Field.Count = *count
		if err := cfg.Finalize(); err != nil {
			slog.Error("invalid particle count", "error", err)
			os.Exit(1)
		}
	}

	opts := scene.Options{
		Config:         cfg,
		Seed:           *seed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		StepsPerUpdate: *stepsPerUpdate,
		ActivePath:     *activePath,
	}

	var err error
	switch {
	case *headless:
		err = runHeadless(opts, *maxFrames)
	case *terminal:
		err = runTerminal(opts, *maxFrames)
	default:
		err = runWindow(cfg, opts, *maxFrames)
	}
	if err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// runHeadless steps the scene at the configured rate without drawing.
func runHeadless(opts scene.Options, maxFrames int64) error {
	s, err := scene.New(opts)
	if err != nil {
		return err
	}
	defer s.Close()

	slog.Info("starting headless run",
		"seed", s.Seed(),
		"max_frames", maxFrames,
		"steps_per_update", opts.StepsPerUpdate,
	)

	for {
		s.UpdateHeadless()

		if maxFrames > 0 && s.Frame() >= maxFrames {
			slog.Info("max frames reached", "frame", s.Frame(), "elapsed", s.Elapsed())
			return nil
		}
	}
}

// runWindow opens a raylib window and runs the graphical frontend.
func runWindow(cfg *config.Config, opts scene.Options, maxFrames int64) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.New(opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if maxFrames > 0 && g.Scene().Frame() >= maxFrames {
			break
		}
	}
	return nil
}

// runTerminal draws the field into the terminal until Esc, q or Ctrl-C.
func runTerminal(opts scene.Options, maxFrames int64) error {
	// Logs would corrupt the terminal display
	opts.LogStats = false
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))

	s, err := scene.New(opts)
	if err != nil {
		return err
	}
	defer s.Close()

	view, err := termview.New()
	if err != nil {
		return err
	}
	defer view.Close()

	cfg := s.Config()
	fog := cfg.Scene.Fog
	ticker := time.NewTicker(time.Duration(float64(time.Second) * cfg.Derived.DT))
	defer ticker.Stop()

	view.SetStatus(func(visible int) string {
		return fmt.Sprintf(" t=%.1fs  points=%d/%d  [Enter] pause  [q] quit", s.Elapsed(), visible, s.Field().Count())
	})

	last := time.Now()
	for {
		select {
		case ev := <-view.Events():
			if termview.IsQuit(ev) {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEnter {
					s.TogglePause()
				}
			case *tcell.EventResize:
				view.Sync()
			}
		case now := <-ticker.C:
			s.Step(now.Sub(last).Seconds())
			last = now

			s.Perf().RecordPresent()
			view.Draw(s.Field(), s.Orientation(), s.Camera(), fog.Near, fog.Far)

			if maxFrames > 0 && s.Frame() >= maxFrames {
				return nil
			}
		}
	}
}
