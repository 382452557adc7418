// Package game runs the scene in a raylib window: it turns mouse and keyboard
// input into scene events and draws every layer each frame.
package game

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sniperfx/renderer"
	"github.com/pthm-cable/sniperfx/scene"
	"github.com/pthm-cable/sniperfx/ui"
)

// Game is the windowed frontend for a scene.
type Game struct {
	scene *scene.Scene

	// Rendering
	backdrop   *renderer.Backdrop
	pointCloud *renderer.PointCloud
	cursor     *renderer.CursorRenderer

	// UI
	header    *ui.HeaderBar
	hud       *ui.HUD
	controls  *ui.ControlsPanel
	perfPanel *ui.PerfPanel
	ctrlState ui.ControlsState

	// Input state
	dragging  bool
	lastMouse rl.Vector2

	screenWidth, screenHeight int32
}

// New creates the window frontend. The raylib window must already be open.
func New(opts scene.Options) (*Game, error) {
	s, err := scene.New(opts)
	if err != nil {
		return nil, fmt.Errorf("creating scene: %w", err)
	}
	cfg := s.Config()

	g := &Game{
		scene:        s,
		backdrop:     renderer.NewBackdrop(cfg),
		pointCloud:   renderer.NewPointCloud(s.Field(), cfg),
		cursor:       renderer.NewCursorRenderer(),
		header:       ui.NewHeaderBar(cfg.Nav.FontSize, cfg.Nav.Height),
		hud:          ui.NewHUD(),
		screenWidth:  int32(cfg.Screen.Width),
		screenHeight: int32(cfg.Screen.Height),
		ctrlState: ui.ControlsState{
			AutoRotate:      cfg.Orbit.AutoRotate,
			AutoRotateSpeed: float32(cfg.Orbit.AutoRotateSpeed),
		},
	}
	g.controls = ui.NewControlsPanel(scene.ControlsWidth)
	g.controls.SetPosition(s.ControlsOrigin(float64(g.screenWidth)))
	g.perfPanel = ui.NewPerfPanel(10, int32(cfg.Nav.Height)+10, 200)
	s.Layout(float64(g.screenWidth), g.header.Measure)

	rl.HideCursor()
	return g, nil
}

// Scene returns the driven scene.
func (g *Game) Scene() *scene.Scene {
	return g.scene
}

// Update handles input and advances the scene by the frame time.
func (g *Game) Update() {
	g.handleInput()
	g.scene.Step(float64(rl.GetFrameTime()))
}

// Unload closes output files and restores the system cursor.
func (g *Game) Unload() {
	rl.ShowCursor()
	if err := g.scene.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
