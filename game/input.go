package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sniperfx/renderer"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.ctrlState.Paused = g.scene.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		g.scene.ResetCamera()
	}

	g.handleMouse()
}

// handleMouse feeds the pointer to the scene. A drag outside the header and
// the controls panel steers the orbit camera.
func (g *Game) handleMouse() {
	mouse := rl.GetMousePosition()
	x, y := float64(mouse.X), float64(mouse.Y)
	g.scene.PointerMoved(x, y)
	g.scene.SetPointerDown(rl.IsMouseButtonDown(rl.MouseButtonLeft))

	overPanel := g.controls.Contains(mouse.X, mouse.Y)

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !overPanel {
		if href, ok := g.scene.Click(x, y); ok {
			slog.Debug("link clicked", "href", href)
		} else {
			g.dragging = true
		}
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		g.dragging = false
	}
	if g.dragging {
		g.scene.Drag(float64(mouse.X-g.lastMouse.X), float64(mouse.Y-g.lastMouse.Y))
	}
	g.lastMouse = mouse
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth, g.screenHeight = w, h

	g.scene.Resize(float64(w), float64(h))
	g.scene.Layout(float64(w), g.header.Measure)
	g.controls.SetPosition(g.scene.ControlsOrigin(float64(w)))
}

// applyControls applies the controls panel edits and button presses.
func (g *Game) applyControls() {
	act := g.controls.Draw(&g.ctrlState)

	g.scene.SetAutoRotate(g.ctrlState.AutoRotate, float64(g.ctrlState.AutoRotateSpeed))
	if act.TogglePause {
		g.ctrlState.Paused = g.scene.TogglePause()
	}
	if act.ResetCamera {
		g.scene.ResetCamera()
	}
	if act.Regenerate {
		if err := g.scene.Regenerate(0); err != nil {
			slog.Error("failed to regenerate field", "error", err)
			return
		}
		g.pointCloud = renderer.NewPointCloud(g.scene.Field(), g.scene.Config())
	}
}
