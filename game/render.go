package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sniperfx/renderer"
	"github.com/pthm-cable/sniperfx/ui"
)

const controlsLegend = "[Space] pause  [Tab] controls  [Home] reset camera  [F11] fullscreen"

// Draw renders one frame.
func (g *Game) Draw() {
	s := g.scene
	s.Perf().RecordPresent()
	g.pointCloud.Sync()

	rl.BeginDrawing()
	g.backdrop.Clear()

	rl.BeginMode3D(renderer.Camera3D(s.Camera()))
	g.backdrop.DrawGlow()
	g.pointCloud.Draw(s.Camera(), s.Orientation())
	rl.EndMode3D()

	g.header.Draw(s.Nav(), g.screenWidth)

	g.hud.Draw(ui.HUDData{
		Particles:    s.Field().Count(),
		Frame:        s.Frame(),
		Elapsed:      s.Elapsed(),
		Yaw:          s.Orientation().Yaw,
		Pitch:        s.Orientation().Pitch,
		FPS:          rl.GetFPS(),
		Paused:       s.Paused(),
		Active:       s.Nav().Active(),
		ScreenHeight: g.screenHeight,
	})
	g.hud.DrawControls(g.screenHeight, controlsLegend)

	if g.ctrlState.ShowPerf {
		g.perfPanel.Draw(s.Perf().Stats())
	}
	g.applyControls()

	// Cursor last so it stays above every panel
	g.cursor.Draw(s.Effects())

	rl.EndDrawing()
}
