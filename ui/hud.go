package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sniperfx/telemetry"
)

// HUDData holds all the data needed to render the HUD.
type HUDData struct {
	Particles    int
	Frame        int64
	Elapsed      float64
	Yaw, Pitch   float64
	FPS          int32
	Paused       bool
	Active       string
	ScreenHeight int32
}

// HUD renders the heads-up display in the bottom-left corner.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	x := int32(10)
	y := data.ScreenHeight - 90

	rl.DrawText(
		fmt.Sprintf("Particles: %d | Frame: %d | FPS: %d", data.Particles, data.Frame, data.FPS),
		x, y, 16, rl.LightGray,
	)
	y += 20
	rl.DrawText(
		fmt.Sprintf("t=%.1fs | yaw %.2f | pitch %+.3f | page %s", data.Elapsed, data.Yaw, data.Pitch, data.Active),
		x, y, 16, rl.LightGray,
	)
	y += 20

	if data.Paused {
		rl.DrawText("PAUSED", x, y, 16, rl.Yellow)
	}
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the step timing breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// Draw renders the panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	pad := r.Theme.Padding
	height := r.Theme.LineHeight*int32(len(telemetry.Phases)+2) + pad*2
	r.DrawPanel(p.x, p.y, p.width, height)

	y := p.y + pad
	rl.DrawText("Step Timing", p.x+pad, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += r.Theme.LineHeight + 2
	y = r.DrawLabelValue(p.x+pad, y, "avg step", fmt.Sprintf("%dus", stats.AvgStepDuration.Microseconds()))

	for _, phase := range telemetry.Phases {
		color := r.Theme.ValueColor
		pct := stats.PhasePct[phase]
		if pct > 50 {
			color = rl.Orange
		}
		rl.DrawText(phase, p.x+pad, y, r.Theme.FontSize, r.Theme.LabelColor)
		rl.DrawText(fmt.Sprintf("%5.1f%%", pct), p.x+pad+r.Theme.LabelWidth+20, y, r.Theme.FontSize, color)
		y += r.Theme.LineHeight
	}
}
