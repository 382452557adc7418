package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsState is what the panel edits.
type ControlsState struct {
	Paused          bool
	AutoRotate      bool
	AutoRotateSpeed float32
	ShowPerf        bool
}

// ControlsAction reports one-shot button presses.
type ControlsAction struct {
	TogglePause bool
	ResetCamera bool
	Regenerate  bool
}

// ControlsPanel renders the right-side raygui controls panel.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a hidden controls panel; place it with SetPosition.
func NewControlsPanel(width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		width:    width,
	}
}

// SetPosition moves the panel's top-left corner, e.g. after a window resize.
func (c *ControlsPanel) SetPosition(x, y float64) {
	c.x, c.y = int32(x), int32(y)
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point is over the visible panel.
func (c *ControlsPanel) Contains(x, y float32) bool {
	if !c.visible {
		return false
	}
	return x >= float32(c.x) && x < float32(c.x+c.width) && y >= float32(c.y) && y < float32(c.y+c.height())
}

func (c *ControlsPanel) height() int32 {
	return 200
}

// Draw renders the panel, applying slider and checkbox edits to state.
func (c *ControlsPanel) Draw(state *ControlsState) ControlsAction {
	var act ControlsAction
	if !c.visible {
		return act
	}

	r := c.renderer
	pad := float32(r.Theme.Padding)
	r.DrawPanel(c.x, c.y, c.width, c.height())

	x := float32(c.x) + pad
	y := float32(c.y) + pad
	w := float32(c.width) - pad*2

	rl.DrawText("Scene", int32(x), int32(y), 16, rl.White)
	y += 24

	half := (w - pad) / 2
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 26}, toggleText(state.Paused, "Resume", "Pause")) {
		act.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + half + pad, Y: y, Width: half, Height: 26}, "Reset Camera") {
		act.ResetCamera = true
	}
	y += 34

	state.AutoRotate = gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 16, Height: 16}, "Auto-rotate", state.AutoRotate)
	y += 24

	rl.DrawText(fmt.Sprintf("Rotate speed %.1f", state.AutoRotateSpeed), int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += 16
	state.AutoRotateSpeed = gui.SliderBar(
		rl.Rectangle{X: x + 20, Y: y, Width: w - 50, Height: 16},
		"0", "5",
		state.AutoRotateSpeed, 0, 5,
	)
	y += 26

	state.ShowPerf = gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 16, Height: 16}, "Step timing", state.ShowPerf)
	y += 26

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: 26}, "Regenerate Field") {
		act.Regenerate = true
	}

	return act
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
