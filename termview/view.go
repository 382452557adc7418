package termview

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/sniperfx/camera"
	"github.com/pthm-cable/sniperfx/field"
)

// View owns a tcell screen and the frame drawn into it.
type View struct {
	screen tcell.Screen
	frame  *Frame
	events chan tcell.Event
	quit   chan struct{}
	status func(visible int) string
}

// New initialises the terminal screen.
func New() (*View, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	return NewWithScreen(screen)
}

// NewWithScreen wraps an existing screen, initialising it.
func NewWithScreen(screen tcell.Screen) (*View, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initialising screen: %w", err)
	}
	screen.HideCursor()
	screen.Clear()

	w, h := screen.Size()
	v := &View{
		screen: screen,
		frame:  NewFrame(w, h),
		events: make(chan tcell.Event, 16),
		quit:   make(chan struct{}),
	}
	go v.pollEvents()
	return v, nil
}

// pollEvents forwards screen events to the frame loop until Close.
func (v *View) pollEvents() {
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case v.events <- ev:
		case <-v.quit:
			return
		}
	}
}

// Events returns the channel of terminal events.
func (v *View) Events() <-chan tcell.Event {
	return v.events
}

// Size returns the screen size in cells.
func (v *View) Size() (w, h int) {
	return v.screen.Size()
}

// SetStatus sets the function that renders the bottom row. Draw calls it
// after rasterising, with the frame's visible point count.
func (v *View) SetStatus(fn func(visible int) string) {
	v.status = fn
}

// Draw rasterises f and presents it. Returns the number of visible points.
func (v *View) Draw(f *field.Field, o field.Orientation, cam *camera.Perspective, fogNear, fogFar float64) int {
	w, h := v.screen.Size()
	v.frame.Resize(w, h)
	n := v.frame.Rasterize(f, o, cam, fogNear, fogFar)

	bg := tcell.StyleDefault.Background(tcell.ColorBlack)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := v.frame.At(x, y)
			if !c.Set {
				v.screen.SetContent(x, y, ' ', nil, bg)
				continue
			}
			fg := tcell.NewRGBColor(to8(c.R), to8(c.G), to8(c.B))
			v.screen.SetContent(x, y, c.Rune, nil, bg.Foreground(fg))
		}
	}

	if v.status != nil && h > 0 {
		style := bg.Foreground(tcell.ColorGray)
		for i, r := range []rune(v.status(n)) {
			if i >= w {
				break
			}
			v.screen.SetContent(i, h-1, r, nil, style)
		}
	}

	v.screen.Show()
	return n
}

// Sync redraws the whole screen, used after a terminal resize.
func (v *View) Sync() {
	v.screen.Sync()
}

// Close restores the terminal.
func (v *View) Close() {
	close(v.quit)
	v.screen.Fini()
}

// IsQuit reports whether ev asks the program to exit.
func IsQuit(ev tcell.Event) bool {
	k, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	switch k.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return k.Rune() == 'q'
	}
	return false
}

func to8(v float64) int32 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return int32(v*255 + 0.5)
}
