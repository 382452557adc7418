package termview

import (
	"fmt"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/sniperfx/field"
)

func TestIsQuit(t *testing.T) {
	tests := []struct {
		name string
		ev   tcell.Event
		want bool
	}{
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), true},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), true},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), true},
		{"other rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), false},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), false},
		{"resize", tcell.NewEventResize(80, 24), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsQuit(tt.ev); got != tt.want {
				t.Errorf("IsQuit() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDrawStatusShowsCurrentFrame(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	v, err := NewWithScreen(screen)
	if err != nil {
		t.Fatalf("NewWithScreen: %v", err)
	}
	defer v.Close()
	screen.SetSize(40, 12)

	v.SetStatus(func(visible int) string {
		return fmt.Sprintf("visible=%d", visible)
	})
	bottom := func() string {
		var out []rune
		for x := 0; x < len("visible=0"); x++ {
			r, _, _, _ := screen.GetContent(x, 11)
			out = append(out, r)
		}
		return string(out)
	}

	f := newTestField(t, nearPoint)
	if n := v.Draw(f, field.Orientation{}, newTestCamera(), 30, 100); n != 1 {
		t.Fatalf("visible = %d, want 1", n)
	}
	if got := bottom(); got != "visible=1" {
		t.Errorf("status = %q after first draw, want %q", got, "visible=1")
	}

	// Fog in front of the point hides it; the status follows immediately
	v.Draw(f, field.Orientation{}, newTestCamera(), 1, 5)
	if got := bottom(); got != "visible=0" {
		t.Errorf("status = %q after fogged draw, want %q", got, "visible=0")
	}
}
