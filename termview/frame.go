// Package termview renders the particle field into a terminal with tcell.
// Points are projected with the scene camera onto a grid of cells where each
// cell covers two vertical pixels.
package termview

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/sniperfx/camera"
	"github.com/pthm-cable/sniperfx/field"
)

// Glyphs from nearest to farthest.
var glyphs = []rune{'@', '*', '+', '.'}

// Cell is one terminal cell of a rasterised frame.
type Cell struct {
	Rune    rune
	R, G, B float64 // [0, 1], already faded by fog
	Depth   float64
	Set     bool
}

// Frame is a rasterised cell grid.
type Frame struct {
	W, H  int
	cells []Cell
}

// NewFrame creates an empty w x h frame.
func NewFrame(w, h int) *Frame {
	return &Frame{W: w, H: h, cells: make([]Cell, w*h)}
}

// Resize changes the grid size, reusing storage when it fits.
func (fr *Frame) Resize(w, h int) {
	if w == fr.W && h == fr.H {
		return
	}
	fr.W, fr.H = w, h
	if cap(fr.cells) >= w*h {
		fr.cells = fr.cells[:w*h]
	} else {
		fr.cells = make([]Cell, w*h)
	}
	fr.Clear()
}

// Clear empties every cell.
func (fr *Frame) Clear() {
	for i := range fr.cells {
		fr.cells[i] = Cell{}
	}
}

// At returns the cell at column x, row y.
func (fr *Frame) At(x, y int) Cell {
	return fr.cells[y*fr.W+x]
}

// Rasterize clears the frame and projects every particle of f, rotated by o,
// through cam. When several points land in a cell the nearest wins. Returns
// the number of visible points.
func (fr *Frame) Rasterize(f *field.Field, o field.Orientation, cam *camera.Perspective, fogNear, fogFar float64) int {
	fr.Clear()
	if fr.W == 0 || fr.H == 0 {
		return 0
	}

	view := *cam
	view.Resize(float64(fr.W), float64(fr.H*2))

	rotate := o.Rotator()
	pos := f.Positions()
	col := f.Colors()
	visible := 0
	for i := 0; i < f.Count(); i++ {
		p := rotate(r3.Vec{X: float64(pos[i*3]), Y: float64(pos[i*3+1]), Z: float64(pos[i*3+2])})
		sx, sy, depth, ok := view.Project(p)
		if !ok {
			continue
		}
		fog := camera.FogFactor(depth, fogNear, fogFar)
		if fog >= 1 {
			continue
		}

		x, y := int(sx), int(sy/2)
		if x < 0 || x >= fr.W || y < 0 || y >= fr.H {
			continue
		}
		c := &fr.cells[y*fr.W+x]
		if c.Set && c.Depth <= depth {
			continue
		}

		visible++
		k := 1 - fog
		*c = Cell{
			Rune:  glyphs[int(fog*float64(len(glyphs)))],
			R:     float64(col[i*3]) * k,
			G:     float64(col[i*3+1]) * k,
			B:     float64(col[i*3+2]) * k,
			Depth: depth,
			Set:   true,
		}
	}
	return visible
}
