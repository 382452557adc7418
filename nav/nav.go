// Package nav models the animated site header: its links, which one is
// active, which one is hovered, and the spring animations that slide the
// header in, stagger the links and glow behind the hovered one.
package nav

import (
	"github.com/pthm-cable/sniperfx/anim"
	"github.com/pthm-cable/sniperfx/config"
)

// Entrance and hover targets.
const (
	headerStartY = -100.0
	itemStartY   = -20.0

	glowRestScale   = 0.8
	glowHoverScale  = 1.2
	glowHoverAlpha  = 0.8
	indicatorHeight = 2.0

	// Link scale on hover and while pressed
	hoverScale = 1.05
	pressScale = 0.95

	// Active indicator spring
	indicatorStiffness = 380
	indicatorDamping   = 30

	itemPadX = 16.0
	itemPadY = 8.0
)

// Rect is a screen-space rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Center returns the middle of r.
func (r Rect) Center() (x, y float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

type item struct {
	label string
	href  string
	rect  Rect
	delay float64

	offsetY     anim.Motion
	opacity     anim.Motion
	scale       anim.Motion
	glowScale   anim.Motion
	glowOpacity anim.Motion
}

// ItemState is a read-only snapshot of one link for drawing.
type ItemState struct {
	Label       string
	Href        string
	Rect        Rect // rest position; add OffsetY when drawing
	Active      bool
	Hovered     bool
	Pressed     bool
	OffsetY     float64
	Opacity     float64
	Scale       float64
	GlowScale   float64
	GlowOpacity float64
}

// HoverFunc is told when the pointer enters (hovering=true) or leaves a link.
// anchor is where the link is currently drawn.
type HoverFunc func(index int, anchor Rect, hovering bool)

// Header holds the navigation state.
type Header struct {
	items   []item
	index   map[string]int
	active  int
	hovered int
	pressed bool
	clock   float64
	height  float64
	spacing float64

	offsetY    anim.Motion
	opacity    anim.Motion
	indicatorX anim.Motion
	indicatorW anim.Motion

	onHover HoverFunc
}

// New builds a header from config with the given path active.
func New(cfg *config.Config, activePath string) *Header {
	entrance := anim.FromStiffness(cfg.Nav.EntranceStiffness, cfg.Nav.EntranceDamping)
	glow := anim.FromStiffness(cfg.Nav.GlowStiffness, cfg.Nav.GlowDamping)
	indicator := anim.FromStiffness(indicatorStiffness, indicatorDamping)

	h := &Header{
		items:      make([]item, len(cfg.Nav.Items)),
		index:      cfg.Derived.NavIndex,
		active:     -1,
		hovered:    -1,
		height:     float64(cfg.Nav.Height),
		spacing:    float64(cfg.Nav.ItemSpacing),
		offsetY:    anim.NewMotion(entrance, headerStartY),
		opacity:    anim.NewMotion(entrance, 0),
		indicatorX: anim.NewMotion(indicator, 0),
		indicatorW: anim.NewMotion(indicator, 0),
	}
	for i, it := range cfg.Nav.Items {
		h.items[i] = item{
			label:       it.Label,
			href:        it.Href,
			delay:       float64(i) * cfg.Nav.ItemStagger,
			offsetY:     anim.NewMotion(entrance, itemStartY),
			opacity:     anim.NewMotion(entrance, 0),
			scale:       anim.NewMotion(glow, 1),
			glowScale:   anim.NewMotion(glow, glowRestScale),
			glowOpacity: anim.NewMotion(glow, 0),
		}
	}
	h.Navigate(activePath)
	return h
}

// OnHover registers fn for hover transitions.
func (h *Header) OnHover(fn HoverFunc) {
	h.onHover = fn
}

// Layout centres the links in a bar of screenW pixels. measure returns the
// label width in pixels.
func (h *Header) Layout(screenW float64, measure func(label string) float64) {
	total := 0.0
	widths := make([]float64, len(h.items))
	for i := range h.items {
		widths[i] = measure(h.items[i].label) + 2*itemPadX
		total += widths[i]
	}
	if len(h.items) > 1 {
		total += h.spacing * float64(len(h.items)-1)
	}

	x := (screenW - total) / 2
	for i := range h.items {
		itemH := h.height - 2*itemPadY
		h.items[i].rect = Rect{X: x, Y: (h.height - itemH) / 2, W: widths[i], H: itemH}
		x += widths[i] + h.spacing
	}

	// Snap the indicator so it does not fly in from the corner
	if h.active >= 0 {
		r := h.items[h.active].rect
		h.indicatorX.Pos, h.indicatorW.Pos = r.X, r.W
	}
}

// HitTest returns the link under (x, y), accounting for the header's
// current slide offset.
func (h *Header) HitTest(x, y float64) (index int, ok bool) {
	y -= h.offsetY.Pos
	for i := range h.items {
		if h.items[i].rect.Contains(x, y) {
			return i, true
		}
	}
	return -1, false
}

// Hover sets the hovered link; -1 clears it.
func (h *Header) Hover(index int) {
	if index >= len(h.items) {
		index = -1
	}
	if index == h.hovered {
		return
	}
	prev := h.hovered
	h.hovered = index
	if h.onHover == nil {
		return
	}
	if prev >= 0 {
		h.onHover(prev, h.Anchor(prev), false)
	}
	if index >= 0 {
		h.onHover(index, h.Anchor(index), true)
	}
}

// Anchor returns the rectangle of link index where it is drawn right now,
// including the header slide and the link's own entrance offset.
func (h *Header) Anchor(index int) Rect {
	if index < 0 || index >= len(h.items) {
		return Rect{}
	}
	it := &h.items[index]
	r := it.rect
	r.Y += h.offsetY.Pos + it.offsetY.Pos
	return r
}

// SetPressed records whether the pointer button is held. A held button
// shrinks the hovered link.
func (h *Header) SetPressed(pressed bool) {
	h.pressed = pressed
}

// PointerMoved hit-tests (x, y) and updates the hovered link.
func (h *Header) PointerMoved(x, y float64) {
	index, _ := h.HitTest(x, y)
	h.Hover(index)
}

// Navigate marks the link with href active. Unknown paths leave no link
// active and report false.
func (h *Header) Navigate(href string) bool {
	i, ok := h.index[href]
	if !ok || i >= len(h.items) {
		h.active = -1
		return false
	}
	h.active = i
	return true
}

// Active returns the active path, or "" when none matches.
func (h *Header) Active() string {
	if h.active < 0 {
		return ""
	}
	return h.items[h.active].href
}

// Hovered returns the hovered link index, or -1.
func (h *Header) Hovered() int {
	return h.hovered
}

// Step advances all header animations by dt seconds.
func (h *Header) Step(dt float64) {
	if dt < 0 {
		dt = 0
	}
	h.clock += dt

	h.offsetY.Step(dt, 0)
	h.opacity.Step(dt, 1)

	for i := range h.items {
		it := &h.items[i]
		if h.clock >= it.delay {
			it.offsetY.Step(dt, 0)
			it.opacity.Step(dt, 1)
		}

		scale, glow, alpha := 1.0, glowRestScale, 0.0
		if i == h.hovered {
			scale, glow, alpha = hoverScale, glowHoverScale, glowHoverAlpha
			if h.pressed {
				scale = pressScale
			}
		}
		it.scale.Step(dt, scale)
		it.glowScale.Step(dt, glow)
		it.glowOpacity.Step(dt, alpha)
	}

	if h.active >= 0 {
		r := h.items[h.active].rect
		h.indicatorX.Step(dt, r.X)
		h.indicatorW.Step(dt, r.W)
	}
}

// Bar returns the header's slide offset and opacity.
func (h *Header) Bar() (offsetY, opacity float64) {
	return h.offsetY.Pos, clamp01(h.opacity.Pos)
}

// Indicator returns the active underline rectangle; ok is false when no
// link is active.
func (h *Header) Indicator() (r Rect, ok bool) {
	if h.active < 0 {
		return Rect{}, false
	}
	base := h.items[h.active].rect
	return Rect{
		X: h.indicatorX.Pos,
		Y: base.Y + base.H - indicatorHeight,
		W: h.indicatorW.Pos,
		H: indicatorHeight,
	}, true
}

// Items returns a snapshot of every link.
func (h *Header) Items() []ItemState {
	out := make([]ItemState, len(h.items))
	for i := range h.items {
		it := &h.items[i]
		out[i] = ItemState{
			Label:       it.label,
			Href:        it.href,
			Rect:        it.rect,
			Active:      i == h.active,
			Hovered:     i == h.hovered,
			Pressed:     i == h.hovered && h.pressed,
			OffsetY:     it.offsetY.Pos,
			Opacity:     clamp01(it.opacity.Pos),
			Scale:       it.scale.Pos,
			GlowScale:   it.glowScale.Pos,
			GlowOpacity: clamp01(it.glowOpacity.Pos),
		}
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
