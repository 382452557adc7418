// Package effects runs the short-lived decorative entities drawn over the
// scene: the cursor trail and the sparks that float around hovered header
// links. Entities live in an ark ECS world and are eased with springs.
package effects

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/sniperfx/anim"
	"github.com/pthm-cable/sniperfx/config"
)

type pointerSample struct {
	t, x, y float64
}

// World owns the effect entities.
type World struct {
	world *ecs.World
	rng   *rand.Rand

	followerMap    *ecs.Map2[Position, Follower]
	followerFilter *ecs.Filter2[Position, Follower]
	sparkMap       *ecs.Map2[Position, Spark]
	sparkFilter    *ecs.Filter2[Position, Spark]

	cursor config.CursorConfig
	nav    config.NavConfig

	clock    float64
	pointerX float64
	pointerY float64
	history  []pointerSample

	sparkCount int
}

// New creates an effects world with cursor trail followers at the origin.
func New(cfg *config.Config, rng *rand.Rand) *World {
	world := ecs.NewWorld()
	w := &World{
		world:          world,
		rng:            rng,
		followerMap:    ecs.NewMap2[Position, Follower](world),
		followerFilter: ecs.NewFilter2[Position, Follower](world),
		sparkMap:       ecs.NewMap2[Position, Spark](world),
		sparkFilter:    ecs.NewFilter2[Position, Spark](world),
		cursor:         cfg.Cursor,
		nav:            cfg.Nav,
		history:        make([]pointerSample, 0, 64),
	}

	spring := anim.SettleIn(cfg.Cursor.TrailDuration)
	for i := 0; i < cfg.Cursor.TrailLength; i++ {
		pos := Position{}
		f := Follower{
			Index: i,
			X:     anim.NewMotion(spring, 0),
			Y:     anim.NewMotion(spring, 0),
		}
		w.followerMap.NewEntity(&pos, &f)
	}
	return w
}

// SetPointer records the pointer position in screen pixels.
func (w *World) SetPointer(x, y float64) {
	w.pointerX, w.pointerY = x, y
}

// Step advances every effect by dt seconds.
func (w *World) Step(dt float64) {
	if dt < 0 {
		dt = 0
	}
	w.clock += dt
	w.recordPointer()

	query := w.followerFilter.Query()
	for query.Next() {
		pos, f := query.Get()
		tx, ty := w.pointerAt(w.clock - float64(f.Index)*w.cursor.TrailDelay)
		pos.X = f.X.Step(dt, tx)
		pos.Y = f.Y.Step(dt, ty)
	}

	sparks := w.sparkFilter.Query()
	for sparks.Next() {
		_, s := sparks.Get()
		s.Age += dt
	}
}

func (w *World) recordPointer() {
	w.history = append(w.history, pointerSample{t: w.clock, x: w.pointerX, y: w.pointerY})

	// Keep one sample older than the longest lag so lookups always resolve
	horizon := w.clock - float64(w.cursor.TrailLength)*w.cursor.TrailDelay
	drop := 0
	for drop+1 < len(w.history) && w.history[drop+1].t <= horizon {
		drop++
	}
	if drop > 0 {
		w.history = append(w.history[:0], w.history[drop:]...)
	}
}

// pointerAt returns the pointer position at time t, or the oldest known one.
func (w *World) pointerAt(t float64) (x, y float64) {
	if len(w.history) == 0 {
		return w.pointerX, w.pointerY
	}
	for i := len(w.history) - 1; i >= 0; i-- {
		if w.history[i].t <= t {
			return w.history[i].x, w.history[i].y
		}
	}
	return w.history[0].x, w.history[0].y
}

// HoverStart spawns the sparks for nav item around anchor (x, y).
func (w *World) HoverStart(item int, x, y float64) {
	spread := w.nav.SparkSpread
	for i := 0; i < w.nav.SparksPerItem; i++ {
		pos := Position{X: x, Y: y}
		s := Spark{
			Item:    item,
			Index:   i,
			OffsetX: w.rng.Float64()*2*spread - spread,
			OffsetY: w.rng.Float64()*2*spread - spread,
			Delay:   float64(i) * w.nav.SparkStagger,
		}
		w.sparkMap.NewEntity(&pos, &s)
		w.sparkCount++
	}
}

// HoverEnd removes the sparks of nav item.
func (w *World) HoverEnd(item int) {
	var toRemove []ecs.Entity

	query := w.sparkFilter.Query()
	for query.Next() {
		_, s := query.Get()
		if s.Item == item {
			toRemove = append(toRemove, query.Entity())
		}
	}

	// Query iteration complete, safe to modify the world
	for _, e := range toRemove {
		w.world.RemoveEntity(e)
		w.sparkCount--
	}
}

// MoveSparks re-anchors the sparks of nav item at (x, y).
func (w *World) MoveSparks(item int, x, y float64) {
	query := w.sparkFilter.Query()
	for query.Next() {
		pos, s := query.Get()
		if s.Item == item {
			pos.X, pos.Y = x, y
		}
	}
}

// Cursor returns the main cursor dot centred on the pointer.
func (w *World) Cursor() Dot {
	return Dot{X: w.pointerX, Y: w.pointerY, Radius: w.cursor.Size / 2, Alpha: 1}
}

// Trail returns the trail dots ordered from head to tail.
func (w *World) Trail() []Dot {
	dots := make([]Dot, w.cursor.TrailLength)
	n := float64(w.cursor.TrailLength)

	query := w.followerFilter.Query()
	for query.Next() {
		pos, f := query.Get()
		dots[f.Index] = Dot{
			X:      pos.X,
			Y:      pos.Y,
			Radius: w.cursor.TrailSize / 2,
			Alpha:  1 - float64(f.Index)/(n+1),
		}
	}
	return dots
}

// Sparks returns the visible sparks. Each loop the spark drifts from its
// anchor to its offset while opacity and scale rise and fall.
func (w *World) Sparks() []Dot {
	dots := make([]Dot, 0, w.sparkCount)

	query := w.sparkFilter.Query()
	for query.Next() {
		pos, s := query.Get()
		progress, ok := anim.Loop(s.Age, s.Delay, w.nav.SparkPeriod)
		if !ok {
			continue
		}
		pulse := anim.Keyframes(progress, 0, 1, 0)
		dots = append(dots, Dot{
			X:      pos.X + s.OffsetX*progress,
			Y:      pos.Y + s.OffsetY*progress,
			Radius: 4 * pulse,
			Alpha:  pulse,
		})
	}
	return dots
}

// SparkCount returns the number of live spark entities, visible or not.
func (w *World) SparkCount() int {
	return w.sparkCount
}
