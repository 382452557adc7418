package effects

import "github.com/pthm-cable/sniperfx/anim"

// Position is a screen-space anchor in pixels.
type Position struct {
	X, Y float64
}

// Follower is one dot of the cursor trail. Dot Index chases the pointer as
// it was Index*trail_delay seconds ago.
type Follower struct {
	Index int
	X, Y  anim.Motion
}

// Spark is a looping hover particle attached to a nav item. Position holds
// the item anchor; the spark drifts from it toward the offset every period.
type Spark struct {
	Item             int
	Index            int
	OffsetX, OffsetY float64
	Delay            float64
	Age              float64
}

// Dot is a renderable circle snapshot.
type Dot struct {
	X, Y   float64
	Radius float64
	Alpha  float64
}
