package scene

// Clock accumulates scene time from frame deltas. Elapsed never decreases.
type Clock struct {
	elapsed float64
	frame   int64
}

// Advance adds dt seconds (negative deltas count as zero) and returns the new
// elapsed time.
func (c *Clock) Advance(dt float64) float64 {
	if dt > 0 {
		c.elapsed += dt
	}
	c.frame++
	return c.elapsed
}

// Elapsed returns the accumulated scene time in seconds.
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}

// Frame returns the number of advances so far.
func (c *Clock) Frame() int64 {
	return c.frame
}

// Reset rewinds the clock to zero.
func (c *Clock) Reset() {
	c.elapsed = 0
	c.frame = 0
}
