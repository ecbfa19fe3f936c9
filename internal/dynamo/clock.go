package dynamo

// Clock is the phase accumulator for the ambient wave. It only moves forward
// for non-negative speeds and is reset when the engine is re-initialised.
type Clock struct {
	Phase float64
	Ticks int
}

func (c *Clock) Advance(speed float64) float64 {
	c.Phase += speed
	c.Ticks++
	return c.Phase
}

func (c *Clock) Reset() {
	c.Phase, c.Ticks = 0, 0
}
