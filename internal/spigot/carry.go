package spigot

// CarryStream is the held-digit/nines-run transducer that turns raw
// per-iteration spigot output (values in [0, 10]) into final decimal digits
// (values in [0, 9]). It is a pure, single-pass, length-preserving filter:
// identical input sequences always produce identical output sequences. A
// CarryStream is restartable only by constructing a new one.
type CarryStream struct {
	held    int
	hasHeld bool
	nines   int
}

// NewCarryStream returns an empty transducer ready to accept Push calls.
func NewCarryStream() *CarryStream {
	return &CarryStream{}
}

// Push feeds one raw value (expected in [0, 10]) and returns the final
// digits it releases, in order. Most pushes release zero or one digit; a
// push that resolves a long run of held 9s can release many at once.
func (c *CarryStream) Push(d int) []int {
	switch {
	case d == 9:
		c.nines++
		return nil
	case d < 9:
		out := c.flush(d, 9)
		c.held, c.hasHeld = d, true
		c.nines = 0
		return out
	default: // d >= 10
		carried := -1
		if c.hasHeld {
			carried = c.held + 1
		}
		out := c.flushCarry(carried, 0)
		c.held, c.hasHeld = d%10, true
		c.nines = 0
		return out
	}
}

// flush releases the held digit unchanged (if any) followed by c.nines
// copies of fillAfterHeld — used on a normal (< 9) arrival, where no carry
// reaches the held digit or the absorbed 9s.
func (c *CarryStream) flush(_ int, fillAfterHeld int) []int {
	var out []int
	if c.hasHeld {
		out = append(out, c.held)
	}
	for i := 0; i < c.nines; i++ {
		out = append(out, fillAfterHeld)
	}
	return out
}

// flushCarry releases the carry-resolved held digit (if any) followed by
// c.nines copies of fill — used on a >=10 arrival, where the carry increments
// the held digit and rolls every absorbed 9 over to 0.
func (c *CarryStream) flushCarry(carried int, fill int) []int {
	var out []int
	if carried >= 0 {
		out = append(out, carried)
	}
	for i := 0; i < c.nines; i++ {
		out = append(out, fill)
	}
	return out
}

// Close flushes any held digit and any outstanding (unresolved) run of 9s,
// emitting them as plain 9s since no carry ever arrived to roll them over.
// It must be called exactly once, after the final Push, to release the last
// pending digits.
func (c *CarryStream) Close() []int {
	out := c.flush(0, 9)
	c.hasHeld = false
	c.nines = 0
	return out
}
