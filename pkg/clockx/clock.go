package clockx

// Clock implements CLOCK (second-chance) replacement for a fixed number of slots.
// Every slot carries a pinned bit and a referenced bit; slots start pinned,
// so nothing is a candidate until it has been unpinned at least once.
type Clock struct {
	ref    []bool
	pinned []bool
	hand   int
	size   int // number of unpinned slots
}

func New(capacity int) *Clock {
	if capacity <= 0 {
		capacity = 1
	}
	c := &Clock{
		ref:    make([]bool, capacity),
		pinned: make([]bool, capacity),
	}
	for i := range c.pinned {
		c.pinned[i] = true
	}
	return c
}

func (c *Clock) Capacity() int { return len(c.ref) }

// Hand returns the slot the next scan starts from.
func (c *Clock) Hand() int { return c.hand }

// Unpin makes the slot a candidate again and gives it a fresh reference bit.
func (c *Clock) Unpin(id int) {
	if id < 0 || id >= len(c.ref) {
		return
	}
	if c.pinned[id] {
		c.pinned[id] = false
		c.size++
	}
	c.ref[id] = true
}

// Pin removes the slot from the candidate set. The reference bit is left
// alone; it is refreshed on the next Unpin anyway.
func (c *Clock) Pin(id int) {
	if id < 0 || id >= len(c.ref) {
		return
	}
	if !c.pinned[id] {
		c.pinned[id] = true
		c.size--
	}
}

// Pinned reports whether the slot is currently excluded from eviction.
func (c *Clock) Pinned(id int) bool {
	if id < 0 || id >= len(c.ref) {
		return true
	}
	return c.pinned[id]
}

// Referenced reports the slot's reference bit.
func (c *Clock) Referenced(id int) bool {
	if id < 0 || id >= len(c.ref) {
		return false
	}
	return c.ref[id]
}

// Evict returns a victim slot id and ok flag. The victim comes back pinned.
//
// With no unpinned slot the call fails without moving the hand. Otherwise
// the first revolution clears every reference bit it passes, so a second
// revolution always finds a victim; the scan is bounded by 2*capacity steps.
func (c *Clock) Evict() (id int, ok bool) {
	n := len(c.ref)
	if c.size == 0 {
		return -1, false
	}

	for i, limit := 0, 2*n; i < limit; i++ {
		idx := c.hand
		c.hand = (c.hand + 1) % n

		if c.pinned[idx] {
			continue
		}
		if c.ref[idx] {
			// Second chance.
			c.ref[idx] = false
			continue
		}

		c.pinned[idx] = true
		c.ref[idx] = false
		c.size--
		return idx, true
	}

	return -1, false
}

func (c *Clock) Size() int { return c.size }
