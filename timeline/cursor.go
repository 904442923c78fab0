package timeline

// Cursor answers queries against one Index while remembering where the
// previous query landed. Monotonically increasing query times, as issued
// by a frame loop, resolve in amortized constant time; any other order
// falls back to binary search and returns the same result as CutsAt.
//
// A Cursor is not safe for concurrent use.
type Cursor struct {
	ix  *Index
	pos int
}

// Cursor returns a new cursor positioned before the first region.
func (ix *Index) Cursor() *Cursor {
	return &Cursor{ix: ix}
}

// holds reports whether pos is the first region ending after t.
func (c *Cursor) holds(t Time) bool {
	r := c.ix.regions
	if c.pos > 0 && r[c.pos-1].Out > t {
		return false
	}
	return c.pos == len(r) || r[c.pos].Out > t
}

// At returns the cuts active at t. The returned slice belongs to the index.
func (c *Cursor) At(t Time) []Active {
	r := c.ix.regions
	if !c.holds(t) {
		if c.pos < len(r) {
			c.pos++
		}
		if !c.holds(t) {
			c.pos = c.ix.search(t)
		}
	}
	if c.pos < len(r) && r[c.pos].In <= t {
		return r[c.pos].Active
	}
	return nil
}

// Reset moves the cursor back before the first region.
func (c *Cursor) Reset() {
	c.pos = 0
}
