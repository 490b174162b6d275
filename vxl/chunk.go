package vxl

import "sort"

type entry struct {
	pos   position
	color uint32
}

// chunk owns the stored color entries of one 16×16 tile of columns, kept in
// ascending key order. The backing array grows by ChunkGrowth entries at a
// time and is allocated lazily on first insert.
type chunk struct {
	entries []entry
}

func (c *chunk) grow() {
	if len(c.entries) < cap(c.entries) {
		return
	}
	next := make([]entry, len(c.entries), cap(c.entries)+ChunkGrowth)
	copy(next, c.entries)
	c.entries = next
}

// appendEntry is the decoder's bulk fast path: entries arrive in globally
// ascending key order, so they can be appended without searching. Should an
// out-of-order key slip in from a hostile stream, it falls back to a sorted
// insert so the ordering invariant survives.
func (c *chunk) appendEntry(pos position, color uint32) {
	if n := len(c.entries); n > 0 && c.entries[n-1].pos >= pos {
		c.upsert(pos, color)
		return
	}
	c.grow()
	c.entries = append(c.entries, entry{pos: pos, color: color})
}

func (c *chunk) search(pos position) int {
	return sort.Search(len(c.entries), func(i int) bool {
		return c.entries[i].pos >= pos
	})
}

func (c *chunk) find(pos position) (uint32, bool) {
	i := c.search(pos)
	if i < len(c.entries) && c.entries[i].pos == pos {
		return c.entries[i].color, true
	}
	return 0, false
}

// upsert overwrites the color if the key exists, otherwise inserts it
// preserving sort order.
func (c *chunk) upsert(pos position, color uint32) {
	i := c.search(pos)
	if i < len(c.entries) && c.entries[i].pos == pos {
		c.entries[i].color = color
		return
	}
	c.grow()
	c.entries = append(c.entries, entry{})
	copy(c.entries[i+1:], c.entries[i:])
	c.entries[i] = entry{pos: pos, color: color}
}

func (c *chunk) remove(pos position) bool {
	i := c.search(pos)
	if i >= len(c.entries) || c.entries[i].pos != pos {
		return false
	}
	copy(c.entries[i:], c.entries[i+1:])
	c.entries = c.entries[:len(c.entries)-1]
	return true
}

// column returns the entries of column (x,y) in ascending z.
func (c *chunk) column(x, y int) []entry {
	lo := c.search(packPos(x, y, 0))
	hi := lo
	key := packPos(x, y, 0).withoutZ()
	for hi < len(c.entries) && c.entries[hi].pos.withoutZ() == key {
		hi++
	}
	return c.entries[lo:hi]
}
