package vxl

import (
	"encoding/binary"
	"fmt"
)

// decode parses a raw VXL stream into the geometry bitset and color store.
// The map starts all-solid; spans carve out the air runs, and the color
// words populate the chunks through the bulk-append fast path (the stream
// visits columns in key order).
func (m *Map) decode(data []byte) error {
	m.geom.fill()

	off := 0
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			var err error
			off, err = m.decodeColumn(data, off, x, y)
			if err != nil {
				return fmt.Errorf("column (%d,%d): %w", x, y, err)
			}
		}
	}
	return nil
}

func (m *Map) decodeColumn(data []byte, off, x, y int) (int, error) {
	c := m.chunkAt(x, y)
	zCursor := 0
	for {
		if off+spanHeaderSize > len(data) {
			return 0, fmt.Errorf("truncated span header at byte %d", off)
		}
		s := readSpan(data, off)
		n := s.topColors()
		if n < 0 {
			return 0, fmt.Errorf("span color range [%d,%d] inverted", s.colorStart, s.colorEnd)
		}
		if n > 0 && int(s.colorEnd) >= m.depth {
			return 0, fmt.Errorf("span color z %d beyond depth %d", s.colorEnd, m.depth)
		}
		rec := s.recordLength()
		if off+rec > len(data) {
			return 0, fmt.Errorf("span data exceeds buffer at byte %d", off)
		}

		for z := zCursor; z < int(s.colorStart) && z < m.depth; z++ {
			m.geom.set(x, y, z, false)
		}
		for i := 0; i < n; i++ {
			z := int(s.colorStart) + i
			color := binary.LittleEndian.Uint32(data[off+spanHeaderSize+i*4:])
			c.appendEntry(packPos(x, y, z), color&colorMask)
		}

		if s.length == 0 {
			// Final span: everything below the top colors stays solid
			// down to the map bottom, with no stored colors.
			return off + rec, nil
		}

		k := int(s.length) - 1 - n
		if k < 0 {
			return 0, fmt.Errorf("span length %d too short for %d top colors", s.length, n)
		}

		// The bottom colors of this span sit directly above the air run
		// the next span opens with; peek its header for the boundary.
		next := off + rec
		if next+spanHeaderSize > len(data) {
			return 0, fmt.Errorf("truncated span header at byte %d", next)
		}
		bottomEnd := int(data[next+3])
		bottomStart := bottomEnd - k
		if bottomStart < 0 || bottomEnd > m.depth {
			return 0, fmt.Errorf("bottom color range [%d,%d) out of depth %d", bottomStart, bottomEnd, m.depth)
		}
		for i := 0; i < k; i++ {
			z := bottomStart + i
			color := binary.LittleEndian.Uint32(data[off+spanHeaderSize+(n+i)*4:])
			c.appendEntry(packPos(x, y, z), color&colorMask)
		}

		zCursor = bottomEnd
		off = next
	}
}
