package vxl

import "encoding/binary"

// Write encodes the whole map back to a raw VXL stream, one column after
// another in (y, x) order. The output decodes to an equal map, and encoding
// a map decoded from Write's output reproduces those bytes exactly. Other
// sources need not round-trip byte for byte: the decoder drops the reserved
// high byte of each color word.
func (m *Map) Write() []byte {
	// Rough guess: one span per column plus one color word each.
	out := make([]byte, 0, m.width*m.height*8)
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			out = m.encodeColumn(x, y, out)
		}
	}
	return out
}

// encodeColumn appends the span records of column (x,y) to out. The column
// is partitioned into maximal solid runs; each run contributes its top
// surface colors and, unless the run's trailing surface voxels reach the map
// bottom, its bottom surface colors. The final span of the column carries
// length 0 and no bottom colors.
func (m *Map) encodeColumn(x, y int, out []byte) []byte {
	z := 0
	for {
		airStart := z
		for z < m.depth && !m.geom.get(x, y, z) {
			z++
		}
		topStart := z
		for z < m.depth && m.solidSurface(x, y, z) {
			z++
		}
		topEnd := z

		for z < m.depth && m.geom.get(x, y, z) && !m.geom.exposed(x, y, z) {
			z++
		}
		bottomStart := z

		// A surface run that touches the map bottom belongs to the next
		// span as top colors; only a run followed by more of this column
		// is a real bottom run.
		i := z
		for i < m.depth && m.solidSurface(x, y, i) {
			i++
		}
		if i != m.depth {
			z = i
		}
		bottomEnd := z

		colors := (topEnd - topStart) + (bottomEnd - bottomStart)
		var length uint8
		if z != m.depth {
			length = uint8(colors + 1)
		}
		out = append(out, length, uint8(topStart), uint8(topEnd-1), uint8(airStart))
		for zz := topStart; zz < topEnd; zz++ {
			out = binary.LittleEndian.AppendUint32(out, m.surfaceColor(x, y, zz))
		}
		for zz := bottomStart; zz < bottomEnd; zz++ {
			out = binary.LittleEndian.AppendUint32(out, m.surfaceColor(x, y, zz))
		}

		if z == m.depth {
			return out
		}
	}
}

func (m *Map) solidSurface(x, y, z int) bool {
	return m.geom.get(x, y, z) && m.geom.exposed(x, y, z)
}

// surfaceColor reads the stored color of a surface voxel. A missing entry
// cannot happen while the stored-color invariant holds; DefaultColor keeps
// the stream well-formed if it ever does.
func (m *Map) surfaceColor(x, y, z int) uint32 {
	if color, ok := m.chunkAt(x, y).find(packPos(x, y, z)); ok {
		return color
	}
	return DefaultColor
}
