package vxl

import "fmt"

// Map is an in-memory VXL map: a solid/air bitset plus a sparse, chunked
// store of the colors of surface-exposed voxels.
//
// A Map is not safe for concurrent use. Independent maps may be used from
// independent goroutines without coordination.
type Map struct {
	width, height, depth int

	chunks  []chunk
	chunksX int

	geom *geometry

	// streamed locks the map against mutation while a Stream is open on it.
	streamed bool
}

// Create loads a map from raw VXL data, or builds an empty map when data is
// nil: the lower half (z >= d/2) solid with DefaultColor, the upper half air.
func Create(w, h, d int, data []byte) (*Map, error) {
	if w < 1 || h < 1 || d < 1 {
		return nil, fmt.Errorf("invalid map dimensions %dx%dx%d", w, h, d)
	}
	if w > 4096 || h > 4096 {
		return nil, fmt.Errorf("map edge %dx%d exceeds the 12-bit key range", w, h)
	}
	if d > 256 {
		return nil, fmt.Errorf("map depth %d exceeds the 8-bit key range", d)
	}

	m := &Map{
		width:   w,
		height:  h,
		depth:   d,
		chunksX: (w + ChunkSize - 1) / ChunkSize,
		geom:    newGeometry(w, h, d),
	}
	chunksY := (h + ChunkSize - 1) / ChunkSize
	m.chunks = make([]chunk, m.chunksX*chunksY)

	if data == nil {
		m.fillHalf()
		return m, nil
	}
	if err := m.decode(data); err != nil {
		return nil, err
	}
	return m, nil
}

// fillHalf builds the default empty-map terrain. Only the z=d/2 voxels are
// exposed (from above), so they are the only ones with stored colors.
func (m *Map) fillHalf() {
	top := m.depth / 2
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			for z := top; z < m.depth; z++ {
				m.geom.set(x, y, z, true)
			}
			m.chunkAt(x, y).appendEntry(packPos(x, y, top), DefaultColor)
		}
	}
}

func (m *Map) Width() int  { return m.width }
func (m *Map) Height() int { return m.height }
func (m *Map) Depth() int  { return m.depth }

func (m *Map) inBounds(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < m.width && y < m.height && z < m.depth
}

func (m *Map) chunkAt(x, y int) *chunk {
	return &m.chunks[x/ChunkSize+y/ChunkSize*m.chunksX]
}

// IsSolid reports whether the voxel at (x,y,z) is solid. Out-of-bounds
// coordinates are non-solid.
func (m *Map) IsSolid(x, y, z int) bool {
	return m.inBounds(x, y, z) && m.geom.get(x, y, z)
}

// OnSurface reports whether the voxel is solid and exposed to air on at
// least one of its six faces. Neighbors beyond the ±x/±y edges and below the
// map bottom count solid; above z=0 counts air.
func (m *Map) OnSurface(x, y, z int) bool {
	return m.IsSolid(x, y, z) && m.geom.exposed(x, y, z)
}

// Get returns the voxel color in 0x00RRGGBB form: the stored color for a
// surface voxel, DefaultColor for an interior solid voxel, 0 for air or
// out-of-bounds coordinates.
func (m *Map) Get(x, y, z int) uint32 {
	if !m.IsSolid(x, y, z) {
		return 0
	}
	if color, ok := m.chunkAt(x, y).find(packPos(x, y, z)); ok {
		return color
	}
	return DefaultColor
}

// GetTop returns the color and z of the topmost solid voxel of column (x,y)
// as seen from above. ok is false for an all-air column or out-of-bounds
// coordinates.
func (m *Map) GetTop(x, y int) (color uint32, z int, ok bool) {
	if !m.inBounds(x, y, 0) {
		return 0, 0, false
	}
	for z = 0; z < m.depth; z++ {
		if m.geom.get(x, y, z) {
			return m.Get(x, y, z), z, true
		}
	}
	return 0, 0, false
}

// Set makes the voxel at (x,y,z) solid with the given color (masked to
// 24-bit RGB). Out-of-bounds coordinates are ignored, as is any mutation
// while a stream is open on the map.
func (m *Map) Set(x, y, z int, color uint32) {
	if m.streamed || !m.inBounds(x, y, z) {
		return
	}
	m.geom.set(x, y, z, true)
	m.chunkAt(x, y).upsert(packPos(x, y, z), color&colorMask)
	m.reconcile(x, y, z)
	m.reconcileNeighbors(x, y, z)
}

// SetAir destroys any voxel at (x,y,z). Out-of-bounds coordinates are
// ignored, as is any mutation while a stream is open on the map.
func (m *Map) SetAir(x, y, z int) {
	if m.streamed || !m.inBounds(x, y, z) {
		return
	}
	m.geom.set(x, y, z, false)
	m.chunkAt(x, y).remove(packPos(x, y, z))
	m.reconcileNeighbors(x, y, z)
}

// reconcile restores the stored-color invariant for one voxel: a stored
// entry exists iff the voxel is solid and exposed. A voxel that just became
// exposed without a known color gets DefaultColor.
func (m *Map) reconcile(x, y, z int) {
	if !m.inBounds(x, y, z) {
		return
	}
	c := m.chunkAt(x, y)
	pos := packPos(x, y, z)
	if !m.geom.get(x, y, z) {
		c.remove(pos)
		return
	}
	if m.geom.exposed(x, y, z) {
		if _, ok := c.find(pos); !ok {
			c.upsert(pos, DefaultColor)
		}
	} else {
		c.remove(pos)
	}
}

func (m *Map) reconcileNeighbors(x, y, z int) {
	m.reconcile(x, y+1, z)
	m.reconcile(x, y-1, z)
	m.reconcile(x+1, y, z)
	m.reconcile(x-1, y, z)
	m.reconcile(x, y, z+1)
	m.reconcile(x, y, z-1)
}
