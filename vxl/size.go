package vxl

import (
	"fmt"
	"math"
)

// Size guesses the dimensions of a raw VXL stream. The map is assumed
// square; the edge length follows from the number of column terminators, and
// the depth is the next power of two above the deepest color z seen. The
// depth is a documented approximation: columns whose deepest voxels carry no
// stored color don't witness it.
func Size(data []byte) (size, depth int, err error) {
	columns := 0
	maxZ := 0

	for off := 0; off+spanHeaderSize <= len(data); {
		s := readSpan(data, off)
		if int(s.colorEnd) > maxZ {
			maxZ = int(s.colorEnd)
		}
		if s.length == 0 {
			columns++
		}
		rec := s.recordLength()
		if rec < spanHeaderSize {
			return 0, 0, fmt.Errorf("invalid span record at byte %d", off)
		}
		off += rec
	}

	if columns == 0 {
		return 0, 0, fmt.Errorf("no columns found")
	}

	depth = 1
	for depth < maxZ+1 {
		depth <<= 1
	}
	size = int(math.Sqrt(float64(columns)))
	return size, depth, nil
}
