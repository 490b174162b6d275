package vxl

// position packs a voxel coordinate into a 32-bit key as 0xYYYXXXZZ:
// 12 bits y, 12 bits x, 8 bits z. Comparing keys numerically orders voxels
// by (y, x, z) ascending, the order columns appear in the encoded stream.
type position uint32

func packPos(x, y, z int) position {
	return position(uint32(y)<<20 | uint32(x)<<8 | uint32(z))
}

func (p position) X() int { return int(uint32(p)>>8) & 0xFFF }
func (p position) Y() int { return int(uint32(p)>>20) & 0xFFF }
func (p position) Z() int { return int(uint32(p) & 0xFF) }

// withoutZ keeps only the column part of the key.
func (p position) withoutZ() position { return p & 0xFFFFFF00 }
