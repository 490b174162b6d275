package utils

import (
	"fmt"
	"math/rand"

	"github.com/voxelsplace/vxl/vxl"
)

// BuildTerrain generates a deterministic rolling-hills test map: a coarse
// random height grid, bilinearly interpolated per column, grass on top and
// dirt on the slopes.
func BuildTerrain(seed int64, size, depth int) (*vxl.Map, error) {
	if size < 8 || depth < 8 {
		return nil, fmt.Errorf("terrain needs size and depth >= 8, got %dx%d", size, depth)
	}
	m, err := vxl.Create(size, size, depth, nil)
	if err != nil {
		return nil, err
	}

	r := rand.New(rand.NewSource(seed))
	const cell = 8
	gw := size/cell + 2
	grid := make([]float64, gw*gw)
	for i := range grid {
		grid[i] = float64(depth)/2 + (r.Float64()-0.5)*float64(depth)/3
	}

	tops := make([]int, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			gx, gy := x/cell, y/cell
			fx := float64(x%cell) / cell
			fy := float64(y%cell) / cell
			h00 := grid[gy*gw+gx]
			h10 := grid[gy*gw+gx+1]
			h01 := grid[(gy+1)*gw+gx]
			h11 := grid[(gy+1)*gw+gx+1]
			hf := h00*(1-fx)*(1-fy) + h10*fx*(1-fy) + h01*(1-fx)*fy + h11*fx*fy

			top := int(hf)
			if top < 1 {
				top = 1
			}
			if top > depth-2 {
				top = depth - 2
			}
			tops[y*size+x] = top
			for z := 0; z < depth; z++ {
				if z < top {
					m.SetAir(x, y, z)
				} else {
					m.Set(x, y, z, terrainColor(z, top))
				}
			}
		}
	}

	// Slopes expose sides only once the neighbor column is carved; a second
	// color pass paints those late-exposed faces.
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			top := tops[y*size+x]
			for z := top; z < depth; z++ {
				if m.OnSurface(x, y, z) {
					m.Set(x, y, z, terrainColor(z, top))
				}
			}
		}
	}
	return m, nil
}

func terrainColor(z, top int) uint32 {
	switch z - top {
	case 0:
		return 0x4C8030 // grass
	case 1, 2, 3:
		return 0x6B4A2B // dirt
	default:
		return vxl.DefaultColor
	}
}

// RunGenerateTerrain writes a generated terrain map to a raw .vxl file.
func RunGenerateTerrain(seed int64, size, depth int, outPath string) error {
	m, err := BuildTerrain(seed, size, depth)
	if err != nil {
		return err
	}
	n, err := WriteMapFile(m, outPath)
	if err != nil {
		return err
	}
	fmt.Printf("generated %dx%dx%d map (%d bytes)\n", size, size, depth, n)
	return nil
}
