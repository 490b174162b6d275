package utils

import (
	"os"

	"github.com/voxelsplace/vxl/api"
)

// RunVXL2GLB converts a raw .vxl file to a binary glTF mesh.
func RunVXL2GLB(inPath, outPath string) error {
	m, err := LoadMapFile(inPath)
	if err != nil {
		return err
	}
	glb, err := api.MapToGLB(m)
	if err != nil {
		return err
	}
	return os.WriteFile(outPath, glb, 0o644)
}
