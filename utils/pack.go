package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/voxelsplace/vxl/api"
	"github.com/voxelsplace/vxl/vxl"
)

// RunCreatePack bundles raw .vxl files into a .vxlpack. All inputs must have
// the same detected dimensions.
func RunCreatePack(inputs []string, outPath string, comp vxl.Compression) error {
	if len(inputs) == 0 {
		return fmt.Errorf("no input files")
	}

	files := make(map[string][]byte, len(inputs))
	var w, h, d int
	for i, in := range inputs {
		data, err := os.ReadFile(in)
		if err != nil {
			return err
		}
		size, depth, err := vxl.Size(data)
		if err != nil {
			return fmt.Errorf("detect size of %s: %w", in, err)
		}
		if i == 0 {
			w, h, d = size, size, depth
		} else if size != w || depth != d {
			return fmt.Errorf("%s: dimensions %dx%dx%d differ from %dx%dx%d", in, size, size, depth, w, h, d)
		}
		files[filepath.Base(in)] = data
	}

	pack, err := api.PackMaps(files, w, h, d, comp)
	if err != nil {
		return err
	}
	return os.WriteFile(outPath, pack, 0o644)
}

// RunUnpack extracts every entry of a .vxlpack into outDir as .vxl files.
func RunUnpack(inPath, outDir string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	files, _, _, _, err := api.UnpackToMemory(data)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	for name, blob := range files {
		if err := os.WriteFile(filepath.Join(outDir, filepath.Base(name)), blob, 0o644); err != nil {
			return err
		}
	}
	fmt.Printf("unpacked %d maps into %s\n", len(files), outDir)
	return nil
}

// RunCompress wraps a raw .vxl file in a VXLZ container with the given codec.
func RunCompress(inPath, outPath string, comp vxl.Compression) error {
	m, err := LoadMapFile(inPath)
	if err != nil {
		return err
	}
	blob, err := vxl.SaveContainer(m, comp)
	if err != nil {
		return err
	}
	return os.WriteFile(outPath, blob, 0o644)
}

// RunDecompress unwraps a VXLZ container back into a raw .vxl file.
func RunDecompress(inPath, outPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	m, err := vxl.LoadContainer(data)
	if err != nil {
		return err
	}
	_, err = WriteMapFile(m, outPath)
	return err
}
