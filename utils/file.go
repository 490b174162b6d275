package utils

import (
	"fmt"
	"io"
	"os"

	"github.com/voxelsplace/vxl/vxl"
)

// writeChunkSize is the stream granularity used when writing map files.
const writeChunkSize = 64 * 1024

// WriteMapFile saves a map as a raw .vxl file through the stream encoder,
// returning the total bytes written.
func WriteMapFile(m *vxl.Map, name string) (int64, error) {
	f, err := os.Create(name)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	stream, err := vxl.NewStream(m, writeChunkSize)
	if err != nil {
		return 0, err
	}
	defer stream.Close()

	n, err := io.Copy(f, stream)
	if err != nil {
		return n, fmt.Errorf("write %s: %w", name, err)
	}
	return n, f.Close()
}

// LoadMapFile reads a raw .vxl file, guessing its dimensions with vxl.Size.
func LoadMapFile(name string) (*vxl.Map, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	size, depth, err := vxl.Size(data)
	if err != nil {
		return nil, fmt.Errorf("detect size of %s: %w", name, err)
	}
	m, err := vxl.Create(size, size, depth, data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return m, nil
}

// RunInfo prints the detected dimensions and byte size of a raw .vxl file.
func RunInfo(name string) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	size, depth, err := vxl.Size(data)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %dx%dx%d, %d bytes\n", name, size, size, depth, len(data))
	return nil
}
