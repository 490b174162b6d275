package utils

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestWriteAndLoadMapFile(t *testing.T) {
	m, err := BuildTerrain(1, 32, 32)
	if err != nil {
		t.Fatalf("terrain: %v", err)
	}
	want := m.Write()

	path := filepath.Join(t.TempDir(), "terrain.vxl")
	n, err := WriteMapFile(m, path)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if n != int64(len(want)) {
		t.Fatalf("wrote %d bytes, want %d", n, len(want))
	}

	m2, err := LoadMapFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m2.Width() != 32 || m2.Height() != 32 || m2.Depth() != 32 {
		t.Fatalf("loaded dims %dx%dx%d, want 32x32x32", m2.Width(), m2.Height(), m2.Depth())
	}
	if !bytes.Equal(want, m2.Write()) {
		t.Fatalf("map changed across write/load")
	}
}

func TestBuildTerrainDeterministic(t *testing.T) {
	a, err := BuildTerrain(7, 32, 32)
	if err != nil {
		t.Fatalf("terrain: %v", err)
	}
	b, err := BuildTerrain(7, 32, 32)
	if err != nil {
		t.Fatalf("terrain: %v", err)
	}
	if !bytes.Equal(a.Write(), b.Write()) {
		t.Fatalf("same seed produced different maps")
	}
	c, err := BuildTerrain(8, 32, 32)
	if err != nil {
		t.Fatalf("terrain: %v", err)
	}
	if bytes.Equal(a.Write(), c.Write()) {
		t.Fatalf("different seeds produced identical maps")
	}
}

func TestBuildTerrainRejectsTinyMaps(t *testing.T) {
	if _, err := BuildTerrain(1, 4, 32); err == nil {
		t.Fatalf("tiny size accepted")
	}
}
