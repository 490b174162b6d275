package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/voxelsplace/vxl/vxl"
)

func TestCreatePackAndUnpack(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.vxl")
	b := filepath.Join(dir, "b.vxl")
	if err := RunGenerateTerrain(1, 32, 32, a); err != nil {
		t.Fatalf("gen a: %v", err)
	}
	if err := RunGenerateTerrain(2, 32, 32, b); err != nil {
		t.Fatalf("gen b: %v", err)
	}

	packPath := filepath.Join(dir, "rotation.vxlpack")
	if err := RunCreatePack([]string{a, b}, packPath, vxl.CompZstd); err != nil {
		t.Fatalf("pack: %v", err)
	}

	outDir := filepath.Join(dir, "unpacked")
	if err := RunUnpack(packPath, outDir); err != nil {
		t.Fatalf("unpack: %v", err)
	}
	for _, in := range []string{a, b} {
		want, err := os.ReadFile(in)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		got, err := os.ReadFile(filepath.Join(outDir, filepath.Base(in)))
		if err != nil {
			t.Fatalf("read unpacked: %v", err)
		}
		if !bytes.Equal(want, got) {
			t.Fatalf("%s changed across pack/unpack", filepath.Base(in))
		}
	}
}

func TestCompressDecompressFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.vxl")
	if err := RunGenerateTerrain(5, 32, 32, in); err != nil {
		t.Fatalf("gen: %v", err)
	}
	want, err := os.ReadFile(in)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	vxlz := filepath.Join(dir, "map.vxlz")
	if err := RunCompress(in, vxlz, vxl.CompZlib); err != nil {
		t.Fatalf("compress: %v", err)
	}
	out := filepath.Join(dir, "out.vxl")
	if err := RunDecompress(vxlz, out); err != nil {
		t.Fatalf("decompress: %v", err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(want, got) {
		t.Fatalf("map changed across compress/decompress")
	}
}
