package api

import (
	"bytes"
	"testing"

	"github.com/voxelsplace/vxl/vxl"
)

func TestMapToGLB(t *testing.T) {
	m, err := vxl.Create(16, 16, 16, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	glb, err := MapToGLB(m)
	if err != nil {
		t.Fatalf("MapToGLB: %v", err)
	}
	if len(glb) == 0 || !bytes.HasPrefix(glb, []byte("glTF")) {
		t.Fatalf("output is not a binary glTF (%d bytes)", len(glb))
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	a, err := vxl.Create(16, 16, 16, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := vxl.Create(16, 16, 16, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	b.Set(2, 3, 4, 0x446688)

	files := map[string][]byte{
		"one.vxl": a.Write(),
		"two.vxl": b.Write(),
	}
	blob, err := PackMaps(files, 16, 16, 16, vxl.CompZstd)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	got, w, h, d, err := UnpackToMemory(blob)
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if w != 16 || h != 16 || d != 16 {
		t.Fatalf("dims = %dx%dx%d, want 16x16x16", w, h, d)
	}
	if len(got) != 2 {
		t.Fatalf("%d entries, want 2", len(got))
	}
	for name, data := range files {
		if !bytes.Equal(got[name], data) {
			t.Fatalf("entry %s differs after round trip", name)
		}
	}
}

func TestPackMapsRejectsBadBlob(t *testing.T) {
	files := map[string][]byte{"broken.vxl": {1, 2, 3}}
	if _, err := PackMaps(files, 16, 16, 16, vxl.CompNone); err == nil {
		t.Fatalf("bad blob accepted")
	}
}
