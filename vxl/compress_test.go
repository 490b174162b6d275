package vxl

import (
	"bytes"
	"testing"
)

func TestContainerRoundTrip(t *testing.T) {
	m := buildTestMap(t)
	want := m.Write()

	for _, comp := range []Compression{CompNone, CompZlib, CompZstd} {
		blob, err := SaveContainer(m, comp)
		if err != nil {
			t.Fatalf("comp %d: save: %v", comp, err)
		}
		m2, err := LoadContainer(blob)
		if err != nil {
			t.Fatalf("comp %d: load: %v", comp, err)
		}
		if m2.Width() != 64 || m2.Height() != 64 || m2.Depth() != 64 {
			t.Fatalf("comp %d: dims %dx%dx%d", comp, m2.Width(), m2.Height(), m2.Depth())
		}
		if !bytes.Equal(want, m2.Write()) {
			t.Fatalf("comp %d: container round trip altered the map", comp)
		}
	}
}

func TestContainerRejectsGarbage(t *testing.T) {
	if _, err := LoadContainer([]byte("not a container at all")); err == nil {
		t.Fatalf("garbage accepted")
	}
	m, err := Create(16, 16, 16, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	blob, err := SaveContainer(m, CompNone)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := LoadContainer(blob[:len(blob)-1]); err == nil {
		t.Fatalf("truncated container accepted")
	}
	bad := append([]byte(nil), blob...)
	bad[4] = 99 // version
	if _, err := LoadContainer(bad); err == nil {
		t.Fatalf("unknown version accepted")
	}
}
