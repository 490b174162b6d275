package vxl

import (
	"bytes"
	"math/rand"
	"testing"
)

// buildTestMap returns a 64³ map with terrain plus a scattering of placed
// and removed voxels, deterministic across runs.
func buildTestMap(t *testing.T) *Map {
	t.Helper()
	m, err := Create(64, 64, 64, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 300; i++ {
		x, y, z := r.Intn(64), r.Intn(64), r.Intn(64)
		if r.Intn(3) == 0 {
			m.SetAir(x, y, z)
		} else {
			m.Set(x, y, z, uint32(r.Intn(1<<24)))
		}
	}
	return m
}

func sameMap(a, b *Map) bool {
	if a.width != b.width || a.height != b.height || a.depth != b.depth {
		return false
	}
	for i := range a.geom.bits {
		if a.geom.bits[i] != b.geom.bits[i] {
			return false
		}
	}
	for ci := range a.chunks {
		ca, cb := &a.chunks[ci], &b.chunks[ci]
		if len(ca.entries) != len(cb.entries) {
			return false
		}
		for i := range ca.entries {
			if ca.entries[i] != cb.entries[i] {
				return false
			}
		}
	}
	return true
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	m := buildTestMap(t)
	enc := m.Write()

	m2, err := Create(64, 64, 64, enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !sameMap(m, m2) {
		t.Fatalf("decoded map differs from source")
	}
	checkInvariants(t, m2)

	// encoding the decoded map reproduces the bytes exactly
	if enc2 := m2.Write(); !bytes.Equal(enc, enc2) {
		t.Fatalf("re-encode differs: %d vs %d bytes", len(enc), len(enc2))
	}
}

func TestDefaultMapColumnForm(t *testing.T) {
	m, err := Create(64, 64, 64, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// every column of the default map is one final span: surface color at
	// z=32, implicit solid below
	col := m.encodeColumn(0, 0, nil)
	want := []byte{0, 32, 32, 0, 0x28, 0x40, 0x67, 0x00}
	if !bytes.Equal(col, want) {
		t.Fatalf("column bytes = %x, want %x", col, want)
	}
	if enc := m.Write(); len(enc) != 64*64*8 {
		t.Fatalf("encoded size = %d, want %d", len(enc), 64*64*8)
	}
}

func TestEmptyColumnEncoding(t *testing.T) {
	m, err := Create(16, 16, 16, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for z := 0; z < 16; z++ {
		m.SetAir(3, 3, z)
	}
	col := m.encodeColumn(3, 3, nil)
	if !bytes.Equal(col, []byte{0, 16, 15, 0}) {
		t.Fatalf("all-air column = %x, want 00100f00", col)
	}

	enc := m.Write()
	m2, err := Create(16, 16, 16, enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m2.IsSolid(3, 3, 8) {
		t.Fatalf("all-air column came back solid")
	}
	if !bytes.Equal(enc, m2.Write()) {
		t.Fatalf("re-encode differs")
	}
}

func TestDeepColumnRoundTrip(t *testing.T) {
	m, err := Create(16, 16, 16, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// a floating block above the terrain gives the column two solid runs,
	// exercising multi-span decode
	m.Set(5, 5, 2, 0xABCDEF)
	// a hole in the terrain gives a run that ends before the map bottom,
	// whose lowest voxel is stored as a bottom color
	m.SetAir(9, 9, 12)

	enc := m.Write()
	m2, err := Create(16, 16, 16, enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !sameMap(m, m2) {
		t.Fatalf("decoded map differs from source")
	}
	if !bytes.Equal(enc, m2.Write()) {
		t.Fatalf("re-encode differs")
	}
}

func TestDecodeMalformedInput(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"truncated header", []byte{1, 0}},
		{"span past buffer", []byte{5, 0, 0, 0}},
		{"color z beyond depth", []byte{0, 3, 9, 0, 1, 2, 3, 0}},
		{"inverted color range", []byte{4, 6, 2, 0, 1, 2, 3, 0}},
		{"missing columns", []byte{0, 8, 7, 0}},
	}
	for _, tc := range cases {
		if _, err := Create(2, 2, 8, tc.data); err == nil {
			t.Fatalf("%s: decode succeeded, want error", tc.name)
		}
	}
}

func TestSizeDetection(t *testing.T) {
	m, err := Create(32, 32, 64, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	size, depth, err := Size(m.Write())
	if err != nil {
		t.Fatalf("size: %v", err)
	}
	if size != 32 || depth != 64 {
		t.Fatalf("Size = %dx%d, want 32x64", size, depth)
	}

	if _, _, err := Size(nil); err == nil {
		t.Fatalf("Size(nil) succeeded, want error")
	}
}
