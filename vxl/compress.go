package vxl

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Compression selects the codec of a VXLZ container or pack content section.
type Compression uint8

const (
	CompNone Compression = 0
	CompZlib Compression = 1
	CompZstd Compression = 2
)

const (
	containerMagic   = "VXLZ"
	containerVersion = 1
)

// SaveContainer encodes the map and wraps it in a VXLZ container, which
// records the dimensions a raw VXL stream cannot carry and optionally
// compresses the payload.
func SaveContainer(m *Map, comp Compression) ([]byte, error) {
	payload, err := compress(comp, m.Write())
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	out.WriteString(containerMagic)
	_ = binary.Write(&out, binary.LittleEndian, uint8(containerVersion))
	_ = binary.Write(&out, binary.LittleEndian, uint8(comp))
	_ = binary.Write(&out, binary.LittleEndian, uint16(m.width))
	_ = binary.Write(&out, binary.LittleEndian, uint16(m.height))
	_ = binary.Write(&out, binary.LittleEndian, uint16(m.depth))
	_ = binary.Write(&out, binary.LittleEndian, uint32(len(payload)))
	_, _ = out.Write(payload)
	return out.Bytes(), nil
}

// LoadContainer parses a VXLZ container and decodes the map inside.
func LoadContainer(data []byte) (*Map, error) {
	if len(data) < 16 || string(data[:4]) != containerMagic {
		return nil, fmt.Errorf("not a VXLZ container")
	}
	r := bytes.NewReader(data[4:])
	var ver, comp uint8
	var w, h, d uint16
	var plen uint32
	if err := binary.Read(r, binary.LittleEndian, &ver); err != nil {
		return nil, err
	}
	if ver != containerVersion {
		return nil, fmt.Errorf("unsupported VXLZ version %d", ver)
	}
	if err := binary.Read(r, binary.LittleEndian, &comp); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &w); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &d); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &plen); err != nil {
		return nil, err
	}
	if uint32(len(data)-16) != plen {
		return nil, fmt.Errorf("payload length mismatch (header says %d, have %d)", plen, len(data)-16)
	}

	raw, err := decompress(Compression(comp), data[16:])
	if err != nil {
		return nil, err
	}
	return Create(int(w), int(h), int(d), raw)
}

func compress(comp Compression, b []byte) ([]byte, error) {
	switch comp {
	case CompNone:
		return b, nil
	case CompZlib:
		var buf bytes.Buffer
		zw, _ := zlib.NewWriterLevel(&buf, zlib.BestCompression)
		if _, err := zw.Write(b); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompZstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(b, nil), nil
	default:
		return nil, fmt.Errorf("unsupported compression: %d", comp)
	}
}

func decompress(comp Compression, b []byte) ([]byte, error) {
	switch comp {
	case CompNone:
		return b, nil
	case CompZlib:
		zr, err := zlib.NewReader(bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return io.ReadAll(zr)
	case CompZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(b, nil)
	default:
		return nil, fmt.Errorf("unsupported compression: %d", comp)
	}
}
