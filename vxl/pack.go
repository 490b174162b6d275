package vxl

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	xxhash "github.com/cespare/xxhash/v2"
)

const (
	packMagic   = "VXLPACK"
	packVersion = 1
)

// PackEntry is one named raw VXL payload inside a pack. Sum is the xxhash64
// digest of Data: Marshal computes the digest it writes from Data (the Sum
// field is not read), and UnmarshalPack verifies it and sets Sum.
type PackEntry struct {
	Name string
	Sum  uint64
	Data []byte
}

// Pack bundles multiple maps that share dimensions, e.g. a server's map
// rotation, into one distributable blob.
type Pack struct {
	W, H, D int
	Entries []PackEntry
}

// Marshal encodes the pack, compressing the content section with the given
// codec.
func (p *Pack) Marshal(comp Compression) ([]byte, error) {
	var content bytes.Buffer
	_ = binary.Write(&content, binary.LittleEndian, uint16(p.W))
	_ = binary.Write(&content, binary.LittleEndian, uint16(p.H))
	_ = binary.Write(&content, binary.LittleEndian, uint16(p.D))
	_ = binary.Write(&content, binary.LittleEndian, uint32(len(p.Entries)))
	for _, e := range p.Entries {
		nb := []byte(e.Name)
		if len(nb) > 0xFFFF {
			return nil, fmt.Errorf("entry name too long: %s", e.Name)
		}
		_ = binary.Write(&content, binary.LittleEndian, uint16(len(nb)))
		_, _ = content.Write(nb)
		_ = binary.Write(&content, binary.LittleEndian, xxhash.Sum64(e.Data))
		_ = binary.Write(&content, binary.LittleEndian, uint32(len(e.Data)))
		_, _ = content.Write(e.Data)
	}

	payload, err := compress(comp, content.Bytes())
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	out.WriteString(packMagic)
	_ = binary.Write(&out, binary.LittleEndian, uint8(packVersion))
	_ = binary.Write(&out, binary.LittleEndian, uint8(comp))
	_, _ = out.Write(payload)
	return out.Bytes(), nil
}

// UnmarshalPack parses a pack and verifies every entry's digest.
func UnmarshalPack(data []byte) (*Pack, error) {
	if len(data) < len(packMagic)+2 || string(data[:len(packMagic)]) != packMagic {
		return nil, fmt.Errorf("not a VXLPACK")
	}
	if data[len(packMagic)] != packVersion {
		return nil, fmt.Errorf("unsupported pack version %d", data[len(packMagic)])
	}
	comp := Compression(data[len(packMagic)+1])

	content, err := decompress(comp, data[len(packMagic)+2:])
	if err != nil {
		return nil, err
	}

	r := bytes.NewReader(content)
	var w, h, d uint16
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &w); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &d); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}

	pack := &Pack{W: int(w), H: int(h), D: int(d), Entries: make([]PackEntry, n)}
	for i := uint32(0); i < n; i++ {
		var nameLen uint16
		if err := binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
			return nil, err
		}
		name := make([]byte, nameLen)
		if _, err := io.ReadFull(r, name); err != nil {
			return nil, err
		}
		var sum uint64
		if err := binary.Read(r, binary.LittleEndian, &sum); err != nil {
			return nil, err
		}
		var plen uint32
		if err := binary.Read(r, binary.LittleEndian, &plen); err != nil {
			return nil, err
		}
		payload := make([]byte, plen)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, err
		}
		if got := xxhash.Sum64(payload); got != sum {
			return nil, fmt.Errorf("entry %q: checksum mismatch (want %016x, got %016x)", name, sum, got)
		}
		pack.Entries[i] = PackEntry{Name: string(name), Sum: sum, Data: payload}
	}
	return pack, nil
}
