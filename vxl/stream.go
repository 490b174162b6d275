package vxl

import (
	"fmt"
	"io"
	"sort"
)

// Stream emits the encoded bytes of a map in caller-bounded chunks, so a
// network sender can transmit progressively without materializing the full
// encoded buffer. It implements io.Reader; each Read returns at most
// chunkSize bytes, and the concatenation of all reads equals Write's output
// byte for byte.
//
// While a Stream is open its map rejects mutation. Close releases the
// stream's state and unlocks the map.
type Stream struct {
	m         *Map
	chunkSize int

	// offsets[i] is the cumulative encoded size up to and including column
	// i (columns numbered y*width+x). Built once on open.
	offsets []int
	total   int

	pos    int
	buf    []byte
	closed bool
}

// NewStream opens a stream over m. chunkSize bounds how many bytes each Read
// returns. Opening walks every column once to build the column offset table.
func NewStream(m *Map, chunkSize int) (*Stream, error) {
	if chunkSize < 1 {
		return nil, fmt.Errorf("chunk size %d, want >= 1", chunkSize)
	}
	if m.streamed {
		return nil, fmt.Errorf("map is already being streamed")
	}

	s := &Stream{
		m:         m,
		chunkSize: chunkSize,
		offsets:   make([]int, m.width*m.height),
	}
	scratch := make([]byte, 0, m.depth*8)
	total := 0
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			total += len(m.encodeColumn(x, y, scratch[:0]))
			s.offsets[y*m.width+x] = total
		}
	}
	s.total = total
	m.streamed = true
	return s, nil
}

// Read encodes and copies the next min(chunkSize, len(p), remaining) bytes
// of the stream into p. It returns 0, io.EOF once the stream is exhausted.
// Column boundaries need not align with chunks; the column straddling the
// window is re-encoded into an internal buffer and sliced.
func (s *Stream) Read(p []byte) (int, error) {
	if s.closed {
		return 0, fmt.Errorf("read on closed stream")
	}
	if s.pos >= s.total {
		return 0, io.EOF
	}
	end := s.pos + s.chunkSize
	if end > s.total {
		end = s.total
	}
	if lim := s.pos + len(p); end > lim {
		end = lim
	}
	if end == s.pos {
		return 0, nil
	}

	first := sort.Search(len(s.offsets), func(i int) bool {
		return s.offsets[i] > s.pos
	})
	start := 0
	if first > 0 {
		start = s.offsets[first-1]
	}

	s.buf = s.buf[:0]
	for col := first; start+len(s.buf) < end; col++ {
		s.buf = s.m.encodeColumn(col%s.m.width, col/s.m.width, s.buf)
	}
	n := copy(p, s.buf[s.pos-start:end-start])
	s.pos += n
	return n, nil
}

// Len returns the total encoded size of the stream.
func (s *Stream) Len() int { return s.total }

// Close releases the offset table and buffer and unlocks the map. Closing an
// abandoned stream leaves no partial state behind; closing twice is a no-op.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.offsets = nil
	s.buf = nil
	s.m.streamed = false
	return nil
}
