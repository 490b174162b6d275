package vxl

// span is the fixed 4-byte header of one span record.
//
//	length     total 4-byte words in the record; 0 marks the final span
//	colorStart z of the first top-surface voxel of this solid run
//	colorEnd   z of the last top-surface voxel (inclusive)
//	airStart   z where the air run above this solid run begins; the previous
//	           span's bottom colors end exactly here
type span struct {
	length     uint8
	colorStart uint8
	colorEnd   uint8
	airStart   uint8
}

const spanHeaderSize = 4

func readSpan(data []byte, off int) span {
	return span{
		length:     data[off],
		colorStart: data[off+1],
		colorEnd:   data[off+2],
		airStart:   data[off+3],
	}
}

// topColors is the count of top-surface color words (may be 0 in the
// degenerate all-air terminator, where colorEnd = colorStart-1).
func (s span) topColors() int {
	return int(s.colorEnd) + 1 - int(s.colorStart)
}

// recordLength is the total byte length of the record including the header.
// A final span carries only its top colors; its length field is 0.
func (s span) recordLength() int {
	if s.length > 0 {
		return int(s.length) * 4
	}
	return (s.topColors() + 1) * 4
}
