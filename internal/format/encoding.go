package format

import "encoding/binary"

// Word I/O for tags and links. All arena words are little-endian uint64.
//
// Implementation: encoding/binary.LittleEndian. The compiler inlines these
// calls into a single load/store with a bounds check, which is what the
// checked offset abstraction wants anyway.

// PutU64 writes a uint64 value to the buffer at the specified offset.
func PutU64(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+WordSize], v)
}

// ReadU64 reads a uint64 value from the buffer at the specified offset.
func ReadU64(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+WordSize])
}

// PutOffset writes an arena offset as a link word.
func PutOffset(b []byte, off int, v int) {
	PutU64(b, off, uint64(v))
}

// ReadOffset reads a link word as an arena offset.
func ReadOffset(b []byte, off int) int {
	return int(ReadU64(b, off))
}
