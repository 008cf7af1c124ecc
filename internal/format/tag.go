package format

import (
	"bytes"
	"fmt"
)

// Tag is a decoded boundary tag.
//
// Tag word layout (little-endian uint64):
//
//	Bits    Description
//	0       Allocated flag
//	1-2     Reserved (always zero)
//	3-63    Block size in bytes, including both tags
type Tag struct {
	Size      int
	Allocated bool
}

// Pack encodes a tag word.
func Pack(size int, allocated bool) uint64 {
	v := uint64(size) & SizeMask
	if allocated {
		v |= AllocBit
	}
	return v
}

// Unpack decodes a tag word.
func Unpack(v uint64) Tag {
	return Tag{Size: int(v & SizeMask), Allocated: v&AllocBit != 0}
}

// ReadTag decodes the tag stored at off.
func ReadTag(b []byte, off int) Tag {
	return Unpack(ReadU64(b, off))
}

// WriteTags writes the same tag into the header at off and the footer at
// off+size-TagSize.
func WriteTags(b []byte, off, size int, allocated bool) {
	v := Pack(size, allocated)
	PutU64(b, off, v)
	PutU64(b, off+size-TagSize, v)
}

// FooterOffset returns where the footer of the block at off lives.
func FooterOffset(off, size int) int {
	return off + size - TagSize
}

// Block is a decoded block header as seen by a physical walk.
type Block struct {
	Offset    int // Header offset relative to the arena start
	Size      int // Total size including both tags
	Allocated bool
}

// Payload returns the arena offset of the first payload byte.
func (b Block) Payload() int { return b.Offset + TagSize }

// End returns the offset one past the block's footer.
func (b Block) End() int { return b.Offset + b.Size }

// NextBlock decodes the block whose header is at off and returns it together
// with the header offset of its physical successor. It validates that the
// header and footer agree and that the block lies inside b. A zero-size
// allocated tag (the tail sentinel) is returned with next == off.
func NextBlock(b []byte, off int) (Block, int, error) {
	if !Has(b, off, TagSize) {
		return Block{}, 0, fmt.Errorf("block at %d: %w", off, ErrTruncated)
	}
	if !IsAligned(off) {
		return Block{}, 0, fmt.Errorf("block at %d: %w", off, ErrMisaligned)
	}
	hdr := ReadTag(b, off)
	if hdr.Size == 0 {
		if !hdr.Allocated {
			return Block{}, 0, fmt.Errorf("block at %d: zero-size free tag: %w", off, ErrBadTag)
		}
		return Block{Offset: off, Allocated: true}, off, nil
	}
	if hdr.Size < HeadSize {
		return Block{}, 0, fmt.Errorf("block at %d: size %d below minimum: %w", off, hdr.Size, ErrBadTag)
	}
	if !Has(b, off, hdr.Size) {
		return Block{}, 0, fmt.Errorf("block at %d size %d: %w", off, hdr.Size, ErrTruncated)
	}
	ftr := ReadTag(b, FooterOffset(off, hdr.Size))
	if ftr != hdr {
		return Block{}, 0, fmt.Errorf("block at %d: header %+v != footer %+v: %w", off, hdr, ftr, ErrBadTag)
	}
	return Block{Offset: off, Size: hdr.Size, Allocated: hdr.Allocated}, off + hdr.Size, nil
}

// HasMagic reports whether b starts with the arena magic word.
func HasMagic(b []byte) bool {
	return len(b) >= WordSize && bytes.Equal(b[MagicOffset:MagicOffset+WordSize], Magic)
}

// WriteFrame writes the magic word and the head sentinel into b and places a
// tail sentinel at tailOff.
func WriteFrame(b []byte, tailOff int) {
	copy(b[MagicOffset:MagicOffset+WordSize], Magic)
	WriteTags(b, HeadOffset, HeadSize, true)
	PutU64(b, tailOff, Pack(0, true))
}
