// Package format defines the in-arena block layout: boundary tags, free-list
// link words, alignment rules and the fixed sentinel frame. Higher-level
// packages never compute tag positions themselves; they go through the helpers
// here so bounds and alignment are asserted in one place.
package format

// Magic occupies the alignment pad word at offset 0 of every arena. It lets
// Open distinguish an arena image from arbitrary bytes.
//
// Layout (little-endian uint64): 'T' 'A' 'G' 'A' 'R' 'E' 'N' 'A'.
var Magic = []byte{'T', 'A', 'G', 'A', 'R', 'E', 'N', 'A'}

const (
	// WordSize is the size of one tag or link word.
	WordSize = 8

	// Alignment is the alignment unit for block sizes and payload offsets.
	Alignment = 8

	// AlignmentMask is Alignment - 1.
	AlignmentMask = Alignment - 1

	// TagSize is the size of a single boundary tag (header or footer).
	TagSize = WordSize

	// TagOverhead is the header plus footer carried by every block.
	TagOverhead = 2 * TagSize

	// LinkSize is the size of one free-list link (pred or succ).
	LinkSize = WordSize

	// MinBlockSize is header + pred + succ + footer. No block, free or
	// allocated, is ever smaller.
	MinBlockSize = TagOverhead + 2*LinkSize

	// SmallRequest is the largest request that maps straight to MinBlockSize.
	SmallRequest = MinBlockSize - TagOverhead

	// AllocBit marks a tag as allocated. Sizes are multiples of Alignment so
	// the low three bits are always free.
	AllocBit = 0x1

	// SizeMask clears the flag bits of a tag.
	SizeMask = ^uint64(AlignmentMask)
)

// Fixed arena frame.
//
//	Offset    Size  Description
//	0x00      8     Magic (pad word)
//	0x08      8     Head sentinel header (16, allocated)
//	0x10      8     Head sentinel footer (16, allocated)
//	0x18      ...   First real block
//	len-8     8     Tail sentinel header (0, allocated)
const (
	// MagicOffset is where Magic is stored.
	MagicOffset = 0

	// HeadOffset is the header offset of the head sentinel block.
	HeadOffset = MagicOffset + WordSize

	// HeadSize is the size of the head sentinel block (header + footer only).
	HeadSize = TagOverhead

	// FirstBlockOffset is the header offset of the first real block.
	FirstBlockOffset = HeadOffset + HeadSize

	// PrologueSize is the frame written by init before the first extension:
	// magic, head sentinel and tail sentinel.
	PrologueSize = FirstBlockOffset + TagSize

	// SentinelOverhead is the number of arena bytes never owned by any
	// real block.
	SentinelOverhead = PrologueSize
)

// Payload-relative link positions inside a free block.
const (
	// PredOffset is the offset of the predecessor link from the block header.
	PredOffset = TagSize

	// SuccOffset is the offset of the successor link from the block header.
	SuccOffset = TagSize + LinkSize
)

// NoLink is the link value meaning "no neighbour". Offset 0 is the magic word
// and never a block header, so it is safe as a sentinel.
const NoLink = 0
