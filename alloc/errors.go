package alloc

import "errors"

var (
	// ErrNoSpace indicates that no free block was large enough and the
	// extender refused to grow the arena.
	ErrNoSpace = errors.New("alloc: no free block large enough")

	// ErrBadRef indicates an out-of-bounds, misaligned or undecodable reference.
	ErrBadRef = errors.New("alloc: bad block reference")

	// ErrNotAllocated indicates a release or resize of a block that is free.
	ErrNotAllocated = errors.New("alloc: block is not allocated")

	// ErrBadSize indicates a negative or unrepresentable request size.
	ErrBadSize = errors.New("alloc: invalid request size")

	// ErrBadExtender indicates the extender returned space that does not
	// start at the previous end of the arena.
	ErrBadExtender = errors.New("alloc: extender returned non-contiguous space")

	// ErrCorrupt indicates an arena image or allocator state that violates
	// the block layout invariants.
	ErrCorrupt = errors.New("alloc: arena corrupt")
)
