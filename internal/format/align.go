package format

// Align8 returns n aligned up to the next 8-byte boundary.
//
// Example:
//
//	Align8(1)  = 8
//	Align8(8)  = 8
//	Align8(9)  = 16
func Align8(n int) int {
	return (n + AlignmentMask) & ^AlignmentMask
}

// IsAligned reports whether n is a multiple of Alignment.
func IsAligned(n int) bool {
	return n&AlignmentMask == 0
}

// AllocSize maps a caller request of n payload bytes to the block size placed
// in the arena. The result always includes both boundary tags and is never
// below MinBlockSize.
//
// Example:
//
//	AllocSize(1)  = 32
//	AllocSize(16) = 32
//	AllocSize(17) = 40
//	AllocSize(64) = 80
func AllocSize(n int) int {
	if n <= SmallRequest {
		return MinBlockSize
	}
	return Align8(n + TagOverhead)
}

// Usable returns the payload bytes available in a block of the given size.
func Usable(blockSize int) int {
	if blockSize < TagOverhead {
		return 0
	}
	return blockSize - TagOverhead
}
