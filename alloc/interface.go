package alloc

// Heap is the allocation surface shared by Allocator and Locked. The metrics
// collector accepts it so that either can be exported.
type Heap interface {
	// Alloc returns a block with at least n usable bytes.
	Alloc(n int) (Ref, error)

	// Free releases the block at ref. Free(Nil) is a no-op.
	Free(ref Ref) error

	// Realloc resizes the block at ref, possibly moving it.
	Realloc(ref Ref, n int) (Ref, error)

	// Payload returns the caller bytes of the block at ref.
	Payload(ref Ref) ([]byte, error)

	// Stats returns a snapshot of allocator state.
	Stats() Stats
}

var (
	_ Heap = (*Allocator)(nil)
	_ Heap = (*Locked)(nil)
)
