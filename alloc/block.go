package alloc

import (
	"fmt"

	"github.com/joshuapare/arenakit/internal/format"
)

// Blocks are addressed by header offset. Whether the payload holds free-list
// links or caller data is decided by the allocation bit; the accessors below
// are the only code that reads either overlay.

func (a *Allocator) tag(off int) format.Tag {
	return format.ReadTag(a.data, off)
}

func (a *Allocator) size(off int) int {
	return a.tag(off).Size
}

func (a *Allocator) allocated(off int) bool {
	return a.tag(off).Allocated
}

// setTags writes matching header and footer tags for the block at off.
func (a *Allocator) setTags(off, size int, allocated bool) {
	format.WriteTags(a.data, off, size, allocated)
	a.markDirty(off, format.TagSize)
	a.markDirty(format.FooterOffset(off, size), format.TagSize)
}

// tailOffset returns the header offset of the tail sentinel.
func (a *Allocator) tailOffset() int {
	return len(a.data) - format.TagSize
}

func (a *Allocator) writeTail(off int) {
	format.PutU64(a.data, off, format.Pack(0, true))
	a.markDirty(off, format.TagSize)
}

// prevBlock returns the header offset of the block physically before off,
// found through its footer.
func (a *Allocator) prevBlock(off int) int {
	return off - a.size(off-format.TagSize)
}

// prevFree reports whether the block before off is free, reading only its footer.
func (a *Allocator) prevFree(off int) bool {
	return !a.tag(off - format.TagSize).Allocated
}

func (a *Allocator) pred(off int) int {
	a.assertFree(off)
	return format.ReadOffset(a.data, off+format.PredOffset)
}

func (a *Allocator) succ(off int) int {
	a.assertFree(off)
	return format.ReadOffset(a.data, off+format.SuccOffset)
}

func (a *Allocator) setPred(off, p int) {
	a.assertFree(off)
	format.PutOffset(a.data, off+format.PredOffset, p)
	a.markDirty(off+format.PredOffset, format.LinkSize)
}

func (a *Allocator) setSucc(off, s int) {
	a.assertFree(off)
	format.PutOffset(a.data, off+format.SuccOffset, s)
	a.markDirty(off+format.SuccOffset, format.LinkSize)
}

// payload returns the caller bytes of the allocated block at off.
func (a *Allocator) payload(off int) []byte {
	a.assertAllocated(off)
	size := a.size(off)
	b, _ := format.Slice(a.data, off+format.TagSize, format.Usable(size))
	return b
}

func (a *Allocator) markDirty(off, n int) {
	if a.dt != nil {
		a.dt.Add(off, n)
	}
}

func (a *Allocator) assertFree(off int) {
	if debugAsserts && a.allocated(off) {
		panic(fmt.Sprintf("alloc: link access on allocated block at %d", off))
	}
}

func (a *Allocator) assertAllocated(off int) {
	if debugAsserts && !a.allocated(off) {
		panic(fmt.Sprintf("alloc: payload access on free block at %d", off))
	}
}

// blockOf validates ref and returns the header offset of its block.
func (a *Allocator) blockOf(ref Ref) (int, error) {
	if ref%format.Alignment != 0 || ref < Ref(format.FirstBlockOffset+format.TagSize) ||
		ref > Ref(a.tailOffset()) {
		return 0, fmt.Errorf("ref %d: %w", ref, ErrBadRef)
	}
	off := int(ref) - format.TagSize
	if off+format.MinBlockSize > a.tailOffset() {
		return 0, fmt.Errorf("ref %d: %w", ref, ErrBadRef)
	}
	t := a.tag(off)
	if t.Size < format.MinBlockSize || off+t.Size > a.tailOffset() ||
		a.tag(format.FooterOffset(off, t.Size)) != t {
		return 0, fmt.Errorf("ref %d: undecodable tags: %w", ref, ErrBadRef)
	}
	if !t.Allocated {
		return 0, fmt.Errorf("ref %d: %w", ref, ErrNotAllocated)
	}
	return off, nil
}
