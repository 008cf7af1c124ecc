package alloc

import (
	"fmt"

	"github.com/joshuapare/arenakit/internal/format"
)

// Realloc resizes the block at ref to hold at least n payload bytes and
// returns the (possibly moved) reference. The first min(old usable, n) bytes
// are preserved.
//
// Realloc(Nil, n) behaves as Alloc(n) and Realloc(ref, 0) as Free(ref),
// returning Nil. In-place paths are tried in order before relocating: shrink,
// absorb the next block, slide into the previous block, absorb both, then
// extend the arena when the block is last. On failure the original block is
// untouched.
func (a *Allocator) Realloc(ref Ref, n int) (Ref, error) {
	a.stats.ReallocCalls++
	switch {
	case ref == Nil:
		return a.Alloc(n)
	case n < 0 || n > maxRequest:
		return Nil, fmt.Errorf("realloc %d: %w", n, ErrBadSize)
	case n == 0:
		return Nil, a.Free(ref)
	}

	off, err := a.blockOf(ref)
	if err != nil {
		return Nil, err
	}
	cur := a.size(off)
	asize := format.AllocSize(n)

	if asize <= cur {
		a.shrink(off, asize)
		return ref, nil
	}

	next := off + cur
	nextSize := 0
	if !a.allocated(next) {
		nextSize = a.size(next)
	}
	prevSize := 0
	if a.prevFree(off) {
		prevSize = a.size(off - format.TagSize)
	}

	switch {
	case cur+nextSize >= asize:
		a.removeFree(next)
		a.absorb(off, cur, cur+nextSize, asize)
		a.stats.GrowRight++
		return ref, nil

	case prevSize > 0 && prevSize+cur >= asize:
		prev := off - prevSize
		a.removeFree(prev)
		a.slide(prev, off, cur)
		a.absorb(prev, cur, prevSize+cur, asize)
		a.stats.GrowLeft++
		return Ref(prev + format.TagSize), nil

	case prevSize > 0 && nextSize > 0 && prevSize+cur+nextSize >= asize:
		prev := off - prevSize
		a.removeFree(prev)
		a.removeFree(next)
		a.slide(prev, off, cur)
		a.absorb(prev, cur, prevSize+cur+nextSize, asize)
		a.stats.GrowBoth++
		return Ref(prev + format.TagSize), nil
	}

	if a.isLast(off) {
		if _, err := a.extend(asize - cur - nextSize); err == nil {
			next = off + cur
			nextSize = a.size(next)
			a.removeFree(next)
			a.absorb(off, cur, cur+nextSize, asize)
			a.stats.GrowAtEnd++
			return ref, nil
		}
	}

	return a.relocate(off, cur, asize)
}

// isLast reports whether only free space lies between the block at off and
// the tail sentinel.
func (a *Allocator) isLast(off int) bool {
	next := off + a.size(off)
	if next == a.tailOffset() {
		return true
	}
	return !a.allocated(next) && next+a.size(next) == a.tailOffset()
}

// relocate moves the block at off into a fresh allocation of asize bytes.
func (a *Allocator) relocate(off, cur, asize int) (Ref, error) {
	dst, err := a.allocate(asize)
	if err != nil {
		return Nil, err
	}
	// allocate may have remapped the arena; re-slice both payloads.
	copy(a.data[dst+format.TagSize:], a.data[off+format.TagSize:off+cur-format.TagSize])
	a.markDirty(dst+format.TagSize, format.Usable(cur))
	a.release(off)
	a.stats.Relocations++
	return Ref(dst + format.TagSize), nil
}

// shrink gives the tail of the block at off back to the directory when at
// least a minimum block can be split off.
func (a *Allocator) shrink(off, asize int) {
	cur := a.size(off)
	if cur-asize < format.MinBlockSize {
		return
	}
	a.setTags(off, asize, true)
	rem := off + asize
	a.setTags(rem, cur-asize, false)
	a.coalesce(rem)
	a.stats.ShrinkInPlace++
}

// slide moves the payload of the allocated block at src, cur bytes in size,
// to the block starting at dst < src. The regions may overlap.
func (a *Allocator) slide(dst, src, cur int) {
	copy(a.data[dst+format.TagSize:], a.data[src+format.TagSize:src+cur-format.TagSize])
	a.markDirty(dst+format.TagSize, format.Usable(cur))
}

// absorb rewrites the block at off, now spanning total bytes of which the
// caller's data occupied cur, as an allocated block of asize bytes, splitting
// off any usable remainder.
func (a *Allocator) absorb(off, cur, total, asize int) {
	a.stats.BytesAllocated += uint64(asize - cur)
	if total-asize >= format.MinBlockSize {
		a.setTags(off, asize, true)
		rem := off + asize
		a.setTags(rem, total-asize, false)
		a.coalesce(rem)
		a.stats.Splits++
		return
	}
	a.setTags(off, total, true)
}
