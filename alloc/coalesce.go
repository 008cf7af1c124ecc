package alloc

// coalesce merges the free block at off with any free physical neighbours
// and inserts the result into the directory. The block must already carry
// free tags and must not be linked. Returns the header offset of the merged
// block.
//
// The head and tail sentinels are permanently allocated, so the first and
// last real blocks need no special casing.
func (a *Allocator) coalesce(off int) int {
	size := a.size(off)
	next := off + size
	prevFree := a.prevFree(off)
	nextFree := !a.allocated(next)

	switch {
	case !prevFree && !nextFree:
		a.stats.CoalesceNone++

	case !prevFree && nextFree:
		size += a.size(next)
		a.removeFree(next)
		a.setTags(off, size, false)
		a.stats.CoalesceNext++

	case prevFree && !nextFree:
		prev := a.prevBlock(off)
		size += a.size(prev)
		a.removeFree(prev)
		off = prev
		a.setTags(off, size, false)
		a.stats.CoalescePrev++

	default:
		prev := a.prevBlock(off)
		size += a.size(prev) + a.size(next)
		a.removeFree(prev)
		a.removeFree(next)
		off = prev
		a.setTags(off, size, false)
		a.stats.CoalesceBoth++
	}

	a.insertFree(off)
	return off
}
