package alloc

import (
	"fmt"

	"github.com/joshuapare/arenakit/internal/format"
)

// extend grows the arena by at least n bytes and turns the new space into a
// free block. The old tail sentinel becomes the new block's header and a
// fresh tail sentinel is written at the new end. The block is merged with a
// free trailing neighbour and inserted; its header offset is returned.
func (a *Allocator) extend(n int) (int, error) {
	size := max(format.Align8(n), format.MinBlockSize)

	if a.onExtend != nil {
		a.onExtend(size)
	}
	oldLen := len(a.data)
	base, err := a.ext.Extend(size)
	if err != nil {
		a.stats.ExtendFailures++
		a.log.Debug("arena extend refused", "want", size, "len", oldLen, "err", err)
		return 0, fmt.Errorf("extend by %d: %w: %w", size, ErrNoSpace, err)
	}
	if base != oldLen {
		// Give the space back so the extender and a.data agree on the length.
		if terr := a.ext.Truncate(oldLen); terr != nil {
			return 0, fmt.Errorf("extend returned %d, want %d: %w: %w", base, oldLen, ErrBadExtender, terr)
		}
		a.data = a.ext.Bytes()
		return 0, fmt.Errorf("extend returned %d, want %d: %w", base, oldLen, ErrBadExtender)
	}
	a.data = a.ext.Bytes()

	off := base - format.TagSize
	a.setTags(off, size, false)
	a.writeTail(off + size)

	a.stats.Extends++
	a.stats.ExtendBytes += uint64(size)
	a.log.Debug("arena extended", "by", size, "len", len(a.data))
	return a.coalesce(off), nil
}

// growFor extends the arena so that a block of asize bytes exists at its end.
// Only the deficit beyond a free trailing block is requested, rounded up to
// ChunkSize.
func (a *Allocator) growFor(asize int) (int, error) {
	need := asize
	if last := a.prevBlock(a.tailOffset()); !a.allocated(last) {
		need -= a.size(last)
	}
	return a.extend(max(need, a.cfg.ChunkSize))
}

// Trim returns trailing free space to the extender, keeping at most keep
// bytes of it (rounded up to a minimum block) in the arena. It returns the
// number of bytes released. Trim never moves allocated blocks.
func (a *Allocator) Trim(keep int) (int, error) {
	if keep < 0 {
		return 0, fmt.Errorf("trim keep %d: %w", keep, ErrBadSize)
	}
	tail := a.tailOffset()
	last := a.prevBlock(tail)
	if a.allocated(last) {
		return 0, nil
	}
	size := a.size(last)
	if keep > 0 {
		keep = max(format.Align8(keep), format.MinBlockSize)
	}
	if keep >= size {
		return 0, nil
	}

	// Unlink first: with keep == 0 the link words lie beyond the new end.
	a.removeFree(last)
	newTail := last + keep
	if err := a.ext.Truncate(newTail + format.TagSize); err != nil {
		a.insertFree(last)
		return 0, fmt.Errorf("trim to %d: %w", newTail+format.TagSize, err)
	}
	a.data = a.ext.Bytes()

	if keep > 0 {
		a.setTags(last, keep, false)
		a.insertFree(last)
	}
	a.writeTail(newTail)

	released := size - keep
	a.stats.Trims++
	a.stats.TrimBytes += uint64(released)
	a.log.Debug("arena trimmed", "released", released, "len", len(a.data))
	return released, nil
}
