package alloc

import (
	"fmt"

	"github.com/joshuapare/arenakit/internal/format"
)

// rebuild adopts the arena image in ext: it validates the frame, relinks
// every free block into the directory and recounts allocated blocks.
// Two adjacent free blocks make the image corrupt; they are not repaired.
func (a *Allocator) rebuild() error {
	a.data = a.ext.Bytes()
	clear(a.heads)
	a.freeBytes, a.freeBlocks, a.allocBlocks = 0, 0, 0

	// Per-class tails let relinking append in address order without
	// rescanning each list.
	tails := make([]int, len(a.heads))
	prevFree := false
	var linkErr error

	err := walkBlocks(a.data, func(b format.Block) bool {
		if b.Allocated {
			a.allocBlocks++
			prevFree = false
			return true
		}
		if prevFree {
			linkErr = fmt.Errorf("adjacent free blocks at %d: %w", b.Offset, ErrCorrupt)
			return false
		}
		prevFree = true
		a.appendFree(b.Offset, b.Size, tails)
		return true
	})
	if err == nil {
		err = linkErr
	}
	if err != nil {
		a.log.Warn("arena image rejected", "len", len(a.data), "err", err)
		return fmt.Errorf("alloc open: %w", err)
	}
	a.log.Debug("arena opened", "len", len(a.data), "free_blocks", a.freeBlocks, "allocated_blocks", a.allocBlocks)
	return nil
}

// appendFree links a free block after the current tail of its class.
// Blocks must arrive in ascending address order.
func (a *Allocator) appendFree(off, size int, tails []int) {
	c := a.classOf(size)
	last := tails[c]
	a.setPred(off, last)
	a.setSucc(off, format.NoLink)
	if last == format.NoLink {
		a.heads[c] = off
	} else {
		a.setSucc(last, off)
	}
	tails[c] = off
	a.freeBytes += size
	a.freeBlocks++
}
