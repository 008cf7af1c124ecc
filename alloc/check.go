package alloc

import (
	"fmt"

	"github.com/joshuapare/arenakit/internal/format"
)

// Check verifies the arena and directory against every layout invariant:
// matching tags, sentinels, no two adjacent free blocks, directory membership
// and ordering, link symmetry and byte accounting. It returns ErrCorrupt
// wrapped with the first violation found.
//
// Check walks the whole arena and is intended for tests and tooling.
func (a *Allocator) Check() error {
	var (
		freeSet    = make(map[int]bool)
		freeBytes  int
		allocBytes int
		allocCount int
		prevFree   bool
		walkErr    error
	)
	err := walkBlocks(a.data, func(b format.Block) bool {
		if b.Allocated {
			allocBytes += b.Size
			allocCount++
			prevFree = false
			return true
		}
		if prevFree {
			walkErr = fmt.Errorf("adjacent free blocks ending at %d: %w", b.Offset, ErrCorrupt)
			return false
		}
		freeSet[b.Offset] = true
		freeBytes += b.Size
		prevFree = true
		return true
	})
	if err != nil {
		return err
	}
	if walkErr != nil {
		return walkErr
	}

	if got := freeBytes + allocBytes + format.SentinelOverhead; got != len(a.data) {
		return fmt.Errorf("accounting: free %d + allocated %d + sentinels %d != arena %d: %w",
			freeBytes, allocBytes, format.SentinelOverhead, len(a.data), ErrCorrupt)
	}
	if freeBytes != a.freeBytes || len(freeSet) != a.freeBlocks {
		return fmt.Errorf("directory totals %d bytes/%d blocks, arena has %d/%d: %w",
			a.freeBytes, a.freeBlocks, freeBytes, len(freeSet), ErrCorrupt)
	}
	if allocCount != a.allocBlocks {
		return fmt.Errorf("allocated blocks %d, counter %d: %w", allocCount, a.allocBlocks, ErrCorrupt)
	}

	for c, head := range a.heads {
		if err := a.checkClass(c, head, freeSet); err != nil {
			return err
		}
	}
	if len(freeSet) != 0 {
		return fmt.Errorf("%d free blocks missing from directory: %w", len(freeSet), ErrCorrupt)
	}
	return nil
}

// checkClass walks one class list. Every member must be a free block found
// by the physical walk, belong to class c, appear exactly once and in
// ascending address order, and have symmetric links. Visited blocks are
// removed from freeSet.
func (a *Allocator) checkClass(c, head int, freeSet map[int]bool) error {
	lo, hi := 0, a.sizeTable.ceiling(c)
	if c > 0 {
		lo = a.sizeTable.ceiling(c-1) + 1
	}
	prev := format.NoLink
	for off := head; off != format.NoLink; {
		if !freeSet[off] {
			return fmt.Errorf("class %d: %d is not a free block or is listed twice: %w", c, off, ErrCorrupt)
		}
		delete(freeSet, off)

		size := a.size(off)
		if size < lo || size > hi {
			return fmt.Errorf("class %d [%d, %d]: block at %d has size %d: %w", c, lo, hi, off, size, ErrCorrupt)
		}
		if p := a.pred(off); p != prev {
			return fmt.Errorf("class %d: block at %d pred %d, want %d: %w", c, off, p, prev, ErrCorrupt)
		}
		if prev != format.NoLink && off <= prev {
			return fmt.Errorf("class %d: %d after %d breaks address order: %w", c, off, prev, ErrCorrupt)
		}
		prev, off = off, a.succ(off)
	}
	return nil
}
