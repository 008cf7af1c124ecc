package alloc

import (
	"fmt"

	"github.com/joshuapare/arenakit/internal/format"
)

// Walk calls fn for every real block in address order, stopping early when
// fn returns false. Sentinels are not reported.
func (a *Allocator) Walk(fn func(Block) bool) error {
	return walkBlocks(a.data, func(b format.Block) bool {
		return fn(Block{Offset: b.Offset, Size: b.Size, Allocated: b.Allocated})
	})
}

// walkBlocks validates the frame of data and iterates its real blocks.
func walkBlocks(data []byte, fn func(format.Block) bool) error {
	if !format.HasMagic(data) {
		return fmt.Errorf("%w: %w", ErrCorrupt, format.ErrSignatureMismatch)
	}
	if len(data) < format.PrologueSize {
		return fmt.Errorf("arena of %d bytes: %w: %w", len(data), ErrCorrupt, format.ErrTruncated)
	}
	head, off, err := format.NextBlock(data, format.HeadOffset)
	if err != nil {
		return fmt.Errorf("head sentinel: %w: %w", ErrCorrupt, err)
	}
	if head.Size != format.HeadSize || !head.Allocated {
		return fmt.Errorf("head sentinel %+v: %w", head, ErrCorrupt)
	}

	tail := len(data) - format.TagSize
	for off < tail {
		b, next, err := format.NextBlock(data, off)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		if b.Size < format.MinBlockSize || next > tail {
			return fmt.Errorf("block at %d size %d: %w", off, b.Size, ErrCorrupt)
		}
		if !fn(b) {
			return nil
		}
		off = next
	}
	if off != tail {
		return fmt.Errorf("walk ended at %d, tail at %d: %w", off, tail, ErrCorrupt)
	}
	if t := format.ReadTag(data, tail); t.Size != 0 || !t.Allocated {
		return fmt.Errorf("tail sentinel %+v: %w", t, ErrCorrupt)
	}
	return nil
}
