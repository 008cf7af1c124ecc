package alloc

import (
	"github.com/joshuapare/arenakit/arena/dirty"
	"github.com/joshuapare/arenakit/internal/format"
)

// Ref is an arena-relative payload offset. It is what Alloc and Realloc hand
// out and what Free, Realloc and Payload accept.
type Ref uint64

// Nil is the null reference. Offset 0 holds the arena magic, so no payload
// ever starts there.
const Nil Ref = 0

// DirtyTracker is a type alias for the canonical interface defined in arena/dirty.
type DirtyTracker = dirty.DirtyTracker

// Block describes one block found by a physical walk of the arena.
type Block struct {
	Offset    int  // Header offset
	Size      int  // Total size including both boundary tags
	Allocated bool // Allocation flag shared by header and footer
}

// Ref returns the payload reference of the block.
func (b Block) Ref() Ref { return Ref(b.Offset + format.TagSize) }

// Usable returns the payload bytes of the block.
func (b Block) Usable() int { return format.Usable(b.Size) }
