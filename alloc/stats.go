package alloc

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/joshuapare/arenakit/internal/format"
)

// Counters are monotonically increasing event counts.
type Counters struct {
	AllocCalls     uint64 // Total Alloc() calls
	FreeCalls      uint64 // Total Free() calls
	ReallocCalls   uint64 // Total Realloc() calls
	AllocFastPath  uint64 // Allocations satisfied from the directory
	AllocSlowPath  uint64 // Allocations that required extending the arena
	BytesAllocated uint64 // Block bytes handed out, including tags
	BytesFreed     uint64 // Block bytes released, including tags
	Splits         uint64 // Blocks split on placement or resize

	CoalesceNone uint64 // Releases with no free neighbour
	CoalesceNext uint64 // Merges with the next block only
	CoalescePrev uint64 // Merges with the previous block only
	CoalesceBoth uint64 // Merges with both neighbours

	ShrinkInPlace uint64 // Resizes that split off a tail
	GrowRight     uint64 // Resizes that absorbed the next block
	GrowLeft      uint64 // Resizes that slid into the previous block
	GrowBoth      uint64 // Resizes that absorbed both neighbours
	GrowAtEnd     uint64 // Resizes satisfied by extending past the last block
	Relocations   uint64 // Resizes that moved the data to a new block

	Extends        uint64 // Successful extender calls
	ExtendBytes    uint64 // Bytes added by the extender
	ExtendFailures uint64 // Refused extender calls

	Trims     uint64 // Trim calls that released space
	TrimBytes uint64 // Bytes released by Trim
}

// Stats is a snapshot of allocator state.
type Stats struct {
	ArenaSize       int    // Total arena bytes, sentinels included
	FreeBytes       int    // Bytes in free blocks, tags included
	FreeBlocks      int    // Number of free blocks
	AllocatedBytes  int    // Bytes in allocated blocks, tags included
	AllocatedBlocks int    // Number of allocated blocks
	LargestFree     int    // Size of the largest free block
	Classes         int    // Directory classes, oversized list included
	ClassConfig     string // Name of the size class layout

	Counters
}

// Stats returns a snapshot of allocator state.
func (a *Allocator) Stats() Stats {
	s := Stats{
		ArenaSize:       len(a.data),
		FreeBytes:       a.freeBytes,
		FreeBlocks:      a.freeBlocks,
		AllocatedBlocks: a.allocBlocks,
		Classes:         len(a.heads),
		ClassConfig:     a.sizeTable.String(),
		Counters:        a.stats,
	}
	if s.ArenaSize >= format.SentinelOverhead {
		s.AllocatedBytes = s.ArenaSize - format.SentinelOverhead - s.FreeBytes
	}
	s.LargestFree = a.largestFree()
	return s
}

// largestFree scans down from the highest non-empty class.
func (a *Allocator) largestFree() int {
	for c := len(a.heads) - 1; c >= 0; c-- {
		best := 0
		for off := a.heads[c]; off != format.NoLink; off = a.succ(off) {
			best = max(best, a.size(off))
		}
		if best > 0 {
			return best
		}
	}
	return 0
}

// Utilization returns the share of the arena held by allocated blocks.
func (s Stats) Utilization() float64 {
	if s.ArenaSize == 0 {
		return 0
	}
	return float64(s.AllocatedBytes) / float64(s.ArenaSize)
}

// Fragmentation returns 1 - largest/total free bytes: 0 when all free space
// is one block.
func (s Stats) Fragmentation() float64 {
	if s.FreeBytes == 0 {
		return 0
	}
	return 1 - float64(s.LargestFree)/float64(s.FreeBytes)
}

// String renders a short human-readable summary.
func (s Stats) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "arena %s, %s allocated in %s blocks, %s free in %s blocks (largest %s)",
		humanize.IBytes(uint64(s.ArenaSize)),
		humanize.IBytes(uint64(s.AllocatedBytes)),
		humanize.Comma(int64(s.AllocatedBlocks)),
		humanize.IBytes(uint64(s.FreeBytes)),
		humanize.Comma(int64(s.FreeBlocks)),
		humanize.IBytes(uint64(s.LargestFree)),
	)
	fmt.Fprintf(&sb, "; utilization %.1f%%, fragmentation %.1f%%",
		s.Utilization()*100, s.Fragmentation()*100)
	return sb.String()
}
