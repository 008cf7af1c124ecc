// Package dirty tracks modified byte ranges of a memory-mapped arena and
// flushes them to disk.
//
// The tracker maintains a list of dirty byte ranges, coalesces them into
// page-aligned ranges, and flushes them with msync followed by fdatasync.
package dirty

import (
	"context"
	"sort"
)

const (
	// defaultRangeCapacity is the pre-allocated capacity for dirty ranges.
	defaultRangeCapacity = 64

	// standardPageSize is the typical OS page size (4KB).
	standardPageSize = 4096
)

// Range represents a dirty byte range (arena offsets).
type Range struct {
	Off int64
	Len int64
}

// Tracker accumulates dirty ranges and flushes them efficiently.
//
// NOT thread-safe. Only one goroutine should use it at a time.
type Tracker struct {
	src      Source
	ranges   []Range
	pageSize int64
}

// NewTracker creates a dirty tracker for the given source. src may be nil
// when the tracker is only used to observe writes.
func NewTracker(src Source) *Tracker {
	return &Tracker{
		src:      src,
		ranges:   make([]Range, 0, defaultRangeCapacity),
		pageSize: pageSize(),
	}
}

// Add records a dirty range. It only appends; alignment and merging happen
// at flush time.
func (t *Tracker) Add(off, length int) {
	if length <= 0 {
		return
	}
	t.ranges = append(t.ranges, Range{Off: int64(off), Len: int64(length)})
}

// Flush msyncs every dirty page and then fdatasyncs the descriptor. Ranges
// that fall outside the current mapping (for example after a trim) are
// skipped. The context is checked between ranges; a cancelled flush leaves
// the remaining ranges tracked.
func (t *Tracker) Flush(ctx context.Context) error {
	if len(t.ranges) == 0 || t.src == nil {
		t.Reset()
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data := t.src.Bytes()
	for _, r := range t.coalesce() {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := int(r.Off)
		end := min(int(r.Off+r.Len), len(data))
		if start >= end {
			continue
		}
		if err := msync(data[start:end]); err != nil {
			return err
		}
	}
	if err := fdatasync(t.src.FD()); err != nil {
		return err
	}

	t.Reset()
	return nil
}

// Reset clears all tracked ranges.
func (t *Tracker) Reset() {
	t.ranges = t.ranges[:0]
}

// Pending returns the number of raw ranges recorded since the last flush.
func (t *Tracker) Pending() int { return len(t.ranges) }

// DebugCoalescedRanges returns the page-aligned, sorted and merged ranges
// that the next Flush will write.
func (t *Tracker) DebugCoalescedRanges() []Range {
	return t.coalesce()
}

// coalesce page-aligns all ranges, sorts them, and merges overlapping/adjacent ranges.
func (t *Tracker) coalesce() []Range {
	if len(t.ranges) == 0 {
		return nil
	}

	aligned := make([]Range, len(t.ranges))
	for i, r := range t.ranges {
		start := (r.Off / t.pageSize) * t.pageSize
		end := r.Off + r.Len
		if end%t.pageSize != 0 {
			end = ((end / t.pageSize) + 1) * t.pageSize
		}
		aligned[i] = Range{Off: start, Len: end - start}
	}

	sort.Slice(aligned, func(i, j int) bool {
		return aligned[i].Off < aligned[j].Off
	})

	merged := make([]Range, 0, len(aligned))
	current := aligned[0]
	for _, next := range aligned[1:] {
		if next.Off <= current.Off+current.Len {
			end := max(current.Off+current.Len, next.Off+next.Len)
			current.Len = end - current.Off
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}
