package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/internal/format"
)

// initialArena is the size of a freshly initialized default arena:
// sentinels plus one DefaultChunkSize free block.
const initialArena = format.SentinelOverhead + DefaultChunkSize

// newTestAllocator creates an allocator over a Memory arena of limit bytes
// (arena.DefaultLimit when limit <= 0).
func newTestAllocator(t testing.TB, limit int, cfg *Config) (*Allocator, *arena.Memory) {
	t.Helper()
	mem := arena.NewMemory(limit)
	a, err := New(mem, cfg)
	require.NoError(t, err)
	require.NoError(t, a.Check())
	return a, mem
}

// mustAlloc allocates n bytes and returns the reference.
func mustAlloc(t testing.TB, a *Allocator, n int) Ref {
	t.Helper()
	ref, err := a.Alloc(n)
	require.NoError(t, err)
	require.NotEqual(t, Nil, ref)
	return ref
}

// fill writes a pattern derived from seed into the first n payload bytes.
func fill(t testing.TB, a *Allocator, ref Ref, n int, seed byte) {
	t.Helper()
	buf, err := a.Payload(ref)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(buf), n)
	for i := range n {
		buf[i] = seed + byte(i)
	}
}

// requirePattern asserts the first n payload bytes still hold fill's pattern.
func requirePattern(t testing.TB, a *Allocator, ref Ref, n int, seed byte) {
	t.Helper()
	buf, err := a.Payload(ref)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(buf), n)
	for i := range n {
		if buf[i] != seed+byte(i) {
			require.Failf(t, "payload corrupted", "ref %d byte %d: got %#x want %#x", ref, i, buf[i], seed+byte(i))
		}
	}
}

// blocks returns the physical block list.
func blocks(t testing.TB, a *Allocator) []Block {
	t.Helper()
	var out []Block
	require.NoError(t, a.Walk(func(b Block) bool {
		out = append(out, b)
		return true
	}))
	return out
}

// recordingTracker collects dirty ranges.
type recordingTracker struct {
	ranges [][2]int
}

func (r *recordingTracker) Add(off, length int) {
	r.ranges = append(r.ranges, [2]int{off, length})
}

func (r *recordingTracker) covers(off, length int) bool {
	for _, rg := range r.ranges {
		if off >= rg[0] && off+length <= rg[0]+rg[1] {
			return true
		}
	}
	return false
}
