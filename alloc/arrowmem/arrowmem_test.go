package arrowmem

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/arenakit/alloc"
	"github.com/joshuapare/arenakit/arena"
)

func newArena(t *testing.T) *alloc.Allocator {
	t.Helper()
	a, err := alloc.New(arena.NewMemory(0), nil)
	require.NoError(t, err)
	return a
}

func TestAllocator_Int64Builder(t *testing.T) {
	a := newArena(t)
	m, err := New(a)
	require.NoError(t, err)
	mem := memory.NewCheckedAllocator(m)
	defer mem.AssertSize(t, 0)

	builder := array.NewInt64Builder(mem)
	for i := range 10_000 {
		if i%7 == 0 {
			builder.AppendNull()
			continue
		}
		builder.Append(int64(i * 3))
	}
	arr := builder.NewInt64Array()
	builder.Release()

	require.Equal(t, 10_000, arr.Len())
	require.True(t, arr.IsNull(0))
	require.Equal(t, int64(3), arr.Value(1))
	require.Equal(t, int64(9_998*3), arr.Value(9_998))
	require.Positive(t, m.CurrentAlloc())
	require.NoError(t, a.Check())

	arr.Release()
	require.Zero(t, m.CurrentAlloc())
	require.NoError(t, a.Check())
	require.Zero(t, a.Stats().AllocatedBlocks)
}

func TestAllocator_ResizableBuffer(t *testing.T) {
	a := newArena(t)
	m, err := New(a)
	require.NoError(t, err)

	buf := memory.NewResizableBuffer(m)
	buf.Resize(100)
	for i := range buf.Len() {
		buf.Bytes()[i] = byte(i)
	}
	buf.Resize(50_000)
	require.Equal(t, 50_000, buf.Len())
	for i := range 100 {
		require.Equal(t, byte(i), buf.Bytes()[i])
	}
	buf.Resize(10)
	require.Equal(t, byte(9), buf.Bytes()[9])
	buf.Release()

	require.Zero(t, m.CurrentAlloc())
	require.NoError(t, a.Check())
}

func TestAllocator_Direct(t *testing.T) {
	a := newArena(t)
	m, err := New(a)
	require.NoError(t, err)

	require.Empty(t, m.Allocate(0))

	b := m.Allocate(24)
	require.Len(t, b, 24)
	require.Equal(t, 24, cap(b))
	copy(b, "boundary tags are cheap")

	b = m.Reallocate(4000, b)
	require.Len(t, b, 4000)
	require.Equal(t, "boundary tags are cheap", string(b[:23]))

	require.Empty(t, m.Reallocate(0, b))
	require.Zero(t, m.CurrentAlloc())
	require.Zero(t, m.Stats().AllocatedBlocks)

	require.Panics(t, func() { m.Free(make([]byte, 8)) })
}

func TestAllocator_ExhaustionPanics(t *testing.T) {
	a, err := alloc.New(arena.NewMemory(8192), nil)
	require.NoError(t, err)
	m, err := New(a)
	require.NoError(t, err)

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		m.Allocate(1 << 20)
	}()
	err, ok := recovered.(error)
	require.True(t, ok, "panic value %v is not an error", recovered)
	require.ErrorIs(t, err, alloc.ErrNoSpace)
	require.ErrorIs(t, err, arena.ErrLimit)
	require.NoError(t, a.Check())
}
