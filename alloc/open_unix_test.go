//go:build unix

package alloc

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/arena/dirty"
)

func TestFileArena_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heap.arena")

	f, err := arena.OpenFile(path, 0)
	require.NoError(t, err)
	dt := dirty.NewTracker(f)

	cfg := DefaultConfig
	cfg.Dirty = dt
	a, err := New(f, &cfg)
	require.NoError(t, err)

	var refs []Ref
	for i := range 50 {
		r := mustAlloc(t, a, 200+i*37)
		fill(t, a, r, 200, byte(i))
		refs = append(refs, r)
	}
	for i := 0; i < len(refs); i += 4 {
		require.NoError(t, a.Free(refs[i]))
	}
	require.NoError(t, a.Check())
	want := a.Stats()

	require.NotZero(t, dt.Pending())
	require.NoError(t, dt.Flush(context.Background()))
	require.Zero(t, dt.Pending())
	require.NoError(t, f.Close())

	f, err = arena.OpenFile(path, 0)
	require.NoError(t, err)
	defer f.Close()

	b, err := Open(f, nil)
	require.NoError(t, err)
	require.NoError(t, b.Check())
	require.Equal(t, want.ArenaSize, b.Stats().ArenaSize)
	require.Equal(t, want.FreeBlocks, b.Stats().FreeBlocks)

	for i, r := range refs {
		if i%4 == 0 {
			continue
		}
		requirePattern(t, b, r, 200, byte(i))
	}
}

// File arenas remap on growth; references must survive that.
func TestFileArena_RefsSurviveRemap(t *testing.T) {
	f, err := arena.OpenFile(filepath.Join(t.TempDir(), "grow.arena"), 0)
	require.NoError(t, err)
	defer f.Close()
	require.False(t, f.Stable())

	a, err := New(f, nil)
	require.NoError(t, err)

	first := mustAlloc(t, a, 64)
	fill(t, a, first, 64, 0xA0)
	for range 100 {
		mustAlloc(t, a, 3000)
	}
	requirePattern(t, a, first, 64, 0xA0)

	grown, err := a.Realloc(first, 20_000)
	require.NoError(t, err)
	requirePattern(t, a, grown, 64, 0xA0)
	require.NoError(t, a.Check())

	_, err = a.Trim(0)
	require.NoError(t, err)
	require.NoError(t, a.Check())
}
