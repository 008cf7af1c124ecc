package alloc

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/arenakit/internal/format"
)

// live tracks one outstanding allocation and the pattern written into it.
type live struct {
	ref  Ref
	n    int
	seed byte
}

// runRandomOps drives the allocator through a random mix of operations,
// verifying payload contents and every invariant after each step.
func runRandomOps(t *testing.T, a *Allocator, rng *rand.Rand, steps, maxSize int) {
	t.Helper()
	var blocks []live

	for i := range steps {
		switch op := rng.Intn(10); {
		case op < 4 || len(blocks) == 0: // alloc
			n := 1 + rng.Intn(maxSize)
			ref, err := a.Alloc(n)
			if errors.Is(err, ErrNoSpace) {
				continue
			}
			require.NoError(t, err, "step %d: alloc %d", i, n)
			seed := byte(rng.Intn(256))
			fill(t, a, ref, n, seed)
			blocks = append(blocks, live{ref, n, seed})

		case op < 7: // free
			k := rng.Intn(len(blocks))
			requirePattern(t, a, blocks[k].ref, blocks[k].n, blocks[k].seed)
			require.NoError(t, a.Free(blocks[k].ref), "step %d: free", i)
			blocks[k] = blocks[len(blocks)-1]
			blocks = blocks[:len(blocks)-1]

		case op < 9: // realloc
			k := rng.Intn(len(blocks))
			n := 1 + rng.Intn(maxSize)
			ref, err := a.Realloc(blocks[k].ref, n)
			if errors.Is(err, ErrNoSpace) {
				requirePattern(t, a, blocks[k].ref, blocks[k].n, blocks[k].seed)
				continue
			}
			require.NoError(t, err, "step %d: realloc %d -> %d", i, blocks[k].n, n)
			kept := min(blocks[k].n, n)
			requirePattern(t, a, ref, kept, blocks[k].seed)
			seed := byte(rng.Intn(256))
			fill(t, a, ref, n, seed)
			blocks[k] = live{ref, n, seed}

		default: // trim
			_, err := a.Trim(rng.Intn(2 * DefaultChunkSize))
			require.NoError(t, err, "step %d: trim", i)
		}

		require.NoError(t, a.Check(), "step %d", i)
	}

	for _, b := range blocks {
		requirePattern(t, a, b.ref, b.n, b.seed)
		require.NoError(t, a.Free(b.ref))
	}
	require.NoError(t, a.Check())

	st := a.Stats()
	require.Zero(t, st.AllocatedBlocks)
	require.LessOrEqual(t, st.FreeBlocks, 1, "everything must merge back together")
}

func TestProperty_RandomOps(t *testing.T) {
	for _, seed := range []int64{1, 42, 1337, 2024} {
		a, _ := newTestAllocator(t, 0, nil)
		runRandomOps(t, a, rand.New(rand.NewSource(seed)), 2000, 700)
	}
}

func TestProperty_RandomOpsLargeBlocks(t *testing.T) {
	a, _ := newTestAllocator(t, 0, nil)
	runRandomOps(t, a, rand.New(rand.NewSource(7)), 500, 40_000)
}

func TestProperty_RandomOpsUnderPressure(t *testing.T) {
	// Small limit: many requests fail, and failures must leave state intact.
	a, _ := newTestAllocator(t, 4*initialArena, nil)
	runRandomOps(t, a, rand.New(rand.NewSource(99)), 3000, 2000)
}

func TestProperty_ClassLayouts(t *testing.T) {
	for _, classes := range []SizeClassConfig{ClassesFine, ClassesPowerOfTwo} {
		t.Run(classes.Name, func(t *testing.T) {
			cfg := Config{Classes: classes, ChunkSize: 2 * format.MinBlockSize}
			a, _ := newTestAllocator(t, 0, &cfg)
			runRandomOps(t, a, rand.New(rand.NewSource(3)), 1500, 1500)
		})
	}
}
