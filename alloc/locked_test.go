package alloc

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocked_ConcurrentAllocFree(t *testing.T) {
	a, _ := newTestAllocator(t, 0, nil)
	l := NewLocked(a)

	const workers, rounds = 8, 200
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var mine []Ref
			for i := range rounds {
				n := 16 + (w*rounds+i)%300
				ref, err := l.Alloc(n)
				if err != nil {
					errs <- err
					return
				}
				if err := l.Do(func(a *Allocator) error {
					buf, err := a.Payload(ref)
					if err != nil {
						return err
					}
					for j := range n {
						buf[j] = byte(w)
					}
					return nil
				}); err != nil {
					errs <- err
					return
				}
				mine = append(mine, ref)
				if i%3 == 0 {
					ref, err = l.Realloc(ref, n*2)
					if err != nil {
						errs <- err
						return
					}
					mine[len(mine)-1] = ref
				}
			}
			for _, ref := range mine {
				if err := l.Do(func(a *Allocator) error {
					buf, err := a.Payload(ref)
					if err != nil {
						return err
					}
					if buf[0] != byte(w) {
						t.Errorf("worker %d: block %d overwritten with %d", w, ref, buf[0])
					}
					return nil
				}); err != nil {
					errs <- err
					return
				}
				if err := l.Free(ref); err != nil {
					errs <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	require.NoError(t, l.Check())
	st := l.Stats()
	require.Zero(t, st.AllocatedBlocks)
	require.Equal(t, uint64(workers*rounds), st.FreeCalls)

	_, err := l.Trim(0)
	require.NoError(t, err)
	require.NoError(t, l.Check())
}

func TestLocked_Passthrough(t *testing.T) {
	a, _ := newTestAllocator(t, 0, nil)
	l := NewLocked(a)

	ref, err := l.Alloc(40)
	require.NoError(t, err)
	usable, err := l.UsableSize(ref)
	require.NoError(t, err)
	require.Equal(t, 40, usable)

	buf, err := l.Payload(ref)
	require.NoError(t, err)
	require.Len(t, buf, 40)

	var h Heap = l
	require.NoError(t, h.Free(ref))
	require.ErrorIs(t, l.Free(ref), ErrNotAllocated)
}
