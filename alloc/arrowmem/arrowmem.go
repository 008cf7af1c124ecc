// Package arrowmem exposes an alloc.Allocator as an Apache Arrow
// memory.Allocator, so Arrow buffers and arrays can live inside an arena.
//
// Arrow hands buffers back as slices, so the arena's extender must be
// Stable: a slice's position in the region is how Free and Reallocate find
// the block again. Buffers are 8-byte aligned rather than Arrow's preferred
// 64 bytes.
package arrowmem

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/joshuapare/arenakit/alloc"
)

// ErrUnstable is returned by New when the arena may relocate on growth.
var ErrUnstable = errors.New("arrowmem: extender is not address-stable")

// Allocator adapts an alloc.Allocator to memory.Allocator. It is safe for
// concurrent use, as Arrow requires; the wrapped allocator must not be used
// directly while the adapter is live.
type Allocator struct {
	mu sync.Mutex
	a  *alloc.Allocator
	sz atomic.Int64
}

var _ memory.Allocator = (*Allocator)(nil)

// New wraps a.
func New(a *alloc.Allocator) (*Allocator, error) {
	if !a.Stable() {
		return nil, ErrUnstable
	}
	return &Allocator{a: a}, nil
}

// CurrentAlloc returns the bytes currently handed out to Arrow.
func (m *Allocator) CurrentAlloc() int { return int(m.sz.Load()) }

// Allocate implements memory.Allocator. It panics when the arena is
// exhausted, matching Arrow's allocators.
func (m *Allocator) Allocate(size int) []byte {
	if size == 0 {
		return []byte{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	ref, err := m.a.Alloc(size)
	if err != nil {
		panic(fmt.Errorf("arrowmem: allocate %d: %w", size, err))
	}
	m.sz.Add(int64(size))
	return m.slice(ref, size)
}

// Reallocate implements memory.Allocator. The first min(len(b), size) bytes
// are preserved.
func (m *Allocator) Reallocate(size int, b []byte) []byte {
	if len(b) == 0 {
		return m.Allocate(size)
	}
	if size == 0 {
		m.Free(b)
		return []byte{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	ref, err := m.a.Realloc(m.refOf(b), size)
	if err != nil {
		panic(fmt.Errorf("arrowmem: reallocate %d -> %d: %w", len(b), size, err))
	}
	m.sz.Add(int64(size - len(b)))
	return m.slice(ref, size)
}

// Free implements memory.Allocator.
func (m *Allocator) Free(b []byte) {
	if len(b) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.a.Free(m.refOf(b)); err != nil {
		panic(fmt.Errorf("arrowmem: free: %w", err))
	}
	m.sz.Add(-int64(len(b)))
}

// Stats returns the wrapped allocator's statistics.
func (m *Allocator) Stats() alloc.Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.a.Stats()
}

// slice returns the first size payload bytes of ref, capacity clipped.
func (m *Allocator) slice(ref alloc.Ref, size int) []byte {
	buf, err := m.a.Payload(ref)
	if err != nil {
		panic(fmt.Errorf("arrowmem: payload %d: %w", ref, err))
	}
	return buf[:size:size]
}

// refOf recovers the reference of a slice returned by Allocate or Reallocate
// from its distance to the arena base.
func (m *Allocator) refOf(b []byte) alloc.Ref {
	base := uintptr(unsafe.Pointer(unsafe.SliceData(m.a.Bytes())))
	p := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	if p < base || p >= base+uintptr(m.a.Len()) {
		panic("arrowmem: buffer not owned by this arena")
	}
	return alloc.Ref(p - base)
}
