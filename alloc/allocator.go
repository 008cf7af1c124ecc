package alloc

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/internal/format"
)

// maxRequest bounds Alloc and Realloc so that sizing arithmetic cannot overflow.
const maxRequest = math.MaxInt - 8*format.Alignment

// Allocator manages a single arena through boundary tags and segregated,
// address-ordered free lists.
//
// All block state lives in the arena bytes; the Allocator itself only caches
// the class list heads and running counters. An Allocator is not safe for
// concurrent use; wrap it in Locked when sharing across goroutines.
type Allocator struct {
	ext  arena.Extender
	dt   DirtyTracker
	log  *slog.Logger
	cfg  Config
	data []byte // ext.Bytes(), refreshed after every Extend or Truncate

	// Size class configuration and lookup table
	sizeTable *sizeClassTable

	// Head of each class list. Index numClasses is the oversized list.
	heads []int

	// Directory totals, maintained by insertFree and removeFree
	freeBytes  int
	freeBlocks int

	allocBlocks int

	// Statistics for testing and instrumentation
	stats Counters

	// Test hook: called before every extender call (nil in production)
	onExtend func(int)
}

// New creates an allocator over ext and initializes a fresh arena in it.
// Any existing contents of ext are discarded.
func New(ext arena.Extender, cfg *Config) (*Allocator, error) {
	a, err := newAllocator(ext, cfg)
	if err != nil {
		return nil, err
	}
	if err := a.Init(); err != nil {
		return nil, err
	}
	return a, nil
}

// Open creates an allocator over an arena image already present in ext and
// rebuilds the free-space directory by walking every block. Link words
// stored in the image are ignored and rewritten.
func Open(ext arena.Extender, cfg *Config) (*Allocator, error) {
	a, err := newAllocator(ext, cfg)
	if err != nil {
		return nil, err
	}
	if err := a.rebuild(); err != nil {
		return nil, err
	}
	return a, nil
}

func newAllocator(ext arena.Extender, cfg *Config) (*Allocator, error) {
	if ext == nil {
		return nil, errors.New("alloc: nil extender")
	}
	if cfg == nil {
		cfg = &DefaultConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := cfg.normalized()
	table := newSizeClassTable(c.Classes)
	return &Allocator{
		ext:       ext,
		dt:        c.Dirty,
		log:       c.Logger,
		cfg:       c,
		data:      ext.Bytes(),
		sizeTable: table,
		heads:     make([]int, table.numClasses()+1),
	}, nil
}

// Init resets the arena to the empty state: magic, head sentinel, one
// ChunkSize free block and the tail sentinel. Every previously handed out
// reference becomes invalid.
func (a *Allocator) Init() error {
	if err := a.ext.Truncate(0); err != nil {
		return fmt.Errorf("alloc init: %w", err)
	}
	a.data = a.ext.Bytes()
	clear(a.heads)
	a.freeBytes, a.freeBlocks, a.allocBlocks = 0, 0, 0

	if a.onExtend != nil {
		a.onExtend(format.PrologueSize)
	}
	base, err := a.ext.Extend(format.PrologueSize)
	if err != nil {
		return fmt.Errorf("alloc init: %w: %w", ErrNoSpace, err)
	}
	if base != 0 {
		return fmt.Errorf("alloc init: prologue at %d: %w", base, ErrBadExtender)
	}
	a.data = a.ext.Bytes()
	format.WriteFrame(a.data, format.FirstBlockOffset)
	a.markDirty(0, format.PrologueSize)

	if _, err := a.extend(a.cfg.ChunkSize); err != nil {
		return fmt.Errorf("alloc init: %w", err)
	}
	a.log.Debug("arena initialized", "size", len(a.data), "classes", a.sizeTable.String())
	return nil
}

// Alloc returns a reference to a block with at least n usable payload bytes.
// Alloc(0) returns Nil and no error.
func (a *Allocator) Alloc(n int) (Ref, error) {
	a.stats.AllocCalls++
	switch {
	case n < 0 || n > maxRequest:
		return Nil, fmt.Errorf("alloc %d: %w", n, ErrBadSize)
	case n == 0:
		return Nil, nil
	}
	off, err := a.allocate(format.AllocSize(n))
	if err != nil {
		return Nil, err
	}
	return Ref(off + format.TagSize), nil
}

// allocate finds or creates a block of asize bytes, marks it allocated and
// returns its header offset.
func (a *Allocator) allocate(asize int) (int, error) {
	off := a.findFit(asize)
	if off == format.NoLink {
		var err error
		off, err = a.growFor(asize)
		if err != nil {
			return 0, err
		}
		a.stats.AllocSlowPath++
	} else {
		a.stats.AllocFastPath++
	}
	a.place(off, asize)
	a.stats.BytesAllocated += uint64(asize)
	return off, nil
}

// Free returns the block at ref to the directory, merging it with free
// physical neighbours. Free(Nil) is a no-op.
func (a *Allocator) Free(ref Ref) error {
	a.stats.FreeCalls++
	if ref == Nil {
		return nil
	}
	off, err := a.blockOf(ref)
	if err != nil {
		return err
	}
	a.release(off)
	return nil
}

func (a *Allocator) release(off int) {
	size := a.size(off)
	a.stats.BytesFreed += uint64(size)
	a.allocBlocks--
	a.setTags(off, size, false)
	a.coalesce(off)
}

// Payload returns the caller bytes of the block at ref. The slice is valid
// until the block is freed or resized and, unless the extender is Stable,
// until the arena next grows or shrinks.
func (a *Allocator) Payload(ref Ref) ([]byte, error) {
	off, err := a.blockOf(ref)
	if err != nil {
		return nil, err
	}
	return a.payload(off), nil
}

// UsableSize returns the payload capacity of the block at ref, which may
// exceed the size originally requested.
func (a *Allocator) UsableSize(ref Ref) (int, error) {
	off, err := a.blockOf(ref)
	if err != nil {
		return 0, err
	}
	return format.Usable(a.size(off)), nil
}

// Len returns the current arena size in bytes.
func (a *Allocator) Len() int { return len(a.data) }

// Bytes returns the whole arena region.
func (a *Allocator) Bytes() []byte { return a.data }

// Stable reports whether payload slices survive arena growth, which holds
// when the extender never relocates its region.
func (a *Allocator) Stable() bool { return a.ext.Stable() }
