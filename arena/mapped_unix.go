//go:build unix

package arena

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Mapped is an Extender backed by an anonymous private mapping. The full
// limit is reserved with PROT_NONE at construction; Extend commits pages with
// mprotect as the region grows, and Truncate hands whole pages back with
// MADV_DONTNEED. The base address never moves.
type Mapped struct {
	region    []byte // full reservation
	size      int    // logical length
	committed int    // bytes currently readable/writable (page multiple)
	pageSize  int
}

// NewMapped reserves limit bytes of address space. limit <= 0 selects
// DefaultLimit.
func NewMapped(limit int) (*Mapped, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	page := unix.Getpagesize()
	limit = alignPage(limit, page)

	region, err := unix.Mmap(-1, 0, limit, unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("arena: reserve %d bytes: %w", limit, err)
	}
	return &Mapped{region: region, pageSize: page}, nil
}

// Extend implements Extender.
func (m *Mapped) Extend(n int) (int, error) {
	if m.region == nil {
		return 0, ErrClosed
	}
	old := m.size
	if err := checkGrow(old, n, len(m.region)); err != nil {
		return 0, err
	}
	want := alignPage(old+n, m.pageSize)
	if want > m.committed {
		if err := unix.Mprotect(m.region[m.committed:want], unix.PROT_READ|unix.PROT_WRITE); err != nil {
			return 0, fmt.Errorf("arena: commit pages: %w", err)
		}
		m.committed = want
	}
	m.size = old + n
	return old, nil
}

// Truncate implements Extender.
func (m *Mapped) Truncate(size int) error {
	if m.region == nil {
		return ErrClosed
	}
	if size < 0 || size > m.size {
		return ErrBadSize
	}
	keep := alignPage(size, m.pageSize)
	if keep < m.committed {
		tail := m.region[keep:m.committed]
		if err := unix.Madvise(tail, unix.MADV_DONTNEED); err != nil {
			return fmt.Errorf("arena: release pages: %w", err)
		}
		if err := unix.Mprotect(tail, unix.PROT_NONE); err != nil {
			return fmt.Errorf("arena: decommit pages: %w", err)
		}
		m.committed = keep
	}
	m.size = size
	return nil
}

// Bytes implements Extender.
func (m *Mapped) Bytes() []byte {
	if m.region == nil {
		return nil
	}
	return m.region[:m.size:m.size]
}

// Len implements Extender.
func (m *Mapped) Len() int { return m.size }

// Stable implements Extender.
func (m *Mapped) Stable() bool { return true }

// Committed returns the number of bytes currently backed by accessible pages.
func (m *Mapped) Committed() int { return m.committed }

// Close unmaps the reservation.
func (m *Mapped) Close() error {
	if m.region == nil {
		return nil
	}
	err := unix.Munmap(m.region)
	m.region = nil
	m.size, m.committed = 0, 0
	return err
}

func alignPage(n, page int) int {
	return (n + page - 1) &^ (page - 1)
}
