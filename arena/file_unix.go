//go:build unix

package arena

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// File is an Extender backed by a shared, read-write mapping of a regular
// file. Growth extends the file with ftruncate and remaps it, so slices from
// Bytes are invalidated by Extend and Truncate (Stable is false).
type File struct {
	f     *os.File
	data  []byte
	size  int
	limit int
}

// OpenFile maps the file at path, creating it if it does not exist. An empty
// file yields an empty region ready for an allocator to initialise. limit <= 0
// selects DefaultLimit.
func OpenFile(path string, limit int) (*File, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, err
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	sz := st.Size()
	if sz > int64(limit) {
		_ = f.Close()
		return nil, fmt.Errorf("arena: %s is %d bytes, above limit %d: %w", path, sz, limit, ErrLimit)
	}

	af := &File{f: f, size: int(sz), limit: limit}
	if err := af.remap(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return af, nil
}

// Extend implements Extender.
func (a *File) Extend(n int) (int, error) {
	if a.f == nil {
		return 0, ErrClosed
	}
	old := a.size
	if err := checkGrow(old, n, a.limit); err != nil {
		return 0, err
	}
	if n == 0 {
		return old, nil
	}
	if err := a.resize(old + n); err != nil {
		return 0, err
	}
	return old, nil
}

// Truncate implements Extender.
func (a *File) Truncate(size int) error {
	if a.f == nil {
		return ErrClosed
	}
	if size < 0 || size > a.size {
		return ErrBadSize
	}
	if size == a.size {
		return nil
	}
	return a.resize(size)
}

// resize changes the file length and remaps it. On failure it restores the
// previous mapping so the region is unchanged.
func (a *File) resize(newSize int) error {
	if err := a.unmap(); err != nil {
		return fmt.Errorf("arena: unmap before resize: %w", err)
	}
	if err := unix.Ftruncate(int(a.f.Fd()), int64(newSize)); err != nil {
		_ = a.remap()
		return fmt.Errorf("arena: resize file: %w", err)
	}
	oldSize := a.size
	a.size = newSize
	if err := a.remap(); err != nil {
		_ = unix.Ftruncate(int(a.f.Fd()), int64(oldSize))
		a.size = oldSize
		_ = a.remap()
		return fmt.Errorf("arena: remap after resize: %w", err)
	}
	return nil
}

func (a *File) remap() error {
	if a.size == 0 {
		a.data = nil
		return nil
	}
	data, err := unix.Mmap(int(a.f.Fd()), 0, a.size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return err
	}
	a.data = data
	return nil
}

func (a *File) unmap() error {
	if a.data == nil {
		return nil
	}
	err := unix.Munmap(a.data)
	a.data = nil
	if errors.Is(err, unix.EINVAL) {
		return nil
	}
	return err
}

// Bytes implements Extender.
func (a *File) Bytes() []byte { return a.data }

// Len implements Extender.
func (a *File) Len() int { return a.size }

// Stable implements Extender.
func (a *File) Stable() bool { return false }

// FD returns the underlying file descriptor, or -1 once closed.
func (a *File) FD() int {
	if a.f == nil {
		return -1
	}
	return int(a.f.Fd())
}

// Sync flushes the whole mapping and the file metadata to disk.
func (a *File) Sync() error {
	if a.f == nil {
		return ErrClosed
	}
	if a.data != nil {
		if err := unix.Msync(a.data, unix.MS_SYNC); err != nil {
			return err
		}
	}
	return unix.Fsync(int(a.f.Fd()))
}

// Close unmaps the region and closes the file.
func (a *File) Close() error {
	if a.f == nil {
		return nil
	}
	uerr := a.unmap()
	cerr := a.f.Close()
	a.f = nil
	return errors.Join(uerr, cerr)
}
