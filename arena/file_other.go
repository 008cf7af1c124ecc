//go:build !unix

package arena

import "errors"

// File is unavailable on this platform.
type File struct{ *Memory }

// OpenFile reports errors.ErrUnsupported on platforms without mmap.
func OpenFile(path string, limit int) (*File, error) {
	return nil, errors.ErrUnsupported
}

// FD always returns -1.
func (a *File) FD() int { return -1 }

// Sync is a no-op.
func (a *File) Sync() error { return nil }
