//go:build !unix

package arena

import "errors"

// Mapped is unavailable on this platform.
type Mapped struct{ *Memory }

// NewMapped reports errors.ErrUnsupported on platforms without mmap.
func NewMapped(limit int) (*Mapped, error) {
	return nil, errors.ErrUnsupported
}
