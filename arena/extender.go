package arena

import (
	"errors"
	"math"
)

// DefaultLimit is the region cap used when a constructor is given limit <= 0.
const DefaultLimit = 20 * 1024 * 1024

var (
	// ErrLimit indicates the extender refused to grow past its configured limit.
	ErrLimit = errors.New("arena: size limit reached")

	// ErrClosed indicates the extender has been closed.
	ErrClosed = errors.New("arena: closed")

	// ErrBadSize indicates a negative grow or truncate request.
	ErrBadSize = errors.New("arena: invalid size")
)

// Extender grows the backing region of an arena.
type Extender interface {
	// Extend grows the region by n bytes. It returns the offset of the first
	// new byte, which is always the previous length. On error the region is
	// left exactly as it was.
	Extend(n int) (int, error)

	// Truncate shrinks the region to size bytes.
	Truncate(size int) error

	// Bytes returns the current region. The slice is invalidated by Extend
	// and Truncate unless Stable reports true.
	Bytes() []byte

	// Len returns the current region length.
	Len() int

	// Stable reports whether slices returned by Bytes stay valid across
	// Extend. Adapters that hand raw slices to callers require it.
	Stable() bool
}

// checkGrow validates an Extend request against cur and limit. The
// comparisons are written so that cur+n is never computed.
func checkGrow(cur, n, limit int) error {
	if n < 0 {
		return ErrBadSize
	}
	if n > math.MaxInt-cur {
		return ErrLimit
	}
	if limit > 0 && n > limit-cur {
		return ErrLimit
	}
	return nil
}
