package format

import "errors"

var (
	// ErrTruncated indicates a block extends past the end of the arena.
	ErrTruncated = errors.New("format: truncated arena")
	// ErrMisaligned indicates an offset that is not a multiple of Alignment.
	ErrMisaligned = errors.New("format: misaligned offset")
	// ErrBadTag indicates an undecodable tag or a header/footer mismatch.
	ErrBadTag = errors.New("format: bad boundary tag")
	// ErrSignatureMismatch indicates the arena magic word is missing.
	ErrSignatureMismatch = errors.New("format: signature mismatch")
)
