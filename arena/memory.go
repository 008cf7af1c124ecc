package arena

// Memory is an Extender backed by a Go slice whose capacity is reserved up
// front. Growth never relocates, so Stable is true.
type Memory struct {
	buf   []byte
	limit int
}

// NewMemory creates an empty Memory arena that can grow to limit bytes.
// limit <= 0 selects DefaultLimit.
func NewMemory(limit int) *Memory {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Memory{buf: make([]byte, 0, limit), limit: limit}
}

// Extend implements Extender.
func (m *Memory) Extend(n int) (int, error) {
	if m.buf == nil {
		return 0, ErrClosed
	}
	old := len(m.buf)
	if err := checkGrow(old, n, m.limit); err != nil {
		return 0, err
	}
	m.buf = m.buf[:old+n]
	return old, nil
}

// Truncate implements Extender.
func (m *Memory) Truncate(size int) error {
	if m.buf == nil {
		return ErrClosed
	}
	if size < 0 || size > len(m.buf) {
		return ErrBadSize
	}
	m.buf = m.buf[:size]
	return nil
}

// Bytes implements Extender.
func (m *Memory) Bytes() []byte { return m.buf }

// Len implements Extender.
func (m *Memory) Len() int { return len(m.buf) }

// Stable implements Extender.
func (m *Memory) Stable() bool { return true }

// Limit returns the maximum region size.
func (m *Memory) Limit() int { return m.limit }

// Close drops the backing slice.
func (m *Memory) Close() error {
	m.buf = nil
	return nil
}
