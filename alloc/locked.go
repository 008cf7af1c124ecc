package alloc

import "sync"

// Locked is a mutex-protected wrapper around Allocator for concurrent access.
// Every call is serialized. Slices returned by Payload are not protected:
// the caller must not use them after another goroutine may have freed or
// resized the block.
type Locked struct {
	mu sync.Mutex
	a  *Allocator
}

// NewLocked wraps a.
func NewLocked(a *Allocator) *Locked {
	return &Locked{a: a}
}

// Alloc thread-safely allocates a block with at least n usable bytes.
func (l *Locked) Alloc(n int) (Ref, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Alloc(n)
}

// Free thread-safely releases the block at ref.
func (l *Locked) Free(ref Ref) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Free(ref)
}

// Realloc thread-safely resizes the block at ref.
func (l *Locked) Realloc(ref Ref, n int) (Ref, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Realloc(ref, n)
}

// Payload thread-safely resolves ref to its caller bytes.
func (l *Locked) Payload(ref Ref) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Payload(ref)
}

// UsableSize thread-safely reports the payload capacity of ref.
func (l *Locked) UsableSize(ref Ref) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.UsableSize(ref)
}

// Trim thread-safely releases trailing free space.
func (l *Locked) Trim(keep int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Trim(keep)
}

// Check thread-safely runs the heap checker.
func (l *Locked) Check() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Check()
}

// Stats thread-safely snapshots allocator state.
func (l *Locked) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Stats()
}

// Do runs fn with exclusive access to the underlying allocator, for compound
// operations such as allocate-then-fill.
func (l *Locked) Do(fn func(a *Allocator) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(l.a)
}
