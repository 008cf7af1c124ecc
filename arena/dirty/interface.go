package dirty

// DirtyTracker is the minimal interface for tracking dirty (modified) byte ranges.
// Allocators call Add for every tag and link word they write so a file-backed
// arena can flush only the pages that changed.
type DirtyTracker interface {
	// Add marks a byte range as dirty.
	// off is the offset from the start of the arena, length is the number of bytes.
	Add(off, length int)
}

// Source is the region a Tracker flushes. arena.File satisfies it.
type Source interface {
	Bytes() []byte
	FD() int
}
