// Package arena provides the growable backing region an allocator carves
// blocks out of.
//
// An Extender behaves like sbrk: Extend appends n bytes immediately after the
// current end and reports where they begin. Callers address the region with
// offsets, never pointers, so stores that relocate on growth (File) are
// handled the same way as stores that never move (Memory, Mapped).
//
// # Implementations
//
//   - Memory: a capped Go slice. Capacity is reserved up front so growth
//     never relocates. Good for tests and short-lived arenas.
//   - Mapped: an anonymous mapping reserved at full size with PROT_NONE and
//     committed page by page with mprotect (unix only).
//   - File: a shared file mapping grown with ftruncate and a remap. The arena
//     survives the process and can be re-opened (unix only).
//
// # Thread Safety
//
// Extenders are not thread-safe. They are driven by exactly one allocator.
package arena
