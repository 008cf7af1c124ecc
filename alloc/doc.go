// Package alloc implements a boundary-tag allocator with segregated,
// address-ordered free lists over a single contiguous arena.
//
// # Overview
//
// Every block carries an 8-byte header and an identical footer holding its
// size and an allocation bit. Free blocks reuse their payload for two link
// words (predecessor and successor) that thread them into one of several
// size-class lists. Footers let a released block find its left neighbour in
// constant time, so adjacent free blocks are always merged and the arena
// never contains two free blocks side by side.
//
// # Arena Layout
//
//	Offset    Size  Description
//	0x00      8     Magic "TAGARENA" (alignment pad)
//	0x08      16    Head sentinel (allocated, header + footer)
//	0x18      ...   Blocks
//	len-8     8     Tail sentinel (size 0, allocated)
//
// References handed to callers (Ref) are arena offsets of the first payload
// byte, so they stay valid when the arena is remapped or persisted.
//
// # Usage Example
//
//	a, err := alloc.New(arena.NewMemory(arena.DefaultLimit), nil)
//	if err != nil {
//	    return err
//	}
//
//	ref, err := a.Alloc(100)
//	if err != nil {
//	    return err
//	}
//	buf, _ := a.Payload(ref)
//	copy(buf, data)
//
//	ref, err = a.Realloc(ref, 400) // contents preserved
//	err = a.Free(ref)
//
// # Fit Policy
//
// Alloc scans the class of the rounded request and then every larger class,
// each in ascending address order, taking the first block that is large
// enough. When nothing fits, the arena is extended by the deficit beyond any
// free trailing block, at least ChunkSize bytes.
//
// # Size Classes
//
// The directory layout is configurable through SizeClassConfig. The default
// (ClassesBalanced) uses 16-byte steps from 32 to 512 bytes and doubling
// classes up to 16 KiB. Larger blocks go to a single oversized list.
//
// # Thread Safety
//
// Allocator is NOT thread-safe. Use Locked to share one across goroutines.
//
// # Debug Checks
//
// Building with -tags arenadebug makes every link access assert that the
// block is free and every payload access assert that it is allocated.
// Check verifies the full invariant set and is cheap enough for tests.
package alloc
