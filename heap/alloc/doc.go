// Package alloc provides a fixed-capacity page allocator over a single
// statically sized byte arena.
//
// # Overview
//
// The allocator is meant for environments with no underlying system
// allocator and a small memory budget (tens of kilobytes) used from a single
// execution context. It manages one arena using segregated free lists over
// power-of-two size classes. Each free list is intrusive: the first word of
// every free page holds the arena offset of the next free page of the same
// class, or End for the tail. A usage bitmap keeps one bit per arena word
// (1 = allocated, 0 = free).
//
// # Size Classes
//
// With DefaultConfig (16 KiB arena, 4-byte words) there are 12 classes:
//
//	Class  0:    4 bytes
//	Class  1:    8 bytes
//	...
//	Class 10: 4096 bytes
//	Class 11: 8192 bytes
//
// A fresh heap is one list of largest-class pages spanning the arena.
//
// # Usage Example
//
//	h, err := alloc.New(nil)
//	if err != nil {
//	    return err
//	}
//
//	off, err := h.Alloc(100) // served from a 128-byte page
//	if err != nil {
//	    return err
//	}
//	copy(h.Bytes(off, 100), payload)
//
//	// The heap keeps no per-allocation size; pass the same size back.
//	err = h.Free(off, 100)
//
// # Reclamation
//
// Free never merges neighbours. Reclaim discards every list and rebuilds them
// from the bitmap, packing each run of free words into the largest
// class-aligned pages possible. Alloc runs Reclaim once on its own when no
// list can serve a request, then retries once before returning ErrExhausted.
//
// # Thread Safety
//
// Heap instances are not safe for concurrent use and are not reentrant.
// Callers with more than one execution context must serialize every call.
//
// # Debug Checks
//
// Building with the heapdebug tag, or passing WithChecks(true), makes Free
// reject double frees and size mismatches it can detect from the bitmap.
// The heapdebug tag also turns unaligned bitmap offsets into panics.
package alloc
