package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestHeap creates a heap with DefaultConfig unless cfg is given.
func newTestHeap(t testing.TB, cfg *Config, opts ...Option) *Heap {
	t.Helper()
	h, err := New(cfg, opts...)
	require.NoError(t, err)
	return h
}

// requireValid fails the test if the heap breaks an invariant.
func requireValid(t testing.TB, h *Heap) {
	t.Helper()
	require.NoError(t, h.Verify())
}

// requirePageUsed asserts every word of the size-byte page at off is allocated.
func requirePageUsed(t testing.TB, h *Heap, off Offset, size int) {
	t.Helper()
	for p := off; p < off+Offset(size); p += Offset(h.cfg.WordSize) {
		require.True(t, h.IsUsed(p), "word at %d of page %d should be used", p, off)
	}
}

// allocN allocates size bytes n times and returns the offsets.
func allocN(t testing.TB, h *Heap, size, n int) []Offset {
	t.Helper()
	offs := make([]Offset, n)
	for i := range n {
		off, err := h.Alloc(size)
		require.NoError(t, err, "alloc #%d of %d bytes", i, size)
		offs[i] = off
	}
	return offs
}
