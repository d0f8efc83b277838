package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test_Free_PrependsAndClearsBits verifies a freed page goes to the head of
// its class list with all words marked free.
func Test_Free_PrependsAndClearsBits(t *testing.T) {
	h := newTestHeap(t, nil)
	offs := allocN(t, h, 8, 3) // 0, 8, 16

	require.NoError(t, h.Free(offs[0], 8))
	require.NoError(t, h.Free(offs[2], 8))

	assert.Equal(t, []Offset{16, 0, 24}, h.FreeList(1))
	assert.False(t, h.IsUsed(0))
	assert.False(t, h.IsUsed(4))
	assert.True(t, h.IsUsed(8))
	assert.Equal(t, int64(16), h.Stats().BytesFreed)
	requireValid(t, h)
}

// Test_Free_SizeWithinClass verifies any size resolving to the same class frees the page.
func Test_Free_SizeWithinClass(t *testing.T) {
	h := newTestHeap(t, nil)

	off, err := h.Alloc(70)
	require.NoError(t, err)
	require.NoError(t, h.Free(off, 128))
	require.Equal(t, off, h.FreeList(5)[0])
	requireValid(t, h)
}

// Test_Free_OversizeFallsBackToTopClass pins the behaviour for sizes no
// class covers: the page is treated as a top-class page.
func Test_Free_OversizeFallsBackToTopClass(t *testing.T) {
	h := newTestHeap(t, nil)

	off, err := h.Alloc(8192)
	require.NoError(t, err)
	require.Equal(t, Offset(0), off)

	require.NoError(t, h.Free(off, 10000))
	assert.Equal(t, []Offset{0, 8192}, h.FreeList(11))
	requireValid(t, h)
}

func Test_Free_BadArguments(t *testing.T) {
	h := newTestHeap(t, nil)
	off, err := h.Alloc(4)
	require.NoError(t, err)

	tests := []struct {
		name string
		off  Offset
		size int
		want error
	}{
		{"zero size", off, 0, ErrBadSize},
		{"negative offset", -4, 4, ErrBadOffset},
		{"end sentinel", End, 4, ErrBadOffset},
		{"unaligned", 2, 4, ErrBadOffset},
		{"past arena", 16384, 4, ErrBadOffset},
		{"page runs past arena", 12288, 8192, ErrBadOffset},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, h.Free(tt.off, tt.size), tt.want)
		})
	}

	require.True(t, h.IsUsed(off), "rejected frees must not touch the bitmap")
	requireValid(t, h)
}

// Test_Free_ChecksDetectDoubleFree verifies checked heaps reject a second free.
func Test_Free_ChecksDetectDoubleFree(t *testing.T) {
	h := newTestHeap(t, nil, WithChecks(true))

	off, err := h.Alloc(4)
	require.NoError(t, err)
	require.NoError(t, h.Free(off, 4))

	require.ErrorIs(t, h.Free(off, 4), ErrNotAllocated)
	requireValid(t, h)
}

// Test_Free_ChecksDetectSizeMismatch verifies a size resolving to a larger
// class than allocated is caught when the extra words are free.
func Test_Free_ChecksDetectSizeMismatch(t *testing.T) {
	h := newTestHeap(t, nil, WithChecks(true))

	off, err := h.Alloc(4)
	require.NoError(t, err)
	require.Equal(t, Offset(0), off)

	require.ErrorIs(t, h.Free(off, 8), ErrNotAllocated)

	_, err = h.Alloc(4) // 4
	require.NoError(t, err)
	require.ErrorIs(t, h.Free(4, 8), ErrBadOffset, "4 is not aligned to an 8-byte page")

	require.NoError(t, h.Free(off, 4))
	requireValid(t, h)
}

// Test_Free_UncheckedMismatchCorrupts documents that without checks a wrong
// size silently breaks the invariants.
func Test_Free_UncheckedMismatchCorrupts(t *testing.T) {
	if debugChecks {
		t.Skip("heapdebug enables checks by default")
	}
	h := newTestHeap(t, nil)

	off, err := h.Alloc(4)
	require.NoError(t, err)
	require.NoError(t, h.Free(off, 8))

	require.ErrorIs(t, h.Verify(), ErrCorrupt)
}
