package alloc

import "fmt"

// Free returns the page at off to the free list of the class resolved from
// size. size must resolve to the class the page was allocated from, which
// holds when it equals the size passed to Alloc. The heap keeps no size
// record of its own, so a mismatch goes unnoticed unless checks are enabled.
//
// A size larger than every page resolves to the largest class.
func (h *Heap) Free(off Offset, size int) error {
	h.stats.FreeCalls++

	if size < 1 {
		return fmt.Errorf("%w: got %d", ErrBadSize, size)
	}
	if off < 0 || off%h.wordSize() != 0 {
		return fmt.Errorf("%w: %d is not a word-aligned arena offset", ErrBadOffset, off)
	}

	class, _ := h.ClassFor(size)
	ps := h.pageSizes[class]
	if !h.inArena(off, int(ps)) {
		return fmt.Errorf("%w: %d-byte page at %d runs past the arena", ErrBadOffset, ps, off)
	}

	if h.checks {
		if err := h.checkAllocated(off, class); err != nil {
			return err
		}
	}

	h.setLink(off, h.heads[class])
	h.markPage(off, ps, false)
	h.heads[class] = off

	h.stats.BytesFreed += int64(ps)
	if logAlloc {
		h.log.Debug("free", "off", off, "size", size, "class", class)
	}
	return nil
}

// checkAllocated verifies that the class page at off is aligned and that
// every one of its words is marked allocated.
func (h *Heap) checkAllocated(off Offset, class int) error {
	ps := h.pageSizes[class]
	if off%ps != 0 {
		return fmt.Errorf("%w: %d is not aligned to a %d-byte page", ErrBadOffset, off, ps)
	}
	w := h.wordSize()
	for p := off; p < off+ps; p += w {
		if !h.used.isUsed(p) {
			return fmt.Errorf("%w: word at %d of %d-byte page at %d is free",
				ErrNotAllocated, p, ps, off)
		}
	}
	return nil
}
