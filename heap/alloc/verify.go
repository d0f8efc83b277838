package alloc

import (
	"fmt"

	kbitmap "github.com/kelindar/bitmap"
)

// Verify checks the heap invariants:
//   - every listed page lies in the arena and is aligned to its class size
//   - every word of a listed page is marked free
//   - no word is on more than one list, or twice on the same list
//   - every free word is on some list
//
// It returns an error wrapping ErrCorrupt describing the first violation.
func (h *Heap) Verify() error {
	listed := make(kbitmap.Bitmap, len(h.used.bits))
	w := h.wordSize()

	for c, ps := range h.pageSizes {
		steps := 0
		for off := h.heads[c]; off != End; off = h.link(off) {
			steps++
			if steps > h.used.words {
				return fmt.Errorf("%w: class %d list does not terminate", ErrCorrupt, c)
			}
			if !h.inArena(off, int(ps)) || off%ps != 0 {
				return fmt.Errorf("%w: class %d page at %d is out of bounds or misaligned",
					ErrCorrupt, c, off)
			}
			for p := off; p < off+ps; p += w {
				word := uint32(p / w)
				if h.used.isUsed(p) {
					return fmt.Errorf("%w: class %d page at %d holds allocated word %d",
						ErrCorrupt, c, off, word)
				}
				if listed.Contains(word) {
					return fmt.Errorf("%w: word %d listed twice (class %d page at %d)",
						ErrCorrupt, word, c, off)
				}
				listed.Set(word)
			}
		}
	}

	for i := range h.used.words {
		if !h.used.wordUsed(i) && !listed.Contains(uint32(i)) {
			return fmt.Errorf("%w: free word %d is on no list", ErrCorrupt, i)
		}
	}
	return nil
}
