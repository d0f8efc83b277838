package alloc

import (
	"log/slog"

	"github.com/joshuapare/fixheap/internal/buf"
)

// Offset is a byte offset into the arena. Links stored inside free pages use
// the same representation.
type Offset = int32

// End terminates a free list.
const End Offset = -1

// Heap is a fixed-capacity allocator over one byte arena.
type Heap struct {
	cfg Config

	arena     []byte
	pageSizes []int32  // bytes per class, smallest first
	heads     []Offset // free-list head per class
	used      usageBitmap

	log    *slog.Logger
	checks bool

	stats Stats
}

// Option configures a Heap.
type Option func(*Heap)

// WithLogger sets the diagnostic logger. Allocation pressure is reported at
// Warn; per-operation records at Debug.
func WithLogger(l *slog.Logger) Option {
	return func(h *Heap) {
		if l != nil {
			h.log = l
		}
	}
}

// WithChecks enables precondition checks on Free that need a bitmap scan.
func WithChecks(on bool) Option {
	return func(h *Heap) {
		h.checks = on
	}
}

// New creates a heap with the given layout and initializes it.
//
// Parameters:
//   - cfg: arena layout (use nil for DefaultConfig)
//   - opts: logging and checking options
func New(cfg *Config, opts ...Option) (*Heap, error) {
	if cfg == nil {
		cfg = &DefaultConfig
	}
	c, err := cfg.normalize()
	if err != nil {
		return nil, err
	}

	h := &Heap{
		cfg:       c,
		arena:     make([]byte, c.ArenaSize),
		pageSizes: c.pageSizes(),
		heads:     make([]Offset, c.Classes),
		used:      newUsageBitmap(c.ArenaSize, c.WordSize),
		log:       defaultLogger(),
		checks:    debugChecks,
	}
	for _, opt := range opts {
		opt(h)
	}

	h.Reset()
	return h, nil
}

// Reset returns the heap to its initial state: a zeroed arena, an all-free
// bitmap, and one list of largest-class pages covering the arena in
// ascending order. Every outstanding allocation is invalidated.
func (h *Heap) Reset() {
	clear(h.arena)
	for i := range h.heads {
		h.heads[i] = End
	}
	h.used.reset()
	h.stats = Stats{}

	top := h.topClass()
	maxPage := h.pageSizes[top]
	next := End
	for off := Offset(len(h.arena)) - maxPage; off >= 0; off -= maxPage {
		h.setLink(off, next)
		next = off
	}
	h.heads[top] = next
}

// Config returns the normalized layout.
func (h *Heap) Config() Config {
	return h.cfg
}

// NumClasses returns the number of size classes.
func (h *Heap) NumClasses() int {
	return len(h.pageSizes)
}

// PageSize returns the byte size of pages in class.
func (h *Heap) PageSize(class int) int {
	return int(h.pageSizes[class])
}

// ClassFor returns the smallest class whose pages hold size bytes.
// ok is false when size exceeds the largest page.
func (h *Heap) ClassFor(size int) (class int, ok bool) {
	for c, ps := range h.pageSizes {
		if int(ps) >= size {
			return c, true
		}
	}
	return h.topClass(), false
}

// IsUsed reports whether the word holding off is allocated.
func (h *Heap) IsUsed(off Offset) bool {
	return h.used.isUsed(off)
}

// UsedWords returns the number of allocated words.
func (h *Heap) UsedWords() int {
	return h.used.count()
}

// FreeBytes returns the number of bytes in free words.
func (h *Heap) FreeBytes() int {
	return (h.used.words - h.used.count()) * h.cfg.WordSize
}

// Bytes returns the size bytes starting at off. The slice aliases the arena;
// its capacity is clipped so appends cannot spill into neighbouring pages.
// It returns nil when the range falls outside the arena.
func (h *Heap) Bytes(off Offset, size int) []byte {
	end, err := buf.CheckRange(len(h.arena), int(off), size)
	if err != nil {
		return nil
	}
	return h.arena[off:end:end]
}

// Image returns the whole arena, links and padding included. Callers must
// not modify it.
func (h *Heap) Image() []byte {
	return h.arena
}

// FreeList returns the offsets on class's free list, head first. A list
// longer than the arena has words (only possible after corruption) is cut.
func (h *Heap) FreeList(class int) []Offset {
	var out []Offset
	for off := h.heads[class]; off != End && len(out) <= h.used.words; off = h.link(off) {
		out = append(out, off)
		if !h.inArena(off, linkSize) {
			break
		}
	}
	return out
}

func (h *Heap) topClass() int {
	return len(h.pageSizes) - 1
}

func (h *Heap) wordSize() Offset {
	return Offset(h.cfg.WordSize)
}

// pageWords returns the number of bitmap words in a class page.
func (h *Heap) pageWords(class int) int {
	return 1 << class
}

func (h *Heap) inArena(off Offset, n int) bool {
	_, err := buf.CheckRange(len(h.arena), int(off), n)
	return err == nil
}

// link reads the next-page offset stored in the free page at off.
func (h *Heap) link(off Offset) Offset {
	return buf.ReadI32(h.arena, int(off))
}

func (h *Heap) setLink(off, next Offset) {
	buf.PutI32(h.arena, int(off), next)
}

// push prepends the page at off to class's list.
func (h *Heap) push(class int, off Offset) {
	h.setLink(off, h.heads[class])
	h.heads[class] = off
}

// pop unlinks and returns the head of class's list. The list must not be empty.
func (h *Heap) pop(class int) Offset {
	off := h.heads[class]
	h.heads[class] = h.link(off)
	return off
}

// markPage sets every bitmap word of the size-byte page at off.
func (h *Heap) markPage(off Offset, size int32, used bool) {
	w := h.wordSize()
	for p := off; p < off+size; p += w {
		if used {
			h.used.markUsed(p)
		} else {
			h.used.markFree(p)
		}
	}
}
