package alloc

import "fmt"

// Alloc returns the offset of a page of at least size bytes. The page comes
// from the smallest class that holds size; a larger free page is halved down
// to that class when needed. If no list can serve the request, the heap is
// reclaimed once and the search retried once before ErrExhausted is returned.
// Requests larger than the largest page fail with ErrExhausted directly.
func (h *Heap) Alloc(size int) (Offset, error) {
	h.stats.AllocCalls++

	if size < 1 {
		return End, fmt.Errorf("%w: got %d", ErrBadSize, size)
	}

	target, ok := h.ClassFor(size)
	if !ok {
		h.stats.Exhaustions++
		return End, fmt.Errorf("%w: %d bytes exceeds largest page of %d bytes",
			ErrExhausted, size, h.pageSizes[h.topClass()])
	}

	source := h.findSource(target)
	if source < 0 {
		h.log.Warn("heap exhausted, reclaiming", "size", size, "class", target)
		h.Reclaim()

		source = h.findSource(target)
		if source < 0 {
			h.stats.Exhaustions++
			h.log.Debug("reclaim freed nothing usable", "size", size, "class", target,
				"free_bytes", h.FreeBytes())
			return End, fmt.Errorf("%w: no free page of %d bytes after reclaim",
				ErrExhausted, h.pageSizes[target])
		}
		h.stats.AllocAfterReclaim++
	}

	off := h.split(source, target)
	h.stats.BytesAllocated += int64(h.pageSizes[target])

	if logAlloc {
		h.log.Debug("alloc", "size", size, "class", target, "source", source, "off", off)
	}
	return off, nil
}

// findSource returns the smallest class >= target with a free page, or -1.
func (h *Heap) findSource(target int) int {
	for c := target; c < len(h.heads); c++ {
		if h.heads[c] != End {
			return c
		}
	}
	return -1
}

// split halves the head page of source until a target-class page exists,
// then takes that page and marks its words allocated. Each halving leaves
// the low half at the head of the next class down and the high half behind
// it; classes between target and source are empty on entry.
func (h *Heap) split(source, target int) Offset {
	for ; source > target; source-- {
		low := h.pop(source)
		high := low + h.pageSizes[source]/2
		h.push(source-1, high)
		h.push(source-1, low)
		h.stats.Splits++
	}

	off := h.pop(target)
	h.markPage(off, h.pageSizes[target], true)
	return off
}
