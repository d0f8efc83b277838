package alloc

// Reclaim rebuilds every free list from the usage bitmap. Each run of
// consecutive free words is handed out as the fewest, largest class-aligned
// pages that fit it; runs are cut at the largest page length. Allocated
// words and the bitmap itself are left untouched.
func (h *Heap) Reclaim() {
	h.stats.Reclaims++

	for i := range h.heads {
		h.heads[i] = End
	}

	words := h.used.words
	maxRun := h.pageWords(h.topClass())
	start, run := 0, 0
	for i := range words {
		used := h.used.wordUsed(i)
		last := i == words-1

		if last || used || run == maxRun {
			if last && !used {
				run++
			}
			h.donate(start, run)
			run = 0
			if used {
				start = i + 1
			} else {
				start = i
			}
		}

		if !used {
			run++
		}
	}

	if logAlloc {
		h.log.Debug("reclaim", "free_bytes", h.FreeBytes())
	}
}

// donate pushes the free run of length words starting at word index onto
// the lists, always taking the largest class whose page fits the remaining
// run and whose alignment index satisfies.
func (h *Heap) donate(index, length int) {
	for length > 0 {
		c := h.topClass()
		for ; c > 0; c-- {
			pw := h.pageWords(c)
			if index%pw == 0 && length >= pw {
				break
			}
		}

		h.push(c, Offset(index)*h.wordSize())
		index += h.pageWords(c)
		length -= h.pageWords(c)
	}
}
