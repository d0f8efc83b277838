package alloc

import (
	"fmt"
	"io"
)

// Stats holds allocator counters since the last Reset.
type Stats struct {
	AllocCalls        int   // Total Alloc() calls
	AllocAfterReclaim int   // Allocations served only after an automatic reclaim
	Exhaustions       int   // Alloc() calls that returned ErrExhausted
	FreeCalls         int   // Total Free() calls
	Splits            int   // Page halvings
	Reclaims          int   // Reclaim passes, automatic or direct
	BytesAllocated    int64 // Page bytes handed out (padding included)
	BytesFreed        int64 // Page bytes returned
}

// Stats returns the current counters.
func (h *Heap) Stats() Stats {
	return h.stats
}

// ClassUsage summarizes one free list.
type ClassUsage struct {
	Class     int
	PageSize  int
	FreePages int
}

// FreeLists returns the length of every free list, smallest class first.
func (h *Heap) FreeLists() []ClassUsage {
	out := make([]ClassUsage, len(h.pageSizes))
	for c := range h.pageSizes {
		out[c] = ClassUsage{
			Class:     c,
			PageSize:  int(h.pageSizes[c]),
			FreePages: len(h.FreeList(c)),
		}
	}
	return out
}

// WriteStats prints counters and free-list occupancy to w.
func (h *Heap) WriteStats(w io.Writer) error {
	s := h.stats
	used := h.used.count() * h.cfg.WordSize

	lines := []string{
		"=== HEAP STATISTICS ===",
		fmt.Sprintf("Arena:              %d bytes (%d-byte words, %d classes)",
			h.cfg.ArenaSize, h.cfg.WordSize, h.cfg.Classes),
		fmt.Sprintf("In use:             %d bytes (%.1f%%)",
			used, 100.0*float64(used)/float64(h.cfg.ArenaSize)),
		fmt.Sprintf("Alloc calls:        %d (after reclaim: %d, exhausted: %d)",
			s.AllocCalls, s.AllocAfterReclaim, s.Exhaustions),
		fmt.Sprintf("Free calls:         %d", s.FreeCalls),
		fmt.Sprintf("Page splits:        %d", s.Splits),
		fmt.Sprintf("Reclaims:           %d", s.Reclaims),
		fmt.Sprintf("Bytes allocated:    %d", s.BytesAllocated),
		fmt.Sprintf("Bytes freed:        %d", s.BytesFreed),
		"",
		"Free lists:",
	}
	for _, cu := range h.FreeLists() {
		if cu.FreePages == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %6d B: %d pages", cu.PageSize, cu.FreePages))
	}
	lines = append(lines, "=======================")

	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
