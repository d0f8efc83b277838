package alloc

import "errors"

var (
	// ErrExhausted indicates that no free page large enough exists, even after reclaiming.
	ErrExhausted = errors.New("alloc: heap exhausted")

	// ErrBadSize indicates a request size smaller than one byte.
	ErrBadSize = errors.New("alloc: size must be >= 1 byte")

	// ErrBadOffset indicates an offset outside the arena or off its page alignment.
	ErrBadOffset = errors.New("alloc: bad offset")

	// ErrNotAllocated indicates a free of a page that is not fully allocated
	// (double free, or a size resolving to the wrong class).
	ErrNotAllocated = errors.New("alloc: page not allocated")

	// ErrBadConfig indicates an arena/word/class combination that cannot be laid out.
	ErrBadConfig = errors.New("alloc: bad config")

	// ErrCorrupt indicates free-list or bitmap state that breaks a heap invariant.
	ErrCorrupt = errors.New("alloc: heap corrupt")
)
