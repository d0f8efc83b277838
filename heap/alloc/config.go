package alloc

import (
	"fmt"
	"math"
	"math/bits"
)

// linkSize is the width of an intrusive link stored in a free page.
const linkSize = 4

// Config describes the arena layout.
type Config struct {
	// ArenaSize is the arena capacity in bytes.
	ArenaSize int

	// WordSize is the smallest page size and the bitmap granularity.
	// It must hold a link, so at least 4 bytes.
	WordSize int

	// Classes is the number of power-of-two size classes. Page sizes run
	// from WordSize to WordSize<<(Classes-1). Zero derives the count so the
	// largest page is half the arena.
	Classes int
}

// Predefined layouts.
var (
	// DefaultConfig is a 16 KiB arena with pages from 4 bytes to 8 KiB.
	DefaultConfig = Config{ArenaSize: 16384, WordSize: 4, Classes: 12}

	// Config32K is a 32 KiB arena with pages from 4 bytes to 16 KiB.
	Config32K = Config{ArenaSize: 32768, WordSize: 4, Classes: 13}
)

func isPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// normalize validates c and fills in a derived class count.
func (c Config) normalize() (Config, error) {
	if c.WordSize < linkSize || !isPow2(c.WordSize) {
		return c, fmt.Errorf("%w: word size %d must be a power of two >= %d",
			ErrBadConfig, c.WordSize, linkSize)
	}
	if c.ArenaSize <= 0 || c.ArenaSize > math.MaxInt32 {
		return c, fmt.Errorf("%w: arena size %d out of range", ErrBadConfig, c.ArenaSize)
	}
	if c.ArenaSize%c.WordSize != 0 {
		return c, fmt.Errorf("%w: arena size %d is not a multiple of word size %d",
			ErrBadConfig, c.ArenaSize, c.WordSize)
	}

	if c.Classes == 0 {
		words := c.ArenaSize / c.WordSize
		if !isPow2(words) || words < 2 {
			return c, fmt.Errorf("%w: cannot derive classes for arena %d / word %d",
				ErrBadConfig, c.ArenaSize, c.WordSize)
		}
		c.Classes = bits.TrailingZeros(uint(words))
	}
	if c.Classes < 1 || c.Classes > 31 {
		return c, fmt.Errorf("%w: class count %d out of range", ErrBadConfig, c.Classes)
	}

	maxPage := c.WordSize << (c.Classes - 1)
	if maxPage <= 0 || maxPage > c.ArenaSize {
		return c, fmt.Errorf("%w: largest page %d exceeds arena size %d",
			ErrBadConfig, maxPage, c.ArenaSize)
	}
	if c.ArenaSize%maxPage != 0 {
		return c, fmt.Errorf("%w: arena size %d is not a multiple of largest page %d",
			ErrBadConfig, c.ArenaSize, maxPage)
	}
	return c, nil
}

// pageSizes returns the byte size of every class, smallest first.
func (c Config) pageSizes() []int32 {
	sizes := make([]int32, c.Classes)
	for i := range sizes {
		sizes[i] = int32(c.WordSize << i)
	}
	return sizes
}
