package alloc

import (
	"math/bits"

	kbitmap "github.com/kelindar/bitmap"
)

// usageBitmap keeps one bit per arena word: 1 = allocated, 0 = free.
type usageBitmap struct {
	bits  kbitmap.Bitmap
	words int
	shift uint // log2(word size)
}

func newUsageBitmap(arenaSize, wordSize int) usageBitmap {
	words := arenaSize / wordSize
	return usageBitmap{
		bits:  make(kbitmap.Bitmap, (words+63)>>6),
		words: words,
		shift: uint(bits.TrailingZeros(uint(wordSize))),
	}
}

// reset marks every word free.
func (b *usageBitmap) reset() {
	clear(b.bits)
}

// markUsed flags the word holding off as allocated. An unaligned off
// aliases to its enclosing word.
func (b *usageBitmap) markUsed(off Offset) {
	assertAligned(off, b.shift)
	b.bits.Set(uint32(off) >> b.shift)
}

// markFree flags the word holding off as free.
func (b *usageBitmap) markFree(off Offset) {
	assertAligned(off, b.shift)
	b.bits.Remove(uint32(off) >> b.shift)
}

// isUsed reports whether the word holding off is allocated.
func (b *usageBitmap) isUsed(off Offset) bool {
	assertAligned(off, b.shift)
	return b.bits.Contains(uint32(off) >> b.shift)
}

// wordUsed is isUsed by word index.
func (b *usageBitmap) wordUsed(i int) bool {
	return b.bits.Contains(uint32(i))
}

// count returns the number of allocated words.
func (b *usageBitmap) count() int {
	return b.bits.Count()
}
