package buf

import (
	"fmt"
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// CheckRange validates that n bytes starting at off fit in a buffer of
// length bufLen. Returns the end offset if valid.
func CheckRange(bufLen, off, n int) (int, error) {
	if off < 0 || n < 0 {
		return 0, fmt.Errorf("negative range: off=%d n=%d", off, n)
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok {
		return 0, fmt.Errorf("range overflow: off=%d n=%d", off, n)
	}
	if end > bufLen {
		return 0, fmt.Errorf("range [%d,%d) exceeds buffer length %d", off, end, bufLen)
	}
	return end, nil
}
