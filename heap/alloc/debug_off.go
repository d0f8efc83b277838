//go:build !heapdebug

package alloc

// debugChecks enables precondition assertions (heapdebug build tag).
const debugChecks = false
