package alloc

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Runtime allocation logging - controlled by HEAP_LOG_ALLOC env var.
var logAlloc = os.Getenv("HEAP_LOG_ALLOC") != ""

// assertAligned panics on an offset that is not word aligned when built
// with heapdebug. Release builds let it alias to the enclosing word.
func assertAligned(off Offset, shift uint) {
	if debugChecks && off&(1<<shift-1) != 0 {
		panic(fmt.Sprintf("alloc: offset %d is not aligned to %d-byte word", off, 1<<shift))
	}
}

// defaultLogger discards everything unless HEAP_LOG_ALLOC is set, in which
// case debug records go to stderr.
func defaultLogger() *slog.Logger {
	if logAlloc {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
