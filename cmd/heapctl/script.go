package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/joshuapare/fixheap/heap/alloc"
)

// Workload scripts hold one operation per line:
//
//	alloc <size> [name]   allocate; size accepts units (4KiB)
//	free <name>           free a named allocation with its original size
//	reclaim               rebuild the free lists from the bitmap
//	verify                check heap invariants
//	reset                 discard every allocation
//
// Blank lines and lines starting with '#' are ignored.

type opKind string

const (
	opAlloc   opKind = "alloc"
	opFree    opKind = "free"
	opReclaim opKind = "reclaim"
	opVerify  opKind = "verify"
	opReset   opKind = "reset"
)

type op struct {
	Line int
	Kind opKind
	Size int
	Name string
}

// parseScript reads a workload script.
func parseScript(r io.Reader) ([]op, error) {
	var ops []op
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		o := op{Line: line, Kind: opKind(strings.ToLower(fields[0]))}
		args := fields[1:]

		switch o.Kind {
		case opAlloc:
			if len(args) < 1 || len(args) > 2 {
				return nil, fmt.Errorf("line %d: usage: alloc <size> [name]", line)
			}
			size, err := humanize.ParseBytes(args[0])
			if err != nil {
				return nil, fmt.Errorf("line %d: bad size %q: %w", line, args[0], err)
			}
			o.Size = int(size)
			if len(args) == 2 {
				o.Name = args[1]
			}
		case opFree:
			if len(args) != 1 {
				return nil, fmt.Errorf("line %d: usage: free <name>", line)
			}
			o.Name = args[0]
		case opReclaim, opVerify, opReset:
			if len(args) != 0 {
				return nil, fmt.Errorf("line %d: %s takes no arguments", line, o.Kind)
			}
		default:
			return nil, fmt.Errorf("line %d: unknown operation %q", line, fields[0])
		}
		ops = append(ops, o)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ops, nil
}

// loadScript parses the script at path; "-" reads stdin.
func loadScript(path string) ([]op, error) {
	if path == "-" {
		return parseScript(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()
	return parseScript(f)
}

type allocation struct {
	Off  alloc.Offset
	Size int
}

// StepResult records the outcome of one operation.
type StepResult struct {
	Line     int    `json:"line"`
	Op       string `json:"op"`
	Name     string `json:"name,omitempty"`
	Size     int    `json:"size,omitempty"`
	Offset   *int32 `json:"offset,omitempty"`
	PageSize int    `json:"page_size,omitempty"`
	Error    string `json:"error,omitempty"`
}

// runner applies operations to a heap and remembers named allocations.
type runner struct {
	h    *alloc.Heap
	live map[string]allocation
	seq  int
}

func newRunner(h *alloc.Heap) *runner {
	return &runner{h: h, live: make(map[string]allocation)}
}

// errVerify marks a failed verify step.
var errVerify = errors.New("heap verification failed")

// exec applies o. Allocation exhaustion and bad frees are reported in the
// result; only a failed verify returns an error.
func (r *runner) exec(o op) (StepResult, error) {
	res := StepResult{Line: o.Line, Op: string(o.Kind), Name: o.Name, Size: o.Size}

	switch o.Kind {
	case opAlloc:
		r.seq++
		if res.Name == "" {
			res.Name = fmt.Sprintf("@%d", r.seq)
		}
		if _, taken := r.live[res.Name]; taken {
			res.Error = fmt.Sprintf("name %q is already live", res.Name)
			break
		}
		off, err := r.h.Alloc(o.Size)
		if err != nil {
			res.Error = err.Error()
			break
		}
		class, _ := r.h.ClassFor(o.Size)
		res.Offset = &off
		res.PageSize = r.h.PageSize(class)
		r.live[res.Name] = allocation{Off: off, Size: o.Size}

	case opFree:
		a, ok := r.live[o.Name]
		if !ok {
			res.Error = fmt.Sprintf("no live allocation named %q", o.Name)
			break
		}
		res.Size = a.Size
		res.Offset = &a.Off
		if err := r.h.Free(a.Off, a.Size); err != nil {
			res.Error = err.Error()
			break
		}
		delete(r.live, o.Name)

	case opReclaim:
		r.h.Reclaim()

	case opVerify:
		if err := r.h.Verify(); err != nil {
			res.Error = err.Error()
			return res, fmt.Errorf("line %d: %w: %w", o.Line, errVerify, err)
		}

	case opReset:
		r.h.Reset()
		clear(r.live)
	}
	return res, nil
}

// runAll applies ops in order and stops at the first failed verify.
func (r *runner) runAll(ops []op) ([]StepResult, error) {
	results := make([]StepResult, 0, len(ops))
	for _, o := range ops {
		res, err := r.exec(o)
		results = append(results, res)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
