package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/fixheap/heap/alloc"
)

var layoutReclaim bool

func init() {
	cmd := newLayoutCmd()
	cmd.Flags().BoolVar(&layoutReclaim, "reclaim", false, "Reclaim before printing")
	rootCmd.AddCommand(cmd)
}

func newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout [script]",
		Short: "Show the free lists per size class",
		Long: `The layout command prints every non-empty free list, head first,
after optionally running a workload script.

Example:
  heapctl layout
  heapctl layout workload.txt --reclaim
  heapctl layout workload.txt --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(args)
		},
	}
	return cmd
}

// ClassLayout is one free list in the layout output.
type ClassLayout struct {
	Class    int            `json:"class"`
	PageSize int            `json:"page_size"`
	Pages    []alloc.Offset `json:"pages"`
}

// prepareHeap builds a heap and runs the optional script in args.
func prepareHeap(args []string) (*alloc.Heap, error) {
	h, err := newHeap()
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return h, nil
	}

	ops, err := loadScript(args[0])
	if err != nil {
		return nil, err
	}
	steps, err := newRunner(h).runAll(ops)
	for _, s := range steps {
		if s.Error != "" {
			printVerbose("line %d: %s\n", s.Line, s.Error)
		}
	}
	return h, err
}

func collectLayout(h *alloc.Heap) []ClassLayout {
	var out []ClassLayout
	for c := range h.NumClasses() {
		pages := h.FreeList(c)
		if len(pages) == 0 {
			continue
		}
		out = append(out, ClassLayout{Class: c, PageSize: h.PageSize(c), Pages: pages})
	}
	return out
}

func runLayout(args []string) error {
	h, err := prepareHeap(args)
	if err != nil {
		return err
	}
	if layoutReclaim {
		h.Reclaim()
	}

	layout := collectLayout(h)
	if jsonOut {
		return printJSON(layout)
	}

	if len(layout) == 0 {
		printInfo("No free pages\n")
		return nil
	}

	const maxShown = 16
	for _, cl := range layout {
		shown := cl.Pages
		if len(shown) > maxShown && !verbose {
			shown = shown[:maxShown]
		}
		offs := make([]string, len(shown))
		for i, off := range shown {
			offs[i] = fmt.Sprintf("0x%04x", off)
		}
		more := ""
		if len(shown) < len(cl.Pages) {
			more = fmt.Sprintf(" ... (%d more)", len(cl.Pages)-len(shown))
		}
		printInfo("class %2d %8s: %d pages [%s]%s\n",
			cl.Class, formatBytes(cl.PageSize), len(cl.Pages), strings.Join(offs, " "), more)
	}
	return nil
}
