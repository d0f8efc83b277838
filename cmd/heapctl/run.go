package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newRunCmd())
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Run a workload script against a fresh heap",
		Long: `The run command executes a workload script against a freshly
initialized heap and prints the outcome of every operation.

Script lines:
  alloc <size> [name]   allocate (sizes accept units, e.g. 4KiB)
  free <name>           free a named allocation
  reclaim               rebuild free lists from the usage bitmap
  verify                check heap invariants (fails the run on error)
  reset                 discard every allocation

Example:
  heapctl run workload.txt
  heapctl run - < workload.txt
  heapctl run workload.txt --arena 32KiB --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(args)
		},
	}
	return cmd
}

// RunReport is the JSON form of a run.
type RunReport struct {
	Steps     []StepResult `json:"steps"`
	UsedBytes int          `json:"used_bytes"`
	FreeBytes int          `json:"free_bytes"`
	Live      int          `json:"live"`
}

func runRun(args []string) error {
	ops, err := loadScript(args[0])
	if err != nil {
		return err
	}
	h, err := newHeap()
	if err != nil {
		return err
	}

	printVerbose("Running %d operations on a %s heap\n", len(ops), formatBytes(h.Config().ArenaSize))

	r := newRunner(h)
	steps, runErr := r.runAll(ops)

	report := RunReport{
		Steps:     steps,
		UsedBytes: h.UsedWords() * h.Config().WordSize,
		FreeBytes: h.FreeBytes(),
		Live:      len(r.live),
	}
	if jsonOut {
		if err := printJSON(report); err != nil {
			return err
		}
		return runErr
	}

	for _, s := range steps {
		printInfo("%4d  %s\n", s.Line, describeStep(s))
	}
	printInfo("\nLive allocations: %d\n", report.Live)
	printInfo("Used: %s  Free: %s\n", formatBytes(report.UsedBytes), formatBytes(report.FreeBytes))
	return runErr
}

func describeStep(s StepResult) string {
	var what string
	switch s.Op {
	case string(opAlloc):
		what = fmt.Sprintf("alloc %d %s", s.Size, s.Name)
	case string(opFree):
		what = fmt.Sprintf("free %s", s.Name)
	default:
		what = s.Op
	}

	switch {
	case s.Error != "":
		return fmt.Sprintf("%-24s -> error: %s", what, s.Error)
	case s.Op == string(opAlloc):
		return fmt.Sprintf("%-24s -> 0x%04x (%d B page)", what, *s.Offset, s.PageSize)
	case s.Op == string(opFree):
		return fmt.Sprintf("%-24s -> freed 0x%04x", what, *s.Offset)
	default:
		return fmt.Sprintf("%-24s -> ok", what)
	}
}
