package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/fixheap/heap/alloc"
)

func init() {
	rootCmd.AddCommand(newStatsCmd())
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [script]",
		Short: "Show heap statistics",
		Long: `The stats command shows allocator counters and free-list occupancy,
after optionally running a workload script.

Example:
  heapctl stats workload.txt
  heapctl stats workload.txt --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args)
		},
	}
	return cmd
}

// HeapStats is the JSON form of the stats output.
type HeapStats struct {
	ArenaSize int                `json:"arena_size"`
	WordSize  int                `json:"word_size"`
	Classes   int                `json:"classes"`
	UsedBytes int                `json:"used_bytes"`
	FreeBytes int                `json:"free_bytes"`
	Counters  alloc.Stats        `json:"counters"`
	FreeLists []alloc.ClassUsage `json:"free_lists"`
}

func runStats(args []string) error {
	h, err := prepareHeap(args)
	if err != nil {
		return err
	}

	if jsonOut {
		cfg := h.Config()
		return printJSON(HeapStats{
			ArenaSize: cfg.ArenaSize,
			WordSize:  cfg.WordSize,
			Classes:   cfg.Classes,
			UsedBytes: h.UsedWords() * cfg.WordSize,
			FreeBytes: h.FreeBytes(),
			Counters:  h.Stats(),
			FreeLists: h.FreeLists(),
		})
	}

	if quiet {
		return nil
	}
	return h.WriteStats(os.Stdout)
}
