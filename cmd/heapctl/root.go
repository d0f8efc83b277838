package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/fixheap/cmd/heapctl/logger"
	"github.com/joshuapare/fixheap/heap/alloc"
)

var (
	// Global flags
	verbose  bool
	quiet    bool
	jsonOut  bool
	noColor  bool
	arenaArg string
	wordSize int
	classes  int
	checks   bool
	logLevel string
	logJSON  bool
)

var rootCmd = &cobra.Command{
	Use:   "heapctl",
	Short: "Exercise and inspect a fixed-capacity page heap",
	Long: `heapctl builds a fixed-capacity heap (power-of-two size classes,
intrusive free lists, usage bitmap) and runs allocation workloads against it,
printing the resulting free lists and statistics.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.PersistentFlags().StringVar(&arenaArg, "arena", "16KiB", "Arena size (e.g. 16384, 16KiB, 32KiB)")
	rootCmd.PersistentFlags().IntVar(&wordSize, "word", 4, "Word size in bytes")
	rootCmd.PersistentFlags().
		IntVar(&classes, "classes", 0, "Number of size classes (0 = largest page is half the arena)")
	rootCmd.PersistentFlags().BoolVar(&checks, "checks", false, "Reject detectable double frees and size mismatches")

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Diagnostic log level")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Use JSON diagnostic logs")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newHeap builds a heap from the global flags.
func newHeap() (*alloc.Heap, error) {
	arena, err := humanize.ParseBytes(arenaArg)
	if err != nil {
		return nil, fmt.Errorf("invalid --arena %q: %w", arenaArg, err)
	}
	level, err := logger.ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
	}

	l := logger.New(logger.Options{
		Enabled: !quiet,
		Level:   level,
		JSON:    logJSON,
		NoColor: noColor,
	})

	cfg := alloc.Config{ArenaSize: int(arena), WordSize: wordSize, Classes: classes}
	return alloc.New(&cfg, alloc.WithLogger(l), alloc.WithChecks(checks))
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// formatBytes renders a byte count with binary units.
func formatBytes(n int) string {
	return humanize.IBytes(uint64(n))
}
