package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	logLevel   string
	configFile string
	preset     string

	speed        string
	historyLimit int
	size         int
	maxValue     int
	seed         uint64
	array        []int
	target       int
	layout       []string
	rows         int
	cols         int
	heuristic    string
	tree         []int
	theme        string

	format     string
	outputFile string
	chartWidth int
	addr       string
)

// main registers commands and flags, opens the interactive menu when no
// subcommand is given and exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:               "algoviz",
		Short:             "step by step algorithm playback",
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
		RunE:              runMenu,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	playCmd := &cobra.Command{
		Use:   "play [family] [algorithm]",
		Short: "play an algorithm in the terminal",
		Args:  cobra.MaximumNArgs(2),
		RunE:  runPlay,
	}
	inputFlags(playCmd)
	playCmd.Flags().StringVar(&theme, "theme", "", "starting theme")

	traceCmd := &cobra.Command{
		Use:   "trace [family] [algorithm]",
		Short: "print or export every step of a run",
		Args:  cobra.MaximumNArgs(2),
		RunE:  runTrace,
	}
	inputFlags(traceCmd)
	traceCmd.Flags().StringVar(&format, "format", "text", "output format (text, json, csv)")
	traceCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write to file instead of stdout")

	compareCmd := &cobra.Command{
		Use:   "compare [family] [algorithm1] [algorithm2] ...",
		Short: "run algorithms side by side on the same input",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCompare,
	}
	inputFlags(compareCmd)
	compareCmd.Flags().IntVar(&chartWidth, "width", 70, "chart width")

	benchCmd := &cobra.Command{
		Use:   "bench [scenario.yaml]",
		Short: "run a comparison scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&chartWidth, "width", 70, "chart width")

	listCmd := &cobra.Command{
		Use:   "list [family]",
		Short: "list algorithms",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listAlgorithms,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [family]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the HTTP API and websocket playback",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address")
	serveCmd.Flags().StringVar(&speed, "speed", "", "default step interval for sessions")
	serveCmd.Flags().IntVar(&historyLimit, "history", 0, "history entries kept per session, 0 keeps all")

	rootCmd.AddCommand(playCmd, traceCmd, compareCmd, benchCmd, listCmd, presetsCmd, serveCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func inputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&preset, "preset", "", "use preset input")
	f.StringVar(&speed, "speed", "", "step interval, e.g. 50ms")
	f.IntVar(&historyLimit, "history", 0, "history entries kept, 0 keeps all")
	f.IntVar(&size, "size", 0, "random array length")
	f.IntVar(&maxValue, "max", 0, "largest random value")
	f.Uint64Var(&seed, "seed", 0, "random seed")
	f.IntSliceVar(&array, "array", nil, "explicit array, e.g. 5,3,8")
	f.IntVar(&target, "target", 0, "search target")
	f.StringArrayVar(&layout, "row", nil, "grid row, repeat once per row (S start, E end, # wall, ~ mud)")
	f.IntVar(&rows, "rows", 0, "open grid rows")
	f.IntVar(&cols, "cols", 0, "open grid columns")
	f.StringVar(&heuristic, "heuristic", "", "heuristic for astar and greedy (manhattan, euclidean)")
	f.IntSliceVar(&tree, "tree", nil, "tree values in insertion order")
}
