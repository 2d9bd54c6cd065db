package main

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/algoviz/internal/catalog"
	"github.com/san-kum/algoviz/internal/compare"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/export"
	"github.com/san-kum/algoviz/internal/grid"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/server"
	"github.com/san-kum/algoviz/internal/step"
	"github.com/san-kum/algoviz/internal/viz"
)

const chartHeight = 12

func setupLogging(cmd *cobra.Command, args []string) error {
	level := logLevel
	if level == "" && configFile != "" {
		if cfg, err := config.Load(configFile); err == nil {
			level = cfg.LogLevel
		}
	}
	if level == "" {
		level = config.DefaultLogLevel
	}
	lvl, err := config.ParseLevel(level)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

// resolveConfig layers the sources: defaults, then --preset, then
// --config, then positional arguments and flags.
func resolveConfig(cmd *cobra.Command, args []string, reg *catalog.Registry) (*config.Config, error) {
	cfg := config.DefaultConfig()
	family := catalog.Family(cfg.Family)
	if len(args) > 0 {
		f, err := catalog.ParseFamily(args[0])
		if err != nil {
			return nil, err
		}
		family = f
	}
	if preset != "" {
		p := config.GetPreset(string(family), preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(string(family)))
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if len(args) > 0 {
		cfg.Family = string(family)
		if len(args) > 1 {
			cfg.Algorithm = args[1]
		} else if _, err := reg.Lookup(family, catalog.Name(cfg.Algorithm)); err != nil {
			cfg.Algorithm = string(reg.List(family)[0].Name)
		}
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	if f.Changed("speed") {
		d, err := time.ParseDuration(speed)
		if err != nil {
			return fmt.Errorf("invalid speed: %w", err)
		}
		cfg.Playback.Speed = d
	}
	if f.Changed("history") {
		cfg.Playback.HistoryLimit = historyLimit
	}
	if f.Changed("size") {
		cfg.Size, cfg.Array = size, nil
	}
	if f.Changed("max") {
		cfg.Max, cfg.Array = maxValue, nil
	}
	if f.Changed("seed") {
		cfg.Seed, cfg.Array = seed, nil
	}
	if f.Changed("array") {
		cfg.Array = array
	}
	if f.Changed("target") {
		cfg.Target = target
	}
	if f.Changed("rows") || f.Changed("cols") {
		cfg.Grid.Layout = nil
		if f.Changed("rows") {
			cfg.Grid.Rows = rows
		}
		if f.Changed("cols") {
			cfg.Grid.Cols = cols
		}
	}
	if f.Changed("row") {
		cfg.Grid.Layout = layout
	}
	if f.Changed("heuristic") {
		cfg.Grid.Heuristic = heuristic
	}
	if f.Changed("tree") {
		cfg.Tree = tree
	}
	return nil
}

func newController(cfg *config.Config) *playback.Controller {
	return playback.New(
		playback.WithSpeed(cfg.Playback.Speed),
		playback.WithHistoryLimit(cfg.Playback.HistoryLimit),
		playback.WithLogger(slog.Default().With("component", "playback")),
	)
}

func runMenu(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	return viz.RunInteractive(cmd.Context(), catalog.NewRegistry(), func() *playback.Controller {
		return newController(cfg)
	})
}

func runPlay(cmd *cobra.Command, args []string) error {
	reg := catalog.NewRegistry()
	cfg, err := resolveConfig(cmd, args, reg)
	if err != nil {
		return err
	}
	s, err := viz.NewSession(reg, cfg)
	if err != nil {
		return err
	}
	s.Theme = theme
	return viz.Play(cmd.Context(), newController(cfg), s)
}

func runTrace(cmd *cobra.Command, args []string) error {
	reg := catalog.NewRegistry()
	cfg, err := resolveConfig(cmd, args, reg)
	if err != nil {
		return err
	}
	family, _ := catalog.ParseFamily(cfg.Family)
	in, err := cfg.Input()
	if err != nil {
		return err
	}
	seq, entry, err := reg.New(family, catalog.Name(cfg.Algorithm), in)
	if err != nil {
		return err
	}

	ctrl := playback.New(
		playback.WithSpeed(0),
		playback.WithHistoryLimit(cfg.Playback.HistoryLimit),
		playback.WithLogger(slog.Default().With("component", "playback")),
	)
	res, err := ctrl.Run(cmd.Context(), step.Pull(seq))
	if err != nil {
		return err
	}
	t := export.Trace{
		Family:    string(family),
		Algorithm: string(entry.Name),
		Outcome:   res.Outcome,
		Steps:     res.Steps,
		Code:      entry.Trace,
		Metrics:   res.Metrics,
		Entries:   ctrl.History(),
	}

	if format == "text" {
		out := cmd.OutOrStdout()
		if outputFile != "" {
			file, err := os.Create(outputFile)
			if err != nil {
				return err
			}
			defer file.Close()
			out = file
		}
		return printTrace(out, entry, t)
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	if outputFile != "" {
		if err := export.WriteFile(outputFile, f, t); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d steps to %s\n", len(t.Entries), outputFile)
		return nil
	}
	return export.Write(cmd.OutOrStdout(), f, t)
}

func printTrace(out io.Writer, entry catalog.Entry, t export.Trace) error {
	fmt.Fprintf(out, "%s (%s)\n\n", entry.Title, entry.Family)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tLINE\tKIND\tCODE\tDETAIL")
	for _, e := range t.Entries {
		code := ""
		if l := e.Step.Line; l > 0 && l <= len(entry.Trace) {
			code = strings.TrimSpace(entry.Trace[l-1])
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n", e.Index, e.Step.Line, e.Step.Kind(), code, detail(e))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if n := len(t.Entries); n > 0 && t.Entries[n-1].Grid != nil {
		fmt.Fprintf(out, "\n%s", t.Entries[n-1].Grid)
	}
	fmt.Fprintf(out, "\noutcome: %s, steps: %d\n", t.Outcome, t.Steps)
	for _, name := range slices.Sorted(maps.Keys(t.Metrics)) {
		fmt.Fprintf(out, "  %s: %.0f\n", name, t.Metrics[name])
	}
	return nil
}

func detail(e playback.Entry) string {
	s := e.Step
	switch {
	case s.Found != nil:
		return fmt.Sprintf("found at %d", *s.Found)
	case s.Grid != nil:
		visited := s.Grid.Count(func(n grid.Node) bool { return n.IsVisited })
		path := s.Grid.Count(func(n grid.Node) bool { return n.IsPath })
		return fmt.Sprintf("visited %d, path %d", visited, path)
	case s.Array != nil:
		return fmt.Sprint(s.Array)
	case s.Node != nil:
		return fmt.Sprintf("visit %d", *s.Node)
	case len(s.Comparing) > 0:
		return fmt.Sprintf("compare %v", s.Comparing)
	}
	return ""
}

func runCompare(cmd *cobra.Command, args []string) error {
	reg := catalog.NewRegistry()
	family, err := catalog.ParseFamily(args[0])
	if err != nil {
		return err
	}
	var names []catalog.Name
	for _, a := range args[1:] {
		names = append(names, catalog.Name(a))
	}
	if len(names) == 0 {
		for _, e := range reg.List(family) {
			names = append(names, e.Name)
		}
	}

	cfgArgs := []string{string(family), string(names[0])}
	cfg, err := resolveConfig(cmd, cfgArgs, reg)
	if err != nil {
		return err
	}
	runs, err := compare.Compare(cmd.Context(), reg, family, names, cfg.Input)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, compare.Table(runs))
	if chart := compare.Chart(runs, chartWidth, chartHeight); chart != "" {
		fmt.Fprintln(out, chart)
	}
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	scenario, err := compare.LoadScenario(args[0])
	if err != nil {
		return err
	}
	if scenario.Name != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "scenario: %s\n", scenario.Name)
	}
	if scenario.Description != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", scenario.Description)
	}

	start := time.Now()
	results, err := compare.RunScenario(cmd.Context(), scenario, catalog.NewRegistry(), slog.Default().With("component", "bench"))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, r := range results {
		fmt.Fprintf(out, "\nstep %d: %s\n", i+1, r.Family)
		if len(r.Sweep) > 0 {
			fmt.Fprintln(out, compare.SweepTable(r.Sweep))
			if chart := compare.SweepChart(r.Sweep, chartWidth, chartHeight); chart != "" {
				fmt.Fprintln(out, chart)
			}
			continue
		}
		fmt.Fprintln(out, compare.Table(r.Runs))
		if chart := compare.Chart(r.Runs, chartWidth, chartHeight); chart != "" {
			fmt.Fprintln(out, chart)
		}
	}
	fmt.Fprintf(out, "\ncompleted in %v\n", time.Since(start).Round(time.Millisecond))
	return nil
}

func listAlgorithms(cmd *cobra.Command, args []string) error {
	reg := catalog.NewRegistry()
	families := catalog.Families()
	if len(args) > 0 {
		f, err := catalog.ParseFamily(args[0])
		if err != nil {
			return err
		}
		families = []catalog.Family{f}
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FAMILY\tNAME\tTITLE\tBEST\tAVERAGE\tWORST\tSPACE")
	for _, f := range families {
		for _, e := range reg.List(f) {
			c := e.Complexity
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", f, e.Name, e.Title, c.Best, c.Average, c.Worst, c.Space)
		}
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	families := catalog.Families()
	if len(args) > 0 {
		f, err := catalog.ParseFamily(args[0])
		if err != nil {
			return err
		}
		families = []catalog.Family{f}
	}

	out := cmd.OutOrStdout()
	for _, f := range families {
		presets := config.ListPresets(string(f))
		if len(presets) == 0 {
			fmt.Fprintf(out, "no presets for family: %s\n", f)
			continue
		}
		fmt.Fprintf(out, "presets for %s:\n", f)
		for _, p := range presets {
			cfg := config.GetPreset(string(f), p)
			fmt.Fprintf(out, "  %-12s %s\n", p, cfg.Algorithm)
		}
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.Server.Addr = addr
	}

	srv := server.New(catalog.NewRegistry(),
		server.WithLogger(slog.Default().With("component", "server")),
		server.WithPlayback(cfg.Playback.Speed, cfg.Playback.HistoryLimit),
	)
	return srv.ListenAndServe(cmd.Context(), cfg.Server.Addr)
}
