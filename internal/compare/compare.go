// Package compare runs several algorithms over the same input without a
// viewer attached and collects their metrics side by side.
package compare

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"sync"
	"time"

	"github.com/guptarohit/asciigraph"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/algoviz/internal/catalog"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/step"
)

// InputFunc builds a fresh input for one run. It is called once per
// algorithm so runs never share slices or grids.
type InputFunc func() (catalog.Input, error)

type Run struct {
	Entry    catalog.Entry
	Result   playback.Result
	Duration time.Duration
	// Series holds the running comparison count after each step.
	Series []float64
	Final  step.Step
}

// Compare runs every named algorithm of family concurrently, each on its
// own controller and its own copy of the input. Results keep the order of
// names.
func Compare(ctx context.Context, reg *catalog.Registry, family catalog.Family, names []catalog.Name, input InputFunc) ([]Run, error) {
	runs := make([]Run, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			in, err := input()
			if err != nil {
				return err
			}
			seq, entry, err := reg.New(family, name, in)
			if err != nil {
				return err
			}
			r, err := runOne(gctx, seq)
			if err != nil {
				return fmt.Errorf("compare %s: %w", name, err)
			}
			r.Entry = entry
			runs[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}

func runOne(ctx context.Context, seq iter.Seq[step.Step]) (Run, error) {
	s := &series{}
	c := playback.New(
		playback.WithSpeed(0),
		playback.WithHistoryLimit(1),
		playback.WithObserver(s),
	)
	start := time.Now()
	res, err := c.Run(ctx, step.Pull(seq))
	if err != nil {
		return Run{}, err
	}
	return Run{
		Result:   res,
		Duration: time.Since(start),
		Series:   s.values(),
		Final:    c.State().Current,
	}, nil
}

// series accumulates comparisons as a run publishes steps.
type series struct {
	mu     sync.Mutex
	n      float64
	points []float64
}

func (s *series) OnStep(e playback.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.Step.Kind() == step.KindCompare {
		s.n++
	}
	s.points = append(s.points, s.n)
}

func (s *series) OnFinish(playback.Result) {}

func (s *series) values() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]float64(nil), s.points...)
}

// Table renders one row per run.
func Table(runs []Run) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-14s %8s %12s %8s %8s %12s\n", "algorithm", "steps", "comparisons", "writes", "visited", "time")
	for _, r := range runs {
		m := r.Result.Metrics
		fmt.Fprintf(&b, "%-14s %8d %12.0f %8.0f %8.0f %12s\n",
			r.Entry.Name, r.Result.Steps, m["comparisons"], m["writes"], m["visited"], r.Duration.Round(time.Microsecond))
	}
	return b.String()
}

// Chart plots the cumulative comparison curve of every run that made at
// least one comparison.
func Chart(runs []Run, width, height int) string {
	var (
		data    [][]float64
		legends []string
	)
	for _, r := range runs {
		if len(r.Series) < 2 || r.Series[len(r.Series)-1] == 0 {
			continue
		}
		data = append(data, r.Series)
		legends = append(legends, string(r.Entry.Name))
	}
	if len(data) == 0 {
		return ""
	}
	colors := []asciigraph.AnsiColor{
		asciigraph.Green, asciigraph.Cyan, asciigraph.Yellow, asciigraph.Magenta,
		asciigraph.Red, asciigraph.Blue, asciigraph.White,
	}
	series := make([]asciigraph.AnsiColor, len(data))
	for i := range series {
		series[i] = colors[i%len(colors)]
	}
	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(series...),
		asciigraph.SeriesLegends(legends...),
		asciigraph.Caption("cumulative comparisons per step"),
	)
}
