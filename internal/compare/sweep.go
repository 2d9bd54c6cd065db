package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/algoviz/internal/catalog"
	"github.com/san-kum/algoviz/internal/config"
)

// SweepPoint is one algorithm measured at one input size.
type SweepPoint struct {
	Algorithm   catalog.Name
	Size        int
	Steps       int
	Comparisons float64
	Writes      float64
}

// Sweep compares names on random arrays of each size, seeded from cfg so
// every algorithm sees the same values at a given size. Only array
// families make sense here.
func Sweep(ctx context.Context, reg *catalog.Registry, family catalog.Family, names []catalog.Name, sizes []int, cfg *config.Config) ([]SweepPoint, error) {
	if family != catalog.Sorting && family != catalog.Searching {
		return nil, fmt.Errorf("compare: cannot sweep sizes of %s", family)
	}
	points := make([]SweepPoint, 0, len(sizes)*len(names))
	for _, n := range sizes {
		c := cfg.Clone()
		c.Array, c.Size = nil, n
		runs, err := Compare(ctx, reg, family, names, c.Input)
		if err != nil {
			return nil, fmt.Errorf("size %d: %w", n, err)
		}
		for _, r := range runs {
			points = append(points, SweepPoint{
				Algorithm:   r.Entry.Name,
				Size:        n,
				Steps:       r.Result.Steps,
				Comparisons: r.Result.Metrics["comparisons"],
				Writes:      r.Result.Metrics["writes"],
			})
		}
	}
	return points, nil
}

// SweepTable renders comparisons per size, one column per algorithm.
func SweepTable(points []SweepPoint) string {
	names, sizes, cells := pivot(points)
	var b strings.Builder
	fmt.Fprintf(&b, "%8s", "n")
	for _, name := range names {
		fmt.Fprintf(&b, " %12s", name)
	}
	b.WriteByte('\n')
	for _, n := range sizes {
		fmt.Fprintf(&b, "%8d", n)
		for _, name := range names {
			fmt.Fprintf(&b, " %12.0f", cells[name][n])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// SweepChart plots comparisons against size, one line per algorithm.
func SweepChart(points []SweepPoint, width, height int) string {
	names, sizes, cells := pivot(points)
	if len(sizes) < 2 {
		return ""
	}
	data := make([][]float64, len(names))
	legends := make([]string, len(names))
	for i, name := range names {
		for _, n := range sizes {
			data[i] = append(data[i], cells[name][n])
		}
		legends[i] = string(name)
	}
	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesLegends(legends...),
		asciigraph.Caption("comparisons by input size"),
	)
}

func pivot(points []SweepPoint) ([]catalog.Name, []int, map[catalog.Name]map[int]float64) {
	var (
		names []catalog.Name
		sizes []int
		cells = map[catalog.Name]map[int]float64{}
		seen  = map[int]bool{}
	)
	for _, p := range points {
		if cells[p.Algorithm] == nil {
			cells[p.Algorithm] = map[int]float64{}
			names = append(names, p.Algorithm)
		}
		cells[p.Algorithm][p.Size] = p.Comparisons
		if !seen[p.Size] {
			seen[p.Size] = true
			sizes = append(sizes, p.Size)
		}
	}
	return names, sizes, cells
}
