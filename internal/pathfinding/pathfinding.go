// Package pathfinding implements instrumented grid searches as lazy step
// sequences.
//
// Every search runs on a 4-connected grid, treats walls as impassable and
// charges the cost of the cell being entered (1, or 5 for mud). The grid is
// mutated in place and reset at the start of each run. When the end is
// reached the search walks the back-links from end to start, marking each
// node as part of the path and yielding one step per node. A run that
// empties its frontier first marks nothing.
//
// An empty grid, or a start or end outside it, yields no steps.
package pathfinding

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/algoviz/internal/grid"
	"github.com/san-kum/algoviz/internal/step"
)

// Heuristic estimates the remaining cost from a to b.
type Heuristic func(a, b grid.Point) float64

func Manhattan(a, b grid.Point) float64 {
	return math.Abs(float64(a.Row-b.Row)) + math.Abs(float64(a.Col-b.Col))
}

func Euclidean(a, b grid.Point) float64 {
	dr, dc := float64(a.Row-b.Row), float64(a.Col-b.Col)
	return math.Sqrt(dr*dr + dc*dc)
}

// ParseHeuristic maps "manhattan" or "euclidean" to a Heuristic. The empty
// string selects Manhattan.
func ParseHeuristic(name string) (Heuristic, error) {
	switch strings.ToLower(name) {
	case "", "manhattan":
		return Manhattan, nil
	case "euclidean":
		return Euclidean, nil
	default:
		return nil, fmt.Errorf("pathfinding: unknown heuristic: %s", name)
	}
}

type options struct {
	heuristic Heuristic
}

type Option func(*options)

// WithHeuristic selects the estimate used by A* and Greedy Best-First.
func WithHeuristic(h Heuristic) Option {
	return func(o *options) {
		if h != nil {
			o.heuristic = h
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{heuristic: Manhattan}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func valid(g *grid.Grid, start, end grid.Point) bool {
	return !g.Empty() && g.InBounds(start) && g.InBounds(end)
}

func snapshot(g *grid.Grid, line, idx int) step.Step {
	n := g.Nodes[idx]
	vars := map[string]float64{"row": float64(n.Row), "col": float64(n.Col)}
	if !math.IsInf(n.Distance, 0) {
		vars["distance"] = n.Distance
	}
	return step.Step{Line: line, Grid: g.Clone(), Comparing: []int{idx}, Variables: vars}
}

func relaxed(line, from, to int, cost float64) step.Step {
	return step.Step{Line: line, Comparing: []int{from, to}, Variables: map[string]float64{"cost": cost}}
}

// tracePath marks the back-link chain from end and yields one step per node.
func tracePath(g *grid.Grid, end, line int, yield func(step.Step) bool) {
	for _, idx := range g.PathTo(end) {
		g.Nodes[idx].IsPath = true
		if !yield(snapshot(g, line, idx)) {
			return
		}
	}
}
