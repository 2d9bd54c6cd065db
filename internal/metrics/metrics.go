package metrics

import (
	"github.com/san-kum/algoviz/internal/grid"
	"github.com/san-kum/algoviz/internal/step"
)

// Metric accumulates one number over the steps of a run.
type Metric interface {
	Name() string
	Observe(s step.Step)
	Value() float64
	Reset()
}

// Default returns a fresh set of the standard run metrics.
func Default() []Metric {
	return []Metric{
		NewSteps(),
		NewComparisons(),
		NewWrites(),
		NewVisited(),
		NewPathLength(),
	}
}

// Summary reads every metric into a name-keyed map.
func Summary(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

type Steps struct {
	name  string
	count int
}

func NewSteps() *Steps { return &Steps{name: "steps"} }

func (s *Steps) Name() string      { return s.name }
func (s *Steps) Observe(step.Step) { s.count++ }
func (s *Steps) Value() float64    { return float64(s.count) }
func (s *Steps) Reset()            { s.count = 0 }

// Comparisons counts steps that only examine indices. A step that reads one
// element without comparing it, like a counting sort tally, marks it as the
// pivot instead and is not counted.
type Comparisons struct {
	name  string
	count int
}

func NewComparisons() *Comparisons {
	return &Comparisons{name: "comparisons"}
}

func (c *Comparisons) Name() string { return c.name }

func (c *Comparisons) Observe(s step.Step) {
	if s.Kind() == step.KindCompare {
		c.count++
	}
}

func (c *Comparisons) Value() float64 { return float64(c.count) }
func (c *Comparisons) Reset()         { c.count = 0 }

// Writes counts array snapshots that mark the indices they changed. The
// closing snapshot of a sort and the opening snapshot of a search touch
// nothing and are not counted.
type Writes struct {
	name  string
	count int
}

func NewWrites() *Writes {
	return &Writes{name: "writes"}
}

func (w *Writes) Name() string { return w.name }

func (w *Writes) Observe(s step.Step) {
	if s.Array != nil && len(s.Comparing) > 0 {
		w.count++
	}
}

func (w *Writes) Value() float64 { return float64(w.count) }
func (w *Writes) Reset()         { w.count = 0 }

// Visited reports how many grid nodes the latest snapshot marks visited.
type Visited struct {
	name  string
	count int
}

func NewVisited() *Visited {
	return &Visited{name: "visited"}
}

func (v *Visited) Name() string { return v.name }

func (v *Visited) Observe(s step.Step) {
	if s.Grid != nil {
		v.count = s.Grid.Count(func(n grid.Node) bool { return n.IsVisited })
	}
}

func (v *Visited) Value() float64 { return float64(v.count) }
func (v *Visited) Reset()         { v.count = 0 }

// PathLength reports the number of path nodes in the latest grid snapshot.
type PathLength struct {
	name  string
	count int
}

func NewPathLength() *PathLength {
	return &PathLength{name: "path_length"}
}

func (p *PathLength) Name() string { return p.name }

func (p *PathLength) Observe(s step.Step) {
	if s.Grid != nil {
		p.count = s.Grid.Count(func(n grid.Node) bool { return n.IsPath })
	}
}

func (p *PathLength) Value() float64 { return float64(p.count) }
func (p *PathLength) Reset()         { p.count = 0 }
