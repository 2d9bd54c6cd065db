// Package step defines the snapshot vocabulary shared by every algorithm
// producer and the pull-based wrapper the playback controller drives.
package step

import (
	"iter"
	"maps"
	"slices"

	"github.com/san-kum/algoviz/internal/grid"
)

// Range is an inclusive [Low, High] bound.
type Range struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// Step is one observable unit of algorithm progress. Every field is
// optional; an absent Found means "not found yet".
type Step struct {
	Line      int                `json:"line,omitempty"`
	Array     []int              `json:"array,omitempty"`
	Comparing []int              `json:"comparing,omitempty"`
	Found     *int               `json:"found,omitempty"`
	Range     *Range             `json:"range,omitempty"`
	Pivot     *int               `json:"pivot,omitempty"`
	Grid      *grid.Grid         `json:"grid,omitempty"`
	Node      *int               `json:"node,omitempty"`
	Variables map[string]float64 `json:"variables,omitempty"`
}

type Kind int

const (
	KindTrace Kind = iota
	KindCompare
	KindVisit
	KindArray
	KindGrid
	KindFound
)

func (k Kind) String() string {
	switch k {
	case KindCompare:
		return "compare"
	case KindVisit:
		return "visit"
	case KindArray:
		return "array"
	case KindGrid:
		return "grid"
	case KindFound:
		return "found"
	default:
		return "trace"
	}
}

// Kind infers what the step carries from which fields are present.
func (s Step) Kind() Kind {
	switch {
	case s.Found != nil:
		return KindFound
	case s.Grid != nil:
		return KindGrid
	case s.Array != nil:
		return KindArray
	case s.Node != nil:
		return KindVisit
	case len(s.Comparing) > 0:
		return KindCompare
	default:
		return KindTrace
	}
}

// Clone returns a deep copy that shares no memory with s.
func (s Step) Clone() Step {
	c := Step{
		Line:      s.Line,
		Array:     slices.Clone(s.Array),
		Comparing: slices.Clone(s.Comparing),
		Found:     clonePtr(s.Found),
		Pivot:     clonePtr(s.Pivot),
		Grid:      s.Grid.Clone(),
		Node:      clonePtr(s.Node),
		Variables: maps.Clone(s.Variables),
	}
	if s.Range != nil {
		r := *s.Range
		c.Range = &r
	}
	return c
}

func clonePtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Int returns a pointer to v, for the optional index fields.
func Int(v int) *int { return &v }

// Collect drains seq into a slice.
func Collect(seq iter.Seq[Step]) []Step {
	return slices.Collect(seq)
}

// Last returns the final step of seq.
func Last(seq iter.Seq[Step]) (Step, bool) {
	var last Step
	ok := false
	for s := range seq {
		last, ok = s, true
	}
	return last, ok
}
