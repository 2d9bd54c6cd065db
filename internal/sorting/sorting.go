// Package sorting implements instrumented sorting algorithms as lazy step
// sequences.
//
// Every producer sorts the caller's slice in place. Pass a copy when the
// original order matters. Each sequence yields a comparison step for every
// pair it examines, an array snapshot after every write, and a final step
// carrying the fully sorted array.
//
// The Func variants order arbitrary elements by an integer key; snapshots
// carry the keys.
package sorting

import (
	"github.com/san-kum/algoviz/internal/step"
)

func identity(v int) int { return v }

type tracer[E any] struct {
	a     []E
	key   func(E) int
	yield func(step.Step) bool
}

func newTracer[E any](a []E, key func(E) int, yield func(step.Step) bool) *tracer[E] {
	return &tracer[E]{a: a, key: key, yield: yield}
}

func (t *tracer[E]) k(i int) int { return t.key(t.a[i]) }

func (t *tracer[E]) snapshot() []int {
	out := make([]int, len(t.a))
	for i, v := range t.a {
		out[i] = t.key(v)
	}
	return out
}

func (t *tracer[E]) compare(line, i, j int) bool {
	return t.yield(step.Step{Line: line, Comparing: []int{i, j}})
}

func (t *tracer[E]) swap(line, i, j int) bool {
	t.a[i], t.a[j] = t.a[j], t.a[i]
	return t.wrote(line, i, j)
}

// wrote publishes the array after the caller mutated the touched indices.
func (t *tracer[E]) wrote(line int, touched ...int) bool {
	return t.yield(step.Step{Line: line, Array: t.snapshot(), Comparing: touched})
}

func (t *tracer[E]) emit(s step.Step) bool { return t.yield(s) }

func (t *tracer[E]) finish() {
	t.yield(step.Step{Array: t.snapshot()})
}
