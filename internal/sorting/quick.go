package sorting

import (
	"iter"

	"github.com/san-kum/algoviz/internal/step"
)

var QuickCode = []string{
	"push (0, n-1)",
	"while the stack is not empty",
	"  pop (lo, hi); skip if lo >= hi",
	"  pivot = a[hi]; i = lo-1",
	"  for j from lo to hi-1",
	"    if a[j] < pivot",
	"      i = i+1; swap a[i] and a[j]",
	"  swap a[i+1] and a[hi]",
	"  push (i+2, hi), then push (lo, i)",
}

type span struct{ lo, hi int }

func Quick(a []int) iter.Seq[step.Step] { return QuickFunc(a, identity) }

// QuickFunc uses a Lomuto partition around the last element. Partitions
// live on an explicit stack so adversarial input cannot exhaust the
// goroutine stack; the left partition is always handled first.
func QuickFunc[E any](a []E, key func(E) int) iter.Seq[step.Step] {
	return func(yield func(step.Step) bool) {
		t := newTracer(a, key, yield)
		stack := []span{{0, len(a) - 1}}
		for len(stack) > 0 {
			s := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if s.lo >= s.hi {
				continue
			}

			lo, hi := s.lo, s.hi
			pivot := t.k(hi)
			vars := map[string]float64{"lo": float64(lo), "hi": float64(hi)}
			if !t.emit(step.Step{Line: 4, Pivot: step.Int(hi), Variables: vars}) {
				return
			}
			i := lo - 1
			for j := lo; j < hi; j++ {
				if !t.emit(step.Step{Line: 6, Comparing: []int{j, hi}, Pivot: step.Int(hi)}) {
					return
				}
				if t.k(j) < pivot {
					i++
					if i != j && !t.swap(7, i, j) {
						return
					}
				}
			}
			p := i + 1
			if p != hi && !t.swap(8, p, hi) {
				return
			}

			stack = append(stack, span{p + 1, hi}, span{lo, p - 1})
		}
		t.finish()
	}
}
