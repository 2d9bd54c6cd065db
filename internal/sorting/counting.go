package sorting

import (
	"iter"
	"math"
	"slices"

	"github.com/san-kum/algoviz/internal/step"
)

var CountingCode = []string{
	"if a is empty, return it unchanged",
	"lo = min(a); hi = max(a)",
	"if hi-lo+1 > MaxCountingRange: return a unchanged",
	"count = zeros(hi-lo+1)",
	"for each v in a: count[v-lo]++",
	"k = 0",
	"for v from lo to hi",
	"  repeat count[v-lo] times: a[k] = v; k = k+1",
}

// MaxCountingRange caps the tally table of Counting.
const MaxCountingRange = 1 << 20

// CountingSpan is max-min+1 of a, or 0 when a is empty. It saturates at
// math.MaxUint64 instead of wrapping.
func CountingSpan(a []int) uint64 {
	if len(a) == 0 {
		return 0
	}
	span := uint64(slices.Max(a)) - uint64(slices.Min(a))
	if span == math.MaxUint64 {
		return span
	}
	return span + 1
}

// Counting sorts by tallying each value in a table of size max-min+1, so
// negative values are fine. An empty slice yields a single final step with
// an empty array. Wider ranges than MaxCountingRange leave a unchanged and
// end on a final snapshot.
func Counting(a []int) iter.Seq[step.Step] {
	return func(yield func(step.Step) bool) {
		t := newTracer(a, identity, yield)
		if len(a) == 0 {
			yield(step.Step{Line: 1, Array: []int{}})
			return
		}

		lo, hi := slices.Min(a), slices.Max(a)
		if !t.emit(step.Step{Line: 2, Variables: map[string]float64{"min": float64(lo), "max": float64(hi)}}) {
			return
		}
		if span := CountingSpan(a); span > MaxCountingRange {
			if !t.emit(step.Step{Line: 3, Variables: map[string]float64{"range": float64(span)}}) {
				return
			}
			t.finish()
			return
		}

		count := make([]int, hi-lo+1)
		for i, v := range a {
			count[v-lo]++
			// A tally reads a[i] without comparing it to anything.
			if !t.emit(step.Step{Line: 5, Pivot: &i}) {
				return
			}
		}

		k := 0
		for off, n := range count {
			for range n {
				a[k] = lo + off
				if !t.wrote(8, k) {
					return
				}
				k++
			}
		}
		t.finish()
	}
}
