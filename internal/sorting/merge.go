package sorting

import (
	"iter"
	"slices"

	"github.com/san-kum/algoviz/internal/step"
)

var MergeCode = []string{
	"mergeSort(s, e): if s >= e, return",
	"  m = floor((s+e)/2)",
	"  mergeSort(s, m); mergeSort(m+1, e)",
	"  left = a[s..m]; right = a[m+1..e]",
	"  while both halves have elements",
	"    if left[i] <= right[j]: a[k] = left[i]",
	"    else: a[k] = right[j]",
	"  copy what remains of left, then right",
}

func Merge(a []int) iter.Seq[step.Step] { return MergeFunc(a, identity) }

// MergeFunc is a top-down merge sort. Ties take the left element, so it is
// stable.
func MergeFunc[E any](a []E, key func(E) int) iter.Seq[step.Step] {
	return func(yield func(step.Step) bool) {
		t := newTracer(a, key, yield)

		merge := func(s, m, e int) bool {
			left := slices.Clone(a[s : m+1])
			right := slices.Clone(a[m+1 : e+1])
			i, j, k := 0, 0, s
			for i < len(left) && j < len(right) {
				if !t.compare(5, s+i, m+1+j) {
					return false
				}
				if key(left[i]) <= key(right[j]) {
					a[k] = left[i]
					i++
					if !t.wrote(6, k) {
						return false
					}
				} else {
					a[k] = right[j]
					j++
					if !t.wrote(7, k) {
						return false
					}
				}
				k++
			}
			for ; i < len(left); i++ {
				a[k] = left[i]
				if !t.wrote(8, k) {
					return false
				}
				k++
			}
			for ; j < len(right); j++ {
				a[k] = right[j]
				if !t.wrote(8, k) {
					return false
				}
				k++
			}
			return true
		}

		var sort func(s, e int) bool
		sort = func(s, e int) bool {
			if s >= e {
				return true
			}
			m := (s + e) / 2
			if !t.emit(step.Step{Line: 2, Range: &step.Range{Low: s, High: e}, Pivot: step.Int(m)}) {
				return false
			}
			return sort(s, m) && sort(m+1, e) && merge(s, m, e)
		}

		if !sort(0, len(a)-1) {
			return
		}
		t.finish()
	}
}
