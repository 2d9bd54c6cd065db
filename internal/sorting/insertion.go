package sorting

import (
	"iter"

	"github.com/san-kum/algoviz/internal/step"
)

var InsertionCode = []string{
	"for i from 1 to n-1",
	"  key = a[i]; j = i-1",
	"  while j >= 0 and a[j] > key",
	"    a[j+1] = a[j]; j = j-1",
	"  a[j+1] = key",
}

func Insertion(a []int) iter.Seq[step.Step] { return InsertionFunc(a, identity) }

// InsertionFunc shifts strictly greater elements only, so it is stable.
func InsertionFunc[E any](a []E, key func(E) int) iter.Seq[step.Step] {
	return func(yield func(step.Step) bool) {
		t := newTracer(a, key, yield)
		for i := 1; i < len(a); i++ {
			cur := a[i]
			k := key(cur)
			j := i - 1
			for j >= 0 {
				if !t.compare(3, j, j+1) {
					return
				}
				if t.k(j) <= k {
					break
				}
				a[j+1] = a[j]
				if !t.wrote(4, j, j+1) {
					return
				}
				j--
			}
			if j+1 != i {
				a[j+1] = cur
				if !t.wrote(5, j+1) {
					return
				}
			}
		}
		t.finish()
	}
}

var ShellCode = []string{
	"for gap = n/2; gap > 0; gap = gap/2",
	"  for i from gap to n-1",
	"    tmp = a[i]; j = i",
	"    while j >= gap and a[j-gap] > tmp",
	"      a[j] = a[j-gap]; j = j-gap",
	"    a[j] = tmp",
}

func Shell(a []int) iter.Seq[step.Step] { return ShellFunc(a, identity) }

func ShellFunc[E any](a []E, key func(E) int) iter.Seq[step.Step] {
	return func(yield func(step.Step) bool) {
		t := newTracer(a, key, yield)
		n := len(a)
		for gap := n / 2; gap > 0; gap /= 2 {
			if !t.emit(step.Step{Line: 1, Pivot: step.Int(gap), Variables: map[string]float64{"gap": float64(gap)}}) {
				return
			}
			for i := gap; i < n; i++ {
				tmp := a[i]
				k := key(tmp)
				j := i
				for j >= gap {
					if !t.emit(step.Step{Line: 4, Comparing: []int{j - gap, j}, Pivot: step.Int(gap)}) {
						return
					}
					if t.k(j-gap) <= k {
						break
					}
					a[j] = a[j-gap]
					if !t.wrote(5, j-gap, j) {
						return
					}
					j -= gap
				}
				if j != i {
					a[j] = tmp
					if !t.wrote(6, j) {
						return
					}
				}
			}
		}
		t.finish()
	}
}
