package sorting

import (
	"iter"

	"github.com/san-kum/algoviz/internal/step"
)

var BubbleCode = []string{
	"for i from 0 to n-2",
	"  swapped = false",
	"  for j from 0 to n-i-2",
	"    if a[j] > a[j+1]",
	"      swap a[j] and a[j+1]",
	"      swapped = true",
	"  if not swapped, stop",
}

func Bubble(a []int) iter.Seq[step.Step] { return BubbleFunc(a, identity) }

// BubbleFunc is stable: only strictly greater neighbors are swapped.
func BubbleFunc[E any](a []E, key func(E) int) iter.Seq[step.Step] {
	return func(yield func(step.Step) bool) {
		t := newTracer(a, key, yield)
		n := len(a)
		for i := 0; i < n-1; i++ {
			swapped := false
			for j := 0; j < n-i-1; j++ {
				if !t.compare(4, j, j+1) {
					return
				}
				if t.k(j) > t.k(j+1) {
					if !t.swap(5, j, j+1) {
						return
					}
					swapped = true
				}
			}
			if !swapped {
				if !t.emit(step.Step{Line: 7, Variables: map[string]float64{"i": float64(i)}}) {
					return
				}
				break
			}
		}
		t.finish()
	}
}

var CocktailCode = []string{
	"start = 0; end = n-1; swapped = true",
	"while swapped",
	"  swapped = false",
	"  for i from start to end-1: if a[i] > a[i+1]",
	"    swap a[i] and a[i+1]; swapped = true",
	"  if not swapped, stop",
	"  end = end-1; swapped = false",
	"  for i from end-1 down to start: if a[i] > a[i+1]",
	"    swap a[i] and a[i+1]; swapped = true",
	"  start = start+1",
}

func Cocktail(a []int) iter.Seq[step.Step] { return CocktailFunc(a, identity) }

func CocktailFunc[E any](a []E, key func(E) int) iter.Seq[step.Step] {
	return func(yield func(step.Step) bool) {
		t := newTracer(a, key, yield)
		start, end := 0, len(a)-1
		swapped := true
		for swapped {
			swapped = false
			for i := start; i < end; i++ {
				if !t.compare(4, i, i+1) {
					return
				}
				if t.k(i) > t.k(i+1) {
					if !t.swap(5, i, i+1) {
						return
					}
					swapped = true
				}
			}
			if !swapped {
				break
			}
			end--
			swapped = false
			for i := end - 1; i >= start; i-- {
				if !t.compare(8, i, i+1) {
					return
				}
				if t.k(i) > t.k(i+1) {
					if !t.swap(9, i, i+1) {
						return
					}
					swapped = true
				}
			}
			start++
			if !t.emit(step.Step{Line: 10, Range: &step.Range{Low: start, High: end}}) {
				return
			}
		}
		t.finish()
	}
}

var GnomeCode = []string{
	"pos = 0",
	"while pos < n",
	"  if pos == 0 or a[pos-1] <= a[pos]: pos = pos+1",
	"  else: swap a[pos] and a[pos-1]; pos = pos-1",
}

func Gnome(a []int) iter.Seq[step.Step] { return GnomeFunc(a, identity) }

// GnomeFunc is stable: equal neighbors count as in order.
func GnomeFunc[E any](a []E, key func(E) int) iter.Seq[step.Step] {
	return func(yield func(step.Step) bool) {
		t := newTracer(a, key, yield)
		pos := 0
		for pos < len(a) {
			if pos == 0 {
				pos++
				continue
			}
			if !t.compare(3, pos-1, pos) {
				return
			}
			if t.k(pos-1) <= t.k(pos) {
				pos++
				continue
			}
			if !t.swap(4, pos, pos-1) {
				return
			}
			pos--
		}
		t.finish()
	}
}

var CombCode = []string{
	"gap = n; swapped = true",
	"while gap > 1 or swapped",
	"  gap = max(1, floor(gap / 1.3))",
	"  swapped = false",
	"  for i from 0 while i+gap < n",
	"    if a[i] > a[i+gap]",
	"      swap a[i] and a[i+gap]; swapped = true",
}

const combShrink = 1.3

func Comb(a []int) iter.Seq[step.Step] { return CombFunc(a, identity) }

func CombFunc[E any](a []E, key func(E) int) iter.Seq[step.Step] {
	return func(yield func(step.Step) bool) {
		t := newTracer(a, key, yield)
		n := len(a)
		gap := n
		swapped := true
		for gap > 1 || swapped {
			gap = max(1, int(float64(gap)/combShrink))
			if !t.emit(step.Step{Line: 3, Pivot: step.Int(gap), Variables: map[string]float64{"gap": float64(gap)}}) {
				return
			}
			swapped = false
			for i := 0; i+gap < n; i++ {
				if !t.compare(6, i, i+gap) {
					return
				}
				if t.k(i) > t.k(i+gap) {
					if !t.swap(7, i, i+gap) {
						return
					}
					swapped = true
				}
			}
		}
		t.finish()
	}
}
