package sorting

import (
	"iter"

	"github.com/san-kum/algoviz/internal/step"
)

var SelectionCode = []string{
	"for i from 0 to n-2",
	"  minIdx = i",
	"  for j from i+1 to n-1",
	"    if a[j] < a[minIdx]",
	"      minIdx = j",
	"  if minIdx != i: swap a[i] and a[minIdx]",
}

func Selection(a []int) iter.Seq[step.Step] { return SelectionFunc(a, identity) }

func SelectionFunc[E any](a []E, key func(E) int) iter.Seq[step.Step] {
	return func(yield func(step.Step) bool) {
		t := newTracer(a, key, yield)
		n := len(a)
		for i := 0; i < n-1; i++ {
			minIdx := i
			for j := i + 1; j < n; j++ {
				if !t.emit(step.Step{Line: 4, Comparing: []int{minIdx, j}, Pivot: step.Int(minIdx)}) {
					return
				}
				if t.k(j) < t.k(minIdx) {
					minIdx = j
					if !t.emit(step.Step{Line: 5, Pivot: step.Int(minIdx)}) {
						return
					}
				}
			}
			if minIdx != i && !t.swap(6, i, minIdx) {
				return
			}
		}
		t.finish()
	}
}

var HeapCode = []string{
	"for i from n/2-1 down to 0: heapify(n, i)",
	"for end from n-1 down to 1",
	"  swap a[0] and a[end]",
	"  heapify(end, 0)",
	"heapify(size, root): largest = root",
	"  if left < size and a[left] > a[largest]: largest = left",
	"  if right < size and a[right] > a[largest]: largest = right",
	"  if largest != root: swap, then heapify(size, largest)",
}

func Heap(a []int) iter.Seq[step.Step] { return HeapFunc(a, identity) }

func HeapFunc[E any](a []E, key func(E) int) iter.Seq[step.Step] {
	return func(yield func(step.Step) bool) {
		t := newTracer(a, key, yield)

		heapify := func(size, root int) bool {
			for {
				largest := root
				l, r := 2*root+1, 2*root+2
				if l < size {
					if !t.compare(6, l, largest) {
						return false
					}
					if t.k(l) > t.k(largest) {
						largest = l
					}
				}
				if r < size {
					if !t.compare(7, r, largest) {
						return false
					}
					if t.k(r) > t.k(largest) {
						largest = r
					}
				}
				if largest == root {
					return true
				}
				if !t.swap(8, root, largest) {
					return false
				}
				root = largest
			}
		}

		n := len(a)
		for i := n/2 - 1; i >= 0; i-- {
			if !heapify(n, i) {
				return
			}
		}
		for end := n - 1; end > 0; end-- {
			if !t.swap(3, 0, end) {
				return
			}
			if !heapify(end, 0) {
				return
			}
		}
		t.finish()
	}
}
