package pathfinding

import "container/heap"

// item is one open-set entry. Entries are never updated in place: a cheaper
// route pushes a new entry and the old one goes stale.
type item struct {
	node     int
	priority float64
	tie      float64
	cost     float64
	seq      int
}

type itemHeap []item

func (h itemHeap) Len() int { return len(h) }

func (h itemHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	if h[i].tie != h[j].tie {
		return h[i].tie < h[j].tie
	}
	return h[i].seq < h[j].seq
}

func (h itemHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *itemHeap) Push(x any) { *h = append(*h, x.(item)) }

func (h *itemHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// openSet is a min-priority queue with insertion order as the final tie
// breaker, so equal entries come out first-in first-out.
type openSet struct {
	h   itemHeap
	seq int
}

func (o *openSet) push(it item) {
	it.seq = o.seq
	o.seq++
	heap.Push(&o.h, it)
}

func (o *openSet) pop() item { return heap.Pop(&o.h).(item) }

func (o *openSet) empty() bool { return len(o.h) == 0 }
