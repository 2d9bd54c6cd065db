package pathfinding

import (
	"iter"

	"github.com/san-kum/algoviz/internal/grid"
	"github.com/san-kum/algoviz/internal/step"
)

var GreedyCode = []string{
	"h[start] = h(start); push start",
	"while the open set is not empty",
	"  cur = open node with the smallest h",
	"  mark cur visited",
	"  if cur == end, reconstruct the path",
	"  for each undiscovered non-wall neighbor nb of cur",
	"    prev[nb] = cur; h[nb] = h(nb); push nb",
	"walk prev from end to start, marking the path",
}

// Greedy expands the node that looks closest to the end and ignores the
// cost already paid, so its paths can be longer than necessary. Each node
// enters the open set once; its first discoverer becomes its back-link.
func Greedy(g *grid.Grid, start, end grid.Point, opts ...Option) iter.Seq[step.Step] {
	o := buildOptions(opts)
	return func(yield func(step.Step) bool) {
		if !valid(g, start, end) {
			return
		}
		g.ResetSearch()
		src, dst := g.Index(start), g.Index(end)
		discovered := make([]bool, len(g.Nodes))

		var open openSet
		push := func(idx int) {
			n := &g.Nodes[idx]
			n.Heuristic = o.heuristic(g.Point(idx), end)
			n.TotalCost = n.Heuristic
			discovered[idx] = true
			open.push(item{node: idx, priority: n.Heuristic})
		}

		g.Nodes[src].Distance = 0
		push(src)

		for !open.empty() {
			it := open.pop()
			cur := &g.Nodes[it.node]
			cur.IsVisited = true
			if !yield(snapshot(g, 4, it.node)) {
				return
			}
			if it.node == dst {
				tracePath(g, dst, 8, yield)
				return
			}
			for _, nb := range g.Neighbors(it.node) {
				if discovered[nb] {
					continue
				}
				next := &g.Nodes[nb]
				next.Previous = it.node
				next.Distance = cur.Distance + g.MoveCost(nb)
				push(nb)
				if !yield(relaxed(7, it.node, nb, next.Heuristic)) {
					return
				}
			}
		}
	}
}

var BFSCode = []string{
	"mark start visited; enqueue start",
	"while the queue is not empty",
	"  cur = dequeue",
	"  if cur == end, reconstruct the path",
	"  for each unvisited non-wall neighbor nb of cur",
	"    mark nb visited; prev[nb] = cur; enqueue nb",
	"walk prev from end to start, marking the path",
}

// BFS marks nodes when they are enqueued, which yields the fewest hops.
// Mud is passable but does not affect the order.
func BFS(g *grid.Grid, start, end grid.Point, opts ...Option) iter.Seq[step.Step] {
	return func(yield func(step.Step) bool) {
		if !valid(g, start, end) {
			return
		}
		g.ResetSearch()
		src, dst := g.Index(start), g.Index(end)

		g.Nodes[src].Distance = 0
		g.Nodes[src].IsVisited = true
		if !yield(snapshot(g, 1, src)) {
			return
		}
		queue := []int{src}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			if !yield(step.Step{Line: 3, Comparing: []int{cur}}) {
				return
			}
			if cur == dst {
				tracePath(g, dst, 7, yield)
				return
			}
			for _, nb := range g.Neighbors(cur) {
				next := &g.Nodes[nb]
				if next.IsVisited {
					continue
				}
				next.IsVisited = true
				next.Previous = cur
				next.Distance = g.Nodes[cur].Distance + g.MoveCost(nb)
				queue = append(queue, nb)
				if !yield(snapshot(g, 6, nb)) {
					return
				}
			}
		}
	}
}

var DFSCode = []string{
	"push start",
	"while the stack is not empty",
	"  cur = pop",
	"  if cur is visited, skip it",
	"  mark cur visited",
	"  if cur == end, reconstruct the path",
	"  for each unvisited non-wall neighbor nb of cur",
	"    prev[nb] = cur; push nb",
	"walk prev from end to start, marking the path",
}

// DFS marks nodes when they are popped, so a node can sit on the stack
// several times before its first expansion. The latest push wins the
// back-link. Paths are usually far from optimal.
func DFS(g *grid.Grid, start, end grid.Point, opts ...Option) iter.Seq[step.Step] {
	return func(yield func(step.Step) bool) {
		if !valid(g, start, end) {
			return
		}
		g.ResetSearch()
		src, dst := g.Index(start), g.Index(end)

		g.Nodes[src].Distance = 0
		stack := []int{src}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			n := &g.Nodes[cur]
			if n.IsVisited {
				continue
			}
			n.IsVisited = true
			if n.Previous != grid.NoPrevious {
				n.Distance = g.Nodes[n.Previous].Distance + g.MoveCost(cur)
			}
			if !yield(snapshot(g, 5, cur)) {
				return
			}
			if cur == dst {
				tracePath(g, dst, 9, yield)
				return
			}
			for _, nb := range g.Neighbors(cur) {
				if g.Nodes[nb].IsVisited {
					continue
				}
				g.Nodes[nb].Previous = cur
				stack = append(stack, nb)
				if !yield(step.Step{Line: 8, Comparing: []int{cur, nb}}) {
					return
				}
			}
		}
	}
}
