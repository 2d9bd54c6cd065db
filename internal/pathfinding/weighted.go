package pathfinding

import (
	"iter"

	"github.com/san-kum/algoviz/internal/grid"
	"github.com/san-kum/algoviz/internal/step"
)

var DijkstraCode = []string{
	"dist[start] = 0; push start",
	"while the open set is not empty",
	"  cur = open node with the smallest dist",
	"  if cur is visited, skip it",
	"  mark cur visited",
	"  if cur == end, reconstruct the path",
	"  for each non-wall neighbor nb of cur",
	"    alt = dist[cur] + cost(nb)",
	"    if alt < dist[nb]",
	"      dist[nb] = alt; prev[nb] = cur; push nb",
	"walk prev from end to start, marking the path",
}

var AStarCode = []string{
	"g[start] = 0; f[start] = h(start); push start",
	"while the open set is not empty",
	"  cur = open node with the smallest f = g + h",
	"  if cur is visited, skip it",
	"  mark cur visited",
	"  if cur == end, reconstruct the path",
	"  for each non-wall neighbor nb of cur",
	"    alt = g[cur] + cost(nb)",
	"    if alt < g[nb]",
	"      g[nb] = alt; f[nb] = alt + h(nb); prev[nb] = cur; push nb",
	"walk prev from end to start, marking the path",
}

// Dijkstra always expands the unvisited node with the smallest known
// distance, so the reconstructed path has minimal total cost.
func Dijkstra(g *grid.Grid, start, end grid.Point, opts ...Option) iter.Seq[step.Step] {
	return weighted(g, start, end, nil)
}

// AStar orders the open set by distance plus the heuristic estimate.
// A cheaper route to a node already in the open set pushes a second entry;
// stale entries are discarded when popped.
func AStar(g *grid.Grid, start, end grid.Point, opts ...Option) iter.Seq[step.Step] {
	o := buildOptions(opts)
	return weighted(g, start, end, o.heuristic)
}

func weighted(g *grid.Grid, start, end grid.Point, h Heuristic) iter.Seq[step.Step] {
	return func(yield func(step.Step) bool) {
		if !valid(g, start, end) {
			return
		}
		g.ResetSearch()
		src, dst := g.Index(start), g.Index(end)

		estimate := func(idx int) float64 {
			if h == nil {
				return 0
			}
			return h(g.Point(idx), end)
		}
		enqueue := func(open *openSet, idx int) {
			n := &g.Nodes[idx]
			n.Heuristic = estimate(idx)
			n.TotalCost = n.Distance + n.Heuristic
			open.push(item{node: idx, priority: n.TotalCost, tie: n.Heuristic, cost: n.Distance})
		}

		var open openSet
		g.Nodes[src].Distance = 0
		enqueue(&open, src)

		for !open.empty() {
			it := open.pop()
			cur := &g.Nodes[it.node]
			if cur.IsVisited || it.cost > cur.Distance {
				continue
			}
			cur.IsVisited = true
			if !yield(snapshot(g, 5, it.node)) {
				return
			}
			if it.node == dst {
				tracePath(g, dst, 11, yield)
				return
			}
			for _, nb := range g.Neighbors(it.node) {
				next := &g.Nodes[nb]
				if next.IsVisited {
					continue
				}
				alt := cur.Distance + g.MoveCost(nb)
				if alt < next.Distance {
					next.Distance = alt
					next.Previous = it.node
					enqueue(&open, nb)
					if !yield(relaxed(10, it.node, nb, alt)) {
						return
					}
				}
			}
		}
	}
}
