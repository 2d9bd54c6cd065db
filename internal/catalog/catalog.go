// Package catalog names every algorithm the engine ships and maps each name
// to its producer, its pseudo-code listing and its complexity descriptor.
package catalog

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/san-kum/algoviz/internal/grid"
	"github.com/san-kum/algoviz/internal/pathfinding"
	"github.com/san-kum/algoviz/internal/step"
	"github.com/san-kum/algoviz/internal/traversal"
)

var (
	ErrUnknownFamily    = errors.New("catalog: unknown family")
	ErrUnknownAlgorithm = errors.New("catalog: unknown algorithm")
	ErrMissingInput     = errors.New("catalog: missing input")
)

type Family string

const (
	Sorting     Family = "sorting"
	Searching   Family = "searching"
	Pathfinding Family = "pathfinding"
	Traversal   Family = "traversal"
)

var families = []Family{Sorting, Searching, Pathfinding, Traversal}

func Families() []Family { return append([]Family(nil), families...) }

func ParseFamily(s string) (Family, error) {
	f := Family(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range families {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFamily, s)
}

type Name string

const (
	Bubble    Name = "bubble"
	Quick     Name = "quick"
	Merge     Name = "merge"
	Selection Name = "selection"
	Insertion Name = "insertion"
	Heap      Name = "heap"
	Shell     Name = "shell"
	Cocktail  Name = "cocktail"
	Gnome     Name = "gnome"
	Comb      Name = "comb"
	Counting  Name = "counting"

	Linear        Name = "linear"
	Binary        Name = "binary"
	Jump          Name = "jump"
	Interpolation Name = "interpolation"
	Exponential   Name = "exponential"

	Dijkstra Name = "dijkstra"
	AStar    Name = "astar"
	Greedy   Name = "greedy"
	BFS      Name = "bfs"
	DFS      Name = "dfs"

	InOrder   Name = "inorder"
	PreOrder  Name = "preorder"
	PostOrder Name = "postorder"
)

// Complexity is display metadata describing the implemented algorithm.
type Complexity struct {
	Best    string `json:"best" yaml:"best"`
	Average string `json:"average" yaml:"average"`
	Worst   string `json:"worst" yaml:"worst"`
	Space   string `json:"space" yaml:"space"`
}

// Entry describes one algorithm. Trace lines are numbered from 1 and match
// the Line field of the steps the producer yields.
type Entry struct {
	Name       Name       `json:"name"`
	Family     Family     `json:"family"`
	Title      string     `json:"title"`
	Trace      []string   `json:"trace"`
	Complexity Complexity `json:"complexity"`
}

type (
	SortFunc     func(a []int) iter.Seq[step.Step]
	SearchFunc   func(a []int, target int) iter.Seq[step.Step]
	PathFunc     func(g *grid.Grid, start, end grid.Point, opts ...pathfinding.Option) iter.Seq[step.Step]
	TraverseFunc func(root *traversal.Node) iter.Seq[step.Step]
)

// Input carries whatever a family needs. Only the fields of the requested
// family are read.
type Input struct {
	Array     []int
	Target    int
	Grid      *grid.Grid
	Start     grid.Point
	End       grid.Point
	Heuristic string
	Tree      *traversal.Node
}
