// Package grid models the pathfinding board: a rectangular arena of nodes
// with walls, mud, per-node search state and back-links for path
// reconstruction.
//
// Nodes live in a flat row-major slice. Back-links are arena indices rather
// than pointers, so a Grid is copied with a single slice copy.
package grid

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	// NormalCost is the cost of entering a regular cell.
	NormalCost = 1.0
	// MudCost is the cost of entering a mud cell.
	MudCost = 5.0
	// NoPrevious marks a node without a back-link.
	NoPrevious = -1
)

var (
	ErrOutOfBounds    = errors.New("grid: position out of bounds")
	ErrNonRectangular = errors.New("grid: all layout rows must have the same length")
	ErrBadLayout      = errors.New("grid: layout must contain exactly one start and one end")
)

// Point addresses a cell by row and column.
type Point struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.Row, p.Col) }

// Node is one cell of the grid.
type Node struct {
	Row       int
	Col       int
	IsWall    bool
	IsMud     bool
	IsVisited bool
	IsPath    bool
	Distance  float64
	Heuristic float64
	TotalCost float64
	Previous  int
}

type nodeJSON struct {
	Row       int      `json:"row"`
	Col       int      `json:"col"`
	IsWall    bool     `json:"isWall"`
	IsMud     bool     `json:"isMud"`
	IsVisited bool     `json:"isVisited"`
	IsPath    bool     `json:"isPath"`
	Distance  *float64 `json:"distance"`
	Heuristic *float64 `json:"heuristic"`
	TotalCost *float64 `json:"totalCost"`
	Previous  int      `json:"previous"`
}

// MarshalJSON encodes infinite costs as null, which encoding/json cannot
// represent natively.
func (n Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(nodeJSON{
		Row:       n.Row,
		Col:       n.Col,
		IsWall:    n.IsWall,
		IsMud:     n.IsMud,
		IsVisited: n.IsVisited,
		IsPath:    n.IsPath,
		Distance:  finite(n.Distance),
		Heuristic: finite(n.Heuristic),
		TotalCost: finite(n.TotalCost),
		Previous:  n.Previous,
	})
}

func (n *Node) UnmarshalJSON(data []byte) error {
	var raw nodeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*n = Node{
		Row:       raw.Row,
		Col:       raw.Col,
		IsWall:    raw.IsWall,
		IsMud:     raw.IsMud,
		IsVisited: raw.IsVisited,
		IsPath:    raw.IsPath,
		Distance:  orInf(raw.Distance),
		Heuristic: orInf(raw.Heuristic),
		TotalCost: orInf(raw.TotalCost),
		Previous:  raw.Previous,
	}
	return nil
}

func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

func orInf(v *float64) float64 {
	if v == nil {
		return math.Inf(1)
	}
	return *v
}

// Grid is a rows x cols board stored row-major.
type Grid struct {
	Rows  int    `json:"rows"`
	Cols  int    `json:"cols"`
	Nodes []Node `json:"nodes"`
}

// New returns an open grid with every search field reset. Non-positive
// dimensions produce an empty grid.
func New(rows, cols int) *Grid {
	if rows <= 0 || cols <= 0 {
		return &Grid{}
	}
	g := &Grid{Rows: rows, Cols: cols, Nodes: make([]Node, rows*cols)}
	for i := range g.Nodes {
		g.Nodes[i] = Node{Row: i / cols, Col: i % cols}
	}
	g.ResetSearch()
	return g
}

// Parse builds a grid from text rows: '.' open, '#' wall, '~' mud,
// 'S' start and 'E' end.
func Parse(layout []string) (*Grid, Point, Point, error) {
	var start, end Point
	if len(layout) == 0 || len(layout[0]) == 0 {
		return New(0, 0), start, end, nil
	}
	cols := len(layout[0])
	for _, row := range layout {
		if len(row) != cols {
			return nil, start, end, ErrNonRectangular
		}
	}
	g := New(len(layout), cols)
	starts, ends := 0, 0
	for r, row := range layout {
		for c, ch := range row {
			n := g.At(Point{r, c})
			switch ch {
			case '#':
				n.IsWall = true
			case '~':
				n.IsMud = true
			case 'S':
				start = Point{r, c}
				starts++
			case 'E':
				end = Point{r, c}
				ends++
			case '.':
			default:
				return nil, start, end, fmt.Errorf("grid: unknown cell %q at %v", ch, Point{r, c})
			}
		}
	}
	if starts != 1 || ends != 1 {
		return nil, start, end, ErrBadLayout
	}
	return g, start, end, nil
}

// Empty reports whether the grid has no cells.
func (g *Grid) Empty() bool { return g == nil || len(g.Nodes) == 0 }

func (g *Grid) InBounds(p Point) bool {
	return g != nil && p.Row >= 0 && p.Row < g.Rows && p.Col >= 0 && p.Col < g.Cols
}

// Index maps a point to its row-major arena index.
func (g *Grid) Index(p Point) int { return p.Row*g.Cols + p.Col }

// Point converts an arena index back to a position.
func (g *Grid) Point(idx int) Point { return Point{Row: idx / g.Cols, Col: idx % g.Cols} }

// At returns the node at p, or nil when p is outside the grid.
func (g *Grid) At(p Point) *Node {
	if !g.InBounds(p) {
		return nil
	}
	return &g.Nodes[g.Index(p)]
}

func (g *Grid) SetWall(p Point, wall bool) error {
	n := g.At(p)
	if n == nil {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	n.IsWall = wall
	if wall {
		n.IsMud = false
	}
	return nil
}

func (g *Grid) SetMud(p Point, mud bool) error {
	n := g.At(p)
	if n == nil {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	n.IsMud = mud
	if mud {
		n.IsWall = false
	}
	return nil
}

// offsets lists the von Neumann neighborhood in up, down, left, right order.
var offsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Neighbors returns the in-bounds, non-wall neighbors of idx.
func (g *Grid) Neighbors(idx int) []int {
	p := g.Point(idx)
	out := make([]int, 0, 4)
	for _, d := range offsets {
		q := Point{p.Row + d[0], p.Col + d[1]}
		if !g.InBounds(q) {
			continue
		}
		j := g.Index(q)
		if g.Nodes[j].IsWall {
			continue
		}
		out = append(out, j)
	}
	return out
}

// MoveCost is the cost of entering idx.
func (g *Grid) MoveCost(idx int) float64 {
	if g.Nodes[idx].IsMud {
		return MudCost
	}
	return NormalCost
}

// ResetSearch clears visited/path flags, costs and back-links while keeping
// the terrain.
func (g *Grid) ResetSearch() {
	inf := math.Inf(1)
	for i := range g.Nodes {
		n := &g.Nodes[i]
		n.IsVisited = false
		n.IsPath = false
		n.Distance = inf
		n.Heuristic = inf
		n.TotalCost = inf
		n.Previous = NoPrevious
	}
}

// PathTo walks back-links from idx and returns the indices from idx back to
// the root of its chain. The walk is bounded by the node count.
func (g *Grid) PathTo(idx int) []int {
	var path []int
	for cur := idx; cur != NoPrevious && len(path) <= len(g.Nodes); cur = g.Nodes[cur].Previous {
		path = append(path, cur)
	}
	return path
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	if g == nil {
		return nil
	}
	c := &Grid{Rows: g.Rows, Cols: g.Cols, Nodes: make([]Node, len(g.Nodes))}
	copy(c.Nodes, g.Nodes)
	return c
}

// Count returns the number of nodes matching fn.
func (g *Grid) Count(fn func(Node) bool) int {
	n := 0
	for _, node := range g.Nodes {
		if fn(node) {
			n++
		}
	}
	return n
}

// String renders the grid with the Parse alphabet plus '*' for path cells
// and 'o' for visited cells.
func (g *Grid) String() string {
	var b strings.Builder
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			n := g.Nodes[r*g.Cols+c]
			switch {
			case n.IsWall:
				b.WriteByte('#')
			case n.IsPath:
				b.WriteByte('*')
			case n.IsVisited:
				b.WriteByte('o')
			case n.IsMud:
				b.WriteByte('~')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
