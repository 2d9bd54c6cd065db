package catalog

import (
	"fmt"
	"iter"
	"strings"

	"github.com/san-kum/algoviz/internal/pathfinding"
	"github.com/san-kum/algoviz/internal/searching"
	"github.com/san-kum/algoviz/internal/sorting"
	"github.com/san-kum/algoviz/internal/step"
	"github.com/san-kum/algoviz/internal/traversal"
)

type registration struct {
	entry    Entry
	sort     SortFunc
	search   SearchFunc
	path     PathFunc
	traverse TraverseFunc
}

type Registry struct {
	byFamily map[Family]map[Name]*registration
	order    map[Family][]Name
}

func NewRegistry() *Registry {
	r := &Registry{
		byFamily: make(map[Family]map[Name]*registration),
		order:    make(map[Family][]Name),
	}

	sorts := []struct {
		name  Name
		title string
		fn    SortFunc
		code  []string
		c     Complexity
	}{
		{Bubble, "Bubble Sort", sorting.Bubble, sorting.BubbleCode, Complexity{"O(n)", "O(n²)", "O(n²)", "O(1)"}},
		{Quick, "Quick Sort", sorting.Quick, sorting.QuickCode, Complexity{"O(n log n)", "O(n log n)", "O(n²)", "O(n)"}},
		{Merge, "Merge Sort", sorting.Merge, sorting.MergeCode, Complexity{"O(n log n)", "O(n log n)", "O(n log n)", "O(n)"}},
		{Selection, "Selection Sort", sorting.Selection, sorting.SelectionCode, Complexity{"O(n²)", "O(n²)", "O(n²)", "O(1)"}},
		{Insertion, "Insertion Sort", sorting.Insertion, sorting.InsertionCode, Complexity{"O(n)", "O(n²)", "O(n²)", "O(1)"}},
		{Heap, "Heap Sort", sorting.Heap, sorting.HeapCode, Complexity{"O(n log n)", "O(n log n)", "O(n log n)", "O(1)"}},
		{Shell, "Shell Sort", sorting.Shell, sorting.ShellCode, Complexity{"O(n log n)", "O(n^1.5)", "O(n²)", "O(1)"}},
		{Cocktail, "Cocktail Shaker Sort", sorting.Cocktail, sorting.CocktailCode, Complexity{"O(n)", "O(n²)", "O(n²)", "O(1)"}},
		{Gnome, "Gnome Sort", sorting.Gnome, sorting.GnomeCode, Complexity{"O(n)", "O(n²)", "O(n²)", "O(1)"}},
		{Comb, "Comb Sort", sorting.Comb, sorting.CombCode, Complexity{"O(n log n)", "O(n²/2^p)", "O(n²)", "O(1)"}},
		{Counting, "Counting Sort", sorting.Counting, sorting.CountingCode, Complexity{"O(n+k)", "O(n+k)", "O(n+k)", "O(k)"}},
	}
	for _, s := range sorts {
		r.add(&registration{entry: Entry{Name: s.name, Family: Sorting, Title: s.title, Trace: s.code, Complexity: s.c}, sort: s.fn})
	}

	searches := []struct {
		name  Name
		title string
		fn    SearchFunc
		code  []string
		c     Complexity
	}{
		{Linear, "Linear Search", searching.Linear, searching.LinearCode, Complexity{"O(1)", "O(n)", "O(n)", "O(1)"}},
		{Binary, "Binary Search", searching.Binary, searching.BinaryCode, Complexity{"O(1)", "O(log n)", "O(log n)", "O(1)"}},
		{Jump, "Jump Search", searching.Jump, searching.JumpCode, Complexity{"O(1)", "O(√n)", "O(√n)", "O(1)"}},
		{Interpolation, "Interpolation Search", searching.Interpolation, searching.InterpolationCode, Complexity{"O(1)", "O(log log n)", "O(n)", "O(1)"}},
		{Exponential, "Exponential Search", searching.Exponential, searching.ExponentialCode, Complexity{"O(1)", "O(log n)", "O(log n)", "O(1)"}},
	}
	for _, s := range searches {
		r.add(&registration{entry: Entry{Name: s.name, Family: Searching, Title: s.title, Trace: s.code, Complexity: s.c}, search: s.fn})
	}

	paths := []struct {
		name  Name
		title string
		fn    PathFunc
		code  []string
		c     Complexity
	}{
		{Dijkstra, "Dijkstra", pathfinding.Dijkstra, pathfinding.DijkstraCode, Complexity{"O(E log V)", "O(E log V)", "O(E log V)", "O(V)"}},
		{AStar, "A*", pathfinding.AStar, pathfinding.AStarCode, Complexity{"O(E)", "O(E log V)", "O(E log V)", "O(V)"}},
		{Greedy, "Greedy Best-First", pathfinding.Greedy, pathfinding.GreedyCode, Complexity{"O(E)", "O(E log V)", "O(E log V)", "O(V)"}},
		{BFS, "Breadth-First Search", pathfinding.BFS, pathfinding.BFSCode, Complexity{"O(V+E)", "O(V+E)", "O(V+E)", "O(V)"}},
		{DFS, "Depth-First Search", pathfinding.DFS, pathfinding.DFSCode, Complexity{"O(V+E)", "O(V+E)", "O(V+E)", "O(E)"}},
	}
	for _, p := range paths {
		r.add(&registration{entry: Entry{Name: p.name, Family: Pathfinding, Title: p.title, Trace: p.code, Complexity: p.c}, path: p.fn})
	}

	walks := []struct {
		name  Name
		title string
		fn    TraverseFunc
		code  []string
	}{
		{InOrder, "In-Order Traversal", traversal.InOrder, traversal.InOrderCode},
		{PreOrder, "Pre-Order Traversal", traversal.PreOrder, traversal.PreOrderCode},
		{PostOrder, "Post-Order Traversal", traversal.PostOrder, traversal.PostOrderCode},
	}
	for _, w := range walks {
		c := Complexity{"O(n)", "O(n)", "O(n)", "O(h)"}
		r.add(&registration{entry: Entry{Name: w.name, Family: Traversal, Title: w.title, Trace: w.code, Complexity: c}, traverse: w.fn})
	}

	return r
}

func (r *Registry) add(reg *registration) {
	f := reg.entry.Family
	if r.byFamily[f] == nil {
		r.byFamily[f] = make(map[Name]*registration)
	}
	r.byFamily[f][reg.entry.Name] = reg
	r.order[f] = append(r.order[f], reg.entry.Name)
}

func (r *Registry) lookup(family Family, name Name) (*registration, error) {
	names, ok := r.byFamily[family]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFamily, family)
	}
	reg, ok := names[Name(strings.ToLower(string(name)))]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrUnknownAlgorithm, family, name)
	}
	return reg, nil
}

func (r *Registry) Lookup(family Family, name Name) (Entry, error) {
	reg, err := r.lookup(family, name)
	if err != nil {
		return Entry{}, err
	}
	return reg.entry, nil
}

// List returns the entries of a family in registration order.
func (r *Registry) List(family Family) []Entry {
	out := make([]Entry, 0, len(r.order[family]))
	for _, name := range r.order[family] {
		out = append(out, r.byFamily[family][name].entry)
	}
	return out
}

func (r *Registry) Sorting(name Name) (SortFunc, Entry, error) {
	reg, err := r.lookup(Sorting, name)
	if err != nil {
		return nil, Entry{}, err
	}
	return reg.sort, reg.entry, nil
}

func (r *Registry) Searching(name Name) (SearchFunc, Entry, error) {
	reg, err := r.lookup(Searching, name)
	if err != nil {
		return nil, Entry{}, err
	}
	return reg.search, reg.entry, nil
}

func (r *Registry) Pathfinding(name Name) (PathFunc, Entry, error) {
	reg, err := r.lookup(Pathfinding, name)
	if err != nil {
		return nil, Entry{}, err
	}
	return reg.path, reg.entry, nil
}

func (r *Registry) Traversal(name Name) (TraverseFunc, Entry, error) {
	reg, err := r.lookup(Traversal, name)
	if err != nil {
		return nil, Entry{}, err
	}
	return reg.traverse, reg.entry, nil
}

// New builds a ready-to-run sequence for any family. The input is used as
// is: sorting mutates in.Array and pathfinding mutates in.Grid, so callers
// that share input must clone it first.
func (r *Registry) New(family Family, name Name, in Input) (iter.Seq[step.Step], Entry, error) {
	reg, err := r.lookup(family, name)
	if err != nil {
		return nil, Entry{}, err
	}
	switch family {
	case Sorting:
		return reg.sort(in.Array), reg.entry, nil
	case Searching:
		return reg.search(in.Array, in.Target), reg.entry, nil
	case Pathfinding:
		if in.Grid == nil {
			return nil, Entry{}, fmt.Errorf("%w: %s needs a grid", ErrMissingInput, name)
		}
		h, err := pathfinding.ParseHeuristic(in.Heuristic)
		if err != nil {
			return nil, Entry{}, err
		}
		return reg.path(in.Grid, in.Start, in.End, pathfinding.WithHeuristic(h)), reg.entry, nil
	default:
		return reg.traverse(in.Tree), reg.entry, nil
	}
}
