package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/algoviz/internal/grid"
	"github.com/san-kum/algoviz/internal/traversal"
)

func sampleInput(t *testing.T, family Family) Input {
	t.Helper()
	switch family {
	case Sorting:
		return Input{Array: []int{64, 34, 25, 12, 22, 11, 90}}
	case Searching:
		return Input{Array: []int{1, 3, 5, 7, 9, 11, 13, 15, 17, 19, 21, 23, 25}, Target: 13}
	case Pathfinding:
		g, start, end, err := grid.Parse([]string{
			"S..#.",
			".#...",
			".~.#.",
			"...#E",
		})
		require.NoError(t, err)
		return Input{Grid: g, Start: start, End: end}
	default:
		return Input{Tree: traversal.FromValues(4, 2, 6, 1, 3, 5, 7)}
	}
}

func TestRegistryCoversEveryName(t *testing.T) {
	r := NewRegistry()
	want := map[Family]int{Sorting: 11, Searching: 5, Pathfinding: 5, Traversal: 3}
	for family, n := range want {
		assert.Len(t, r.List(family), n, "family %s", family)
	}
}

func TestTraceLinesMatchListing(t *testing.T) {
	r := NewRegistry()
	for _, family := range Families() {
		for _, e := range r.List(family) {
			t.Run(string(family)+"/"+string(e.Name), func(t *testing.T) {
				require.NotEmpty(t, e.Trace)
				require.NotEmpty(t, e.Complexity.Worst)

				seq, _, err := r.New(family, e.Name, sampleInput(t, family))
				require.NoError(t, err)
				steps := 0
				for s := range seq {
					steps++
					assert.GreaterOrEqual(t, s.Line, 0)
					assert.LessOrEqual(t, s.Line, len(e.Trace), "line %d has no listing entry", s.Line)
				}
				assert.Positive(t, steps)
			})
		}
	}
}

func TestComplexityMatchesImplementation(t *testing.T) {
	r := NewRegistry()
	quick, err := r.Lookup(Sorting, Quick)
	require.NoError(t, err)
	assert.Equal(t, "O(n²)", quick.Complexity.Worst)

	merge, err := r.Lookup(Sorting, Merge)
	require.NoError(t, err)
	assert.Equal(t, "O(n)", merge.Complexity.Space)

	bubble, err := r.Lookup(Sorting, Bubble)
	require.NoError(t, err)
	assert.Equal(t, "O(n)", bubble.Complexity.Best, "bubble stops after a clean pass")
}

func TestTypedAccessors(t *testing.T) {
	r := NewRegistry()

	sortFn, e, err := r.Sorting(Heap)
	require.NoError(t, err)
	assert.Equal(t, "Heap Sort", e.Title)
	assert.NotNil(t, sortFn)

	searchFn, _, err := r.Searching(Binary)
	require.NoError(t, err)
	assert.NotNil(t, searchFn)

	pathFn, _, err := r.Pathfinding(AStar)
	require.NoError(t, err)
	assert.NotNil(t, pathFn)

	walkFn, _, err := r.Traversal(PostOrder)
	require.NoError(t, err)
	assert.NotNil(t, walkFn)

	_, _, err = r.Sorting(Binary)
	assert.True(t, errors.Is(err, ErrUnknownAlgorithm))
}

func TestLookupErrors(t *testing.T) {
	r := NewRegistry()
	_, err := r.Lookup("graphs", Bubble)
	assert.ErrorIs(t, err, ErrUnknownFamily)

	_, err = r.Lookup(Sorting, "bogo")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)

	e, err := r.Lookup(Sorting, "BUBBLE")
	require.NoError(t, err)
	assert.Equal(t, Bubble, e.Name)
}

func TestNewRequiresGrid(t *testing.T) {
	_, _, err := NewRegistry().New(Pathfinding, Dijkstra, Input{})
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestNewRejectsUnknownHeuristic(t *testing.T) {
	_, _, err := NewRegistry().New(Pathfinding, AStar, Input{Grid: grid.New(2, 2), Heuristic: "octile"})
	assert.Error(t, err)
}

func TestParseFamily(t *testing.T) {
	f, err := ParseFamily(" Sorting ")
	require.NoError(t, err)
	assert.Equal(t, Sorting, f)

	_, err = ParseFamily("graphs")
	assert.ErrorIs(t, err, ErrUnknownFamily)
}
