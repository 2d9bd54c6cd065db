package compare

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/algoviz/internal/catalog"
	"github.com/san-kum/algoviz/internal/config"
)

var example = []int{64, 34, 25, 12, 22, 11, 90}

func shared(a []int) InputFunc {
	return func() (catalog.Input, error) {
		return catalog.Input{Array: slices.Clone(a)}, nil
	}
}

func TestCompareSorts(t *testing.T) {
	reg := catalog.NewRegistry()
	names := []catalog.Name{catalog.Bubble, catalog.Quick, catalog.Merge, catalog.Counting}

	runs, err := Compare(context.Background(), reg, catalog.Sorting, names, shared(example))
	require.NoError(t, err)
	require.Len(t, runs, len(names))

	for i, r := range runs {
		assert.Equal(t, names[i], r.Entry.Name)
		assert.Equal(t, "completed", r.Result.Outcome)
		assert.Equal(t, []int{11, 12, 22, 25, 34, 64, 90}, r.Final.Array, "%s", r.Entry.Name)
		assert.Len(t, r.Series, r.Result.Steps)
	}
	assert.Equal(t, 64, example[0], "caller input must stay untouched")
}

func TestCompareBuildsInputPerRun(t *testing.T) {
	var calls atomic.Int32
	input := func() (catalog.Input, error) {
		calls.Add(1)
		return catalog.Input{Array: slices.Clone(example)}, nil
	}
	names := []catalog.Name{catalog.Selection, catalog.Heap, catalog.Shell}
	_, err := Compare(context.Background(), catalog.NewRegistry(), catalog.Sorting, names, input)
	require.NoError(t, err)
	assert.EqualValues(t, len(names), calls.Load())
}

func TestCompareSeriesIsCumulative(t *testing.T) {
	runs, err := Compare(context.Background(), catalog.NewRegistry(), catalog.Sorting,
		[]catalog.Name{catalog.Selection}, shared(example))
	require.NoError(t, err)

	s := runs[0].Series
	assert.True(t, slices.IsSorted(s))
	assert.Equal(t, 21.0, s[len(s)-1])
	assert.Equal(t, 21.0, runs[0].Result.Metrics["comparisons"])
}

func TestCompareUnknownAlgorithm(t *testing.T) {
	_, err := Compare(context.Background(), catalog.NewRegistry(), catalog.Sorting,
		[]catalog.Name{catalog.Bubble, "bogo"}, shared(example))
	assert.ErrorIs(t, err, catalog.ErrUnknownAlgorithm)
}

func TestCompareCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Compare(ctx, catalog.NewRegistry(), catalog.Sorting, []catalog.Name{catalog.Bubble}, shared(example))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompareTableAndChart(t *testing.T) {
	runs, err := Compare(context.Background(), catalog.NewRegistry(), catalog.Sorting,
		[]catalog.Name{catalog.Bubble, catalog.Insertion}, shared(example))
	require.NoError(t, err)

	table := Table(runs)
	assert.Contains(t, table, "bubble")
	assert.Contains(t, table, "insertion")
	assert.Contains(t, Chart(runs, 40, 8), "cumulative comparisons")
}

func TestChartSkipsRunsWithoutComparisons(t *testing.T) {
	runs, err := Compare(context.Background(), catalog.NewRegistry(), catalog.Sorting,
		[]catalog.Name{catalog.Counting}, shared(example))
	require.NoError(t, err)
	assert.Empty(t, Chart(runs, 40, 8))
}

func TestSweep(t *testing.T) {
	points, err := Sweep(context.Background(), catalog.NewRegistry(), catalog.Sorting,
		[]catalog.Name{catalog.Selection, catalog.Insertion}, []int{8, 16}, config.DefaultConfig())
	require.NoError(t, err)
	require.Len(t, points, 4)

	assert.Equal(t, SweepPoint{Algorithm: catalog.Selection, Size: 8, Steps: points[0].Steps, Comparisons: 28, Writes: points[0].Writes}, points[0])
	assert.Equal(t, 120.0, points[2].Comparisons)

	assert.Contains(t, SweepTable(points), "selection")
	assert.Contains(t, SweepChart(points, 30, 6), "comparisons by input size")
}

func TestSweepRejectsGrids(t *testing.T) {
	_, err := Sweep(context.Background(), catalog.NewRegistry(), catalog.Pathfinding,
		[]catalog.Name{catalog.BFS}, []int{4}, config.DefaultConfig())
	assert.Error(t, err)
}

const scenarioYAML = `
name: smoke
description: presets and overrides
steps:
  - preset: sorting/example
    algorithms: [bubble, merge]
  - preset: pathfinding/mud
    algorithms: [dijkstra, bfs]
  - family: searching
    algorithms: [binary, linear]
    array: [1, 3, 5, 7, 9]
    target: 7
  - family: sorting
    algorithms: [selection]
    sizes: [4, 8]
`

func TestRunScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioYAML), 0644))

	sc, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "smoke", sc.Name)
	require.Len(t, sc.Steps, 4)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	results, err := RunScenario(context.Background(), sc, catalog.NewRegistry(), logger)
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, catalog.Sorting, results[0].Family)
	assert.Len(t, results[0].Runs, 2)

	dijkstra, bfs := results[1].Runs[0], results[1].Runs[1]
	assert.Equal(t, catalog.Pathfinding, results[1].Family)
	assert.Equal(t, 9.0, dijkstra.Result.Metrics["path_length"])
	assert.Equal(t, 7.0, bfs.Result.Metrics["path_length"])

	for _, r := range results[2].Runs {
		require.NotNil(t, r.Final.Found, "%s", r.Entry.Name)
		assert.Equal(t, 3, *r.Final.Found)
	}

	assert.Len(t, results[3].Sweep, 2)
	assert.Equal(t, 6.0, results[3].Sweep[0].Comparisons)
}

func TestRunScenarioUnknownPreset(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{{Preset: "sorting/nope"}}}
	_, err := RunScenario(context.Background(), sc, catalog.NewRegistry(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorContains(t, err, "unknown preset")
}
