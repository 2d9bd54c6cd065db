package searching

import (
	"iter"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/algoviz/internal/step"
)

var searchers = map[string]func([]int, int) iter.Seq[step.Step]{
	"linear":        Linear,
	"binary":        Binary,
	"jump":          Jump,
	"interpolation": Interpolation,
	"exponential":   Exponential,
}

var odds = []int{1, 3, 5, 7, 9, 11, 13, 15, 17, 19, 21, 23, 25}

// result returns the found index, or -1 when the run ends without one.
func result(t *testing.T, seq iter.Seq[step.Step]) int {
	t.Helper()
	steps := step.Collect(seq)
	require.NotEmpty(t, steps)
	for i, s := range steps {
		if s.Found != nil {
			require.Equal(t, len(steps)-1, i, "found must be the last step")
			return *s.Found
		}
	}
	return -1
}

func TestSearchExample(t *testing.T) {
	for name, search := range searchers {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, 6, result(t, search(odds, 13)))
			assert.Equal(t, -1, result(t, search(odds, 8)))
		})
	}
}

func TestSearchEveryPresentTarget(t *testing.T) {
	for name, search := range searchers {
		t.Run(name, func(t *testing.T) {
			for i, v := range odds {
				assert.Equal(t, i, result(t, search(odds, v)), "target %d", v)
			}
		})
	}
}

func TestSearchAbsentTargets(t *testing.T) {
	for name, search := range searchers {
		t.Run(name, func(t *testing.T) {
			for _, target := range []int{-5, 0, 2, 14, 24, 26, 1000} {
				assert.Equal(t, -1, result(t, search(odds, target)), "target %d", target)
			}
		})
	}
}

func TestSearchDegenerateInputs(t *testing.T) {
	inputs := map[string][]int{
		"empty":     {},
		"nil":       nil,
		"singleton": {4},
		"flat":      {2, 2, 2, 2},
	}
	for name, search := range searchers {
		for label, a := range inputs {
			t.Run(name+"/"+label, func(t *testing.T) {
				got := result(t, search(a, 3))
				assert.Equal(t, -1, got)
			})
		}
	}
}

func TestSearchFlatRangeHit(t *testing.T) {
	for name, search := range searchers {
		t.Run(name, func(t *testing.T) {
			got := result(t, search([]int{2, 2, 2, 2}, 2))
			require.GreaterOrEqual(t, got, 0)
			assert.Less(t, got, 4)
		})
	}
}

func TestFirstStepIsSnapshot(t *testing.T) {
	for name, search := range searchers {
		t.Run(name, func(t *testing.T) {
			a := []int{1, 2, 3}
			first, ok := firstStep(search(a, 2))
			require.True(t, ok)
			assert.Equal(t, a, first.Array)
			first.Array[0] = 99
			assert.Equal(t, 1, a[0], "snapshot must not alias the input")
		})
	}
}

func firstStep(seq iter.Seq[step.Step]) (step.Step, bool) {
	for s := range seq {
		return s, true
	}
	return step.Step{}, false
}

func TestLinearUnsorted(t *testing.T) {
	assert.Equal(t, 2, result(t, Linear([]int{9, 4, 7, 1}, 7)))

	for s := range Linear([]int{9, 4, 7, 1}, 5) {
		if s.Kind() == step.KindCompare {
			assert.Len(t, s.Comparing, 1)
		}
	}
}

func TestBinaryHalvesRange(t *testing.T) {
	var widths []int
	for s := range Binary(odds, 25) {
		if s.Line == 3 {
			widths = append(widths, s.Range.High-s.Range.Low+1)
		}
	}
	require.NotEmpty(t, widths)
	for i := 1; i < len(widths); i++ {
		assert.LessOrEqual(t, widths[i], widths[i-1]/2+1)
	}
}

func TestInterpolationProbesDirectly(t *testing.T) {
	probes := 0
	for s := range Interpolation(odds, 13) {
		if s.Line == 6 {
			probes++
		}
	}
	assert.Equal(t, 1, probes, "evenly spaced data needs a single probe")
}

func TestSearchExtremeValues(t *testing.T) {
	a := []int{math.MinInt, -1, 0, 1, 2, 3, 4, 5, 6, 7, 8, 4e18, math.MaxInt}
	for name, search := range searchers {
		t.Run(name, func(t *testing.T) {
			for i, v := range a {
				assert.Equal(t, i, boundedResult(t, search(a, v), 200), "target %d", v)
			}
			for _, target := range []int{3e18, -2, math.MaxInt - 1, math.MinInt + 1} {
				assert.Equal(t, -1, boundedResult(t, search(a, target), 200), "target %d", target)
			}
		})
	}
}

func TestInterpolateStaysInRange(t *testing.T) {
	a := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 4e18}
	pos := interpolate(a, 0, len(a)-1, 3e18)
	assert.GreaterOrEqual(t, pos, 0)
	assert.LessOrEqual(t, pos, len(a)-1)

	assert.Equal(t, 1, interpolate([]int{math.MinInt, 0, math.MaxInt}, 0, 2, 0))
	assert.Equal(t, 2, interpolate([]int{math.MinInt, 0, math.MaxInt}, 0, 2, math.MaxInt))
}

// boundedResult is result for sequences that might not end: it fails once
// limit steps have been pulled.
func boundedResult(t *testing.T, seq iter.Seq[step.Step], limit int) int {
	t.Helper()
	n, got := 0, -1
	for s := range seq {
		n++
		if n > limit {
			t.Fatalf("no result after %d steps", limit)
		}
		if s.Found != nil {
			got = *s.Found
		}
	}
	return got
}
