// Package searching implements instrumented search algorithms as lazy step
// sequences. All of them except Linear expect ascending input.
//
// A successful search ends with a step carrying Found. A failed search ends
// with a step that has no Found field; -1 never appears in a step.
package searching

import (
	"iter"
	"math"
	"math/bits"
	"slices"

	"github.com/san-kum/algoviz/internal/step"
)

func start(a []int, line int, r *step.Range) step.Step {
	return step.Step{Line: line, Array: slices.Clone(a), Range: r}
}

func probe(line, idx int, low, high int) step.Step {
	return step.Step{
		Line:      line,
		Comparing: []int{idx},
		Range:     &step.Range{Low: low, High: high},
		Variables: map[string]float64{"low": float64(low), "high": float64(high), "probe": float64(idx)},
	}
}

func found(line, idx int) step.Step {
	return step.Step{Line: line, Comparing: []int{idx}, Found: step.Int(idx)}
}

func fullRange(a []int) *step.Range {
	if len(a) == 0 {
		return nil
	}
	return &step.Range{Low: 0, High: len(a) - 1}
}

var LinearCode = []string{
	"for i from 0 to n-1",
	"  if a[i] == target",
	"    return i",
	"return -1",
}

// Linear scans one element at a time and tolerates unsorted input.
func Linear(a []int, target int) iter.Seq[step.Step] {
	return func(yield func(step.Step) bool) {
		if !yield(start(a, 1, nil)) {
			return
		}
		for i, v := range a {
			if !yield(step.Step{Line: 2, Comparing: []int{i}}) {
				return
			}
			if v == target {
				yield(found(3, i))
				return
			}
		}
		yield(step.Step{Line: 4})
	}
}

var BinaryCode = []string{
	"low = 0; high = n-1",
	"while low <= high",
	"  mid = floor((low+high)/2)",
	"  if a[mid] == target: return mid",
	"  if a[mid] < target: low = mid+1",
	"  else: high = mid-1",
	"return -1",
}

func Binary(a []int, target int) iter.Seq[step.Step] {
	return func(yield func(step.Step) bool) {
		if !yield(start(a, 1, fullRange(a))) {
			return
		}
		low, high := 0, len(a)-1
		if idx, ok := binary(a, target, low, high, 3, yield); ok {
			yield(found(4, idx))
			return
		}
	}
}

// binary runs the halving loop shared by Binary and Exponential, starting
// its line numbers at midLine. It reports the index on a hit. On a miss it
// has already yielded the closing step.
func binary(a []int, target, low, high, midLine int, yield func(step.Step) bool) (int, bool) {
	for low <= high {
		mid := low + (high-low)/2
		if !yield(probe(midLine, mid, low, high)) {
			return 0, false
		}
		switch {
		case a[mid] == target:
			return mid, true
		case a[mid] < target:
			low = mid + 1
			if !yield(step.Step{Line: midLine + 2, Range: &step.Range{Low: low, High: high}}) {
				return 0, false
			}
		default:
			high = mid - 1
			if !yield(step.Step{Line: midLine + 3, Range: &step.Range{Low: low, High: high}}) {
				return 0, false
			}
		}
	}
	yield(step.Step{Line: midLine + 4})
	return 0, false
}

var JumpCode = []string{
	"block = floor(sqrt(n)); prev = 0; next = block",
	"while a[min(next, n)-1] < target",
	"  prev = next; next = next+block",
	"  if prev >= n: return -1",
	"while a[prev] < target",
	"  prev = prev+1",
	"  if prev == min(next, n): return -1",
	"if a[prev] == target: return prev",
	"return -1",
}

// Jump probes block ends of size floor(sqrt(n)) and then scans the located
// block linearly.
func Jump(a []int, target int) iter.Seq[step.Step] {
	return func(yield func(step.Step) bool) {
		n := len(a)
		if !yield(start(a, 1, fullRange(a))) {
			return
		}
		if n == 0 {
			yield(step.Step{Line: 9})
			return
		}
		block := int(math.Sqrt(float64(n)))
		prev, next := 0, block
		for {
			end := min(next, n) - 1
			if !yield(probe(2, end, prev, end)) {
				return
			}
			if a[end] >= target {
				break
			}
			prev = next
			next += block
			if prev >= n {
				yield(step.Step{Line: 4})
				return
			}
		}
		for {
			if !yield(probe(5, prev, prev, min(next, n)-1)) {
				return
			}
			if a[prev] >= target {
				break
			}
			prev++
			if prev == min(next, n) {
				yield(step.Step{Line: 7})
				return
			}
		}
		if a[prev] == target {
			yield(found(8, prev))
			return
		}
		yield(step.Step{Line: 9})
	}
}

var InterpolationCode = []string{
	"low = 0; high = n-1",
	"while low <= high and a[low] <= target <= a[high]",
	"  if a[high] == a[low]",
	"    if a[low] == target: return low",
	"    return -1",
	"  pos = low + (target-a[low])*(high-low)/(a[high]-a[low])",
	"  if a[pos] == target: return pos",
	"  if a[pos] < target: low = pos+1",
	"  else: high = pos-1",
	"return -1",
}

// interpolate returns low + (target-a[low])*(high-low)/(a[high]-a[low]) for
// a[low] <= target <= a[high] and a[low] < a[high]. The differences are
// taken as unsigned and the product kept in 128 bits, so values near the int
// limits cannot overflow and the result always lies in [low, high].
func interpolate(a []int, low, high, target int) int {
	num := uint64(target) - uint64(a[low])
	den := uint64(a[high]) - uint64(a[low])
	hi, lo := bits.Mul64(num, uint64(high-low))
	q, _ := bits.Div64(hi, lo, den)
	return low + int(q)
}

// Interpolation estimates the probe position from the values at the range
// ends. A flat range is resolved directly instead of dividing by zero.
func Interpolation(a []int, target int) iter.Seq[step.Step] {
	return func(yield func(step.Step) bool) {
		if !yield(start(a, 1, fullRange(a))) {
			return
		}
		low, high := 0, len(a)-1
		for low <= high && target >= a[low] && target <= a[high] {
			if !yield(step.Step{Line: 2, Comparing: []int{low, high}, Range: &step.Range{Low: low, High: high}}) {
				return
			}
			if a[high] == a[low] {
				if a[low] == target {
					yield(found(4, low))
				} else {
					yield(step.Step{Line: 5})
				}
				return
			}
			pos := interpolate(a, low, high, target)
			if !yield(probe(6, pos, low, high)) {
				return
			}
			switch {
			case a[pos] == target:
				yield(found(7, pos))
				return
			case a[pos] < target:
				low = pos + 1
				if !yield(step.Step{Line: 8, Range: &step.Range{Low: low, High: high}}) {
					return
				}
			default:
				high = pos - 1
				if !yield(step.Step{Line: 9, Range: &step.Range{Low: low, High: high}}) {
					return
				}
			}
		}
		yield(step.Step{Line: 10})
	}
}

var ExponentialCode = []string{
	"if n == 0: return -1",
	"if a[0] == target: return 0",
	"i = 1",
	"while i < n and a[i] <= target: i = i*2",
	"low = i/2; high = min(i, n-1)",
	"while low <= high",
	"  mid = floor((low+high)/2)",
	"  if a[mid] == target: return mid",
	"  if a[mid] < target: low = mid+1",
	"  else: high = mid-1",
	"return -1",
}

// Exponential doubles a bound until it passes the target, then binary
// searches the last doubling interval.
func Exponential(a []int, target int) iter.Seq[step.Step] {
	return func(yield func(step.Step) bool) {
		n := len(a)
		if !yield(start(a, 1, fullRange(a))) {
			return
		}
		if n == 0 {
			yield(step.Step{Line: 11})
			return
		}
		if !yield(step.Step{Line: 2, Comparing: []int{0}}) {
			return
		}
		if a[0] == target {
			yield(found(2, 0))
			return
		}
		i := 1
		for i < n {
			if !yield(probe(4, i, i/2, min(i, n-1))) {
				return
			}
			if a[i] > target {
				break
			}
			i *= 2
		}
		low, high := i/2, min(i, n-1)
		if !yield(step.Step{Line: 5, Range: &step.Range{Low: low, High: high}}) {
			return
		}
		if idx, ok := binary(a, target, low, high, 7, yield); ok {
			yield(found(8, idx))
		}
	}
}
