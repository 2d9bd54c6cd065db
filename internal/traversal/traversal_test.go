package traversal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/algoviz/internal/step"
)

func sample() *Node {
	//        50
	//      /    \
	//    30      70
	//   /  \    /  \
	//  20  40  60  80
	return FromValues(50, 30, 70, 20, 40, 60, 80)
}

func TestOrders(t *testing.T) {
	assert.Equal(t, []int{20, 30, 40, 50, 60, 70, 80}, Values(InOrder(sample())))
	assert.Equal(t, []int{50, 30, 20, 40, 70, 60, 80}, Values(PreOrder(sample())))
	assert.Equal(t, []int{20, 40, 30, 60, 80, 70, 50}, Values(PostOrder(sample())))
}

func TestOneVisitPerNode(t *testing.T) {
	root := FromValues(5, 3, 8, 1, 4, 7, 9, 2, 6)
	for name, seq := range map[string]func(*Node) []step.Step{
		"in":   func(n *Node) []step.Step { return step.Collect(InOrder(n)) },
		"pre":  func(n *Node) []step.Step { return step.Collect(PreOrder(n)) },
		"post": func(n *Node) []step.Step { return step.Collect(PostOrder(n)) },
	} {
		t.Run(name, func(t *testing.T) {
			steps := seq(root)
			require.Len(t, steps, root.Size())
			for i, s := range steps {
				assert.Equal(t, step.KindVisit, s.Kind())
				assert.Equal(t, float64(i), s.Variables["index"])
			}
		})
	}
}

func TestDepth(t *testing.T) {
	depths := map[int]float64{}
	for s := range PreOrder(sample()) {
		depths[*s.Node] = s.Variables["depth"]
	}
	assert.Equal(t, 0.0, depths[50])
	assert.Equal(t, 1.0, depths[70])
	assert.Equal(t, 2.0, depths[20])
}

func TestEmptyTree(t *testing.T) {
	assert.Empty(t, step.Collect(InOrder(nil)))
	assert.Empty(t, step.Collect(PreOrder(nil)))
	assert.Empty(t, step.Collect(PostOrder(nil)))
}

func TestInsertDuplicatesGoRight(t *testing.T) {
	root := FromValues(2, 2, 1)
	require.NotNil(t, root.Right)
	assert.Equal(t, 2, root.Right.Value)
	assert.Equal(t, []int{1, 2, 2}, Values(InOrder(root)))
}

func TestSizeHeight(t *testing.T) {
	assert.Equal(t, 7, sample().Size())
	assert.Equal(t, 3, sample().Height())
	var empty *Node
	assert.Zero(t, empty.Size())
	assert.Equal(t, 4, FromValues(1, 2, 3, 4).Height(), "sorted input degenerates to a list")
}

func TestEarlyBreak(t *testing.T) {
	n := 0
	for range InOrder(sample()) {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}
