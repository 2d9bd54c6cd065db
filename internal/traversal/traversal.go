// Package traversal provides a minimal binary search tree and the three
// depth-first traversal orders as step sequences. Each sequence yields
// exactly one visit step per node.
package traversal

import (
	"iter"

	"github.com/san-kum/algoviz/internal/step"
)

// Node owns its children. There are no parent links.
type Node struct {
	Value int   `json:"value"`
	Left  *Node `json:"left,omitempty"`
	Right *Node `json:"right,omitempty"`
}

// Insert adds v under root following BST order and returns the root.
// Duplicates go to the right.
func Insert(root *Node, v int) *Node {
	if root == nil {
		return &Node{Value: v}
	}
	cur := root
	for {
		if v < cur.Value {
			if cur.Left == nil {
				cur.Left = &Node{Value: v}
				return root
			}
			cur = cur.Left
		} else {
			if cur.Right == nil {
				cur.Right = &Node{Value: v}
				return root
			}
			cur = cur.Right
		}
	}
}

func FromValues(values ...int) *Node {
	var root *Node
	for _, v := range values {
		root = Insert(root, v)
	}
	return root
}

// Size counts the nodes under n.
func (n *Node) Size() int {
	if n == nil {
		return 0
	}
	return 1 + n.Left.Size() + n.Right.Size()
}

func (n *Node) Height() int {
	if n == nil {
		return 0
	}
	return 1 + max(n.Left.Height(), n.Right.Height())
}

var InOrderCode = []string{
	"inorder(node): if node is nil, return",
	"  inorder(node.left)",
	"  visit(node)",
	"  inorder(node.right)",
}

var PreOrderCode = []string{
	"preorder(node): if node is nil, return",
	"  visit(node)",
	"  preorder(node.left)",
	"  preorder(node.right)",
}

var PostOrderCode = []string{
	"postorder(node): if node is nil, return",
	"  postorder(node.left)",
	"  postorder(node.right)",
	"  visit(node)",
}

type order int

const (
	pre order = iota
	in
	post
)

func InOrder(root *Node) iter.Seq[step.Step]   { return walk(root, in) }
func PreOrder(root *Node) iter.Seq[step.Step]  { return walk(root, pre) }
func PostOrder(root *Node) iter.Seq[step.Step] { return walk(root, post) }

func walk(root *Node, o order) iter.Seq[step.Step] {
	visitLine := map[order]int{pre: 2, in: 3, post: 4}[o]
	return func(yield func(step.Step) bool) {
		index := 0
		visit := func(n *Node, depth int) bool {
			s := step.Step{
				Line:      visitLine,
				Node:      step.Int(n.Value),
				Comparing: []int{index},
				Variables: map[string]float64{"depth": float64(depth), "index": float64(index)},
			}
			index++
			return yield(s)
		}

		var rec func(n *Node, depth int) bool
		rec = func(n *Node, depth int) bool {
			if n == nil {
				return true
			}
			if o == pre && !visit(n, depth) {
				return false
			}
			if !rec(n.Left, depth+1) {
				return false
			}
			if o == in && !visit(n, depth) {
				return false
			}
			if !rec(n.Right, depth+1) {
				return false
			}
			if o == post && !visit(n, depth) {
				return false
			}
			return true
		}
		rec(root, 0)
	}
}

// Values returns the visited node values in order.
func Values(seq iter.Seq[step.Step]) []int {
	var out []int
	for s := range seq {
		if s.Node != nil {
			out = append(out, *s.Node)
		}
	}
	return out
}
