package viz

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/algoviz/internal/grid"
	"github.com/san-kum/algoviz/internal/step"
	"github.com/san-kum/algoviz/internal/traversal"
)

// role picks the color of array index i in step s. Found wins over
// comparing, which wins over pivot and range.
func role(i int, s step.Step, t Theme) lipgloss.Color {
	switch {
	case s.Found != nil && *s.Found == i:
		return t.Found
	case slices.Contains(s.Comparing, i):
		return t.Compare
	case s.Pivot != nil && *s.Pivot == i:
		return t.Pivot
	case s.Range != nil && i >= s.Range.Low && i <= s.Range.High:
		return t.Range
	}
	return t.Bar
}

// renderArray draws a as vertical bars, one column per element. Arrays
// wider than maxBars fall back to a braille canvas without highlights.
func renderArray(a []int, s step.Step, t Theme, maxBars, height int) string {
	if len(a) == 0 {
		return t.fg(t.Muted).Render("(empty)")
	}
	hi := max(slices.Max(a), 1)
	if len(a) > maxBars {
		c := NewCanvas(maxBars, height)
		c.Bars(a, hi)
		return t.fg(t.Bar).Render(strings.TrimRight(c.String(), "\n"))
	}

	heights := make([]int, len(a))
	for i, v := range a {
		if v > 0 {
			heights[i] = max(1, (v*height+hi-1)/hi)
		}
	}
	var b strings.Builder
	for row := height; row >= 1; row-- {
		for i := range a {
			cell := "  "
			if heights[i] >= row {
				cell = t.fg(role(i, s, t)).Render("█") + " "
			}
			b.WriteString(cell)
		}
		b.WriteByte('\n')
	}
	for i := range a {
		mark := "  "
		switch {
		case s.Found != nil && *s.Found == i:
			mark = t.fg(t.Found).Render("✓") + " "
		case slices.Contains(s.Comparing, i):
			mark = t.fg(t.Compare).Render("^") + " "
		}
		b.WriteString(mark)
	}
	return b.String()
}

// renderGrid draws one character per cell. The cell the step points at is
// drawn over everything else.
func renderGrid(g *grid.Grid, s step.Step, start, end grid.Point, t Theme) string {
	if g.Empty() {
		return t.fg(t.Muted).Render("(empty grid)")
	}
	current := -1
	if len(s.Comparing) > 0 {
		current = s.Comparing[0]
	}
	var b strings.Builder
	for r := range g.Rows {
		for c := range g.Cols {
			p := grid.Point{Row: r, Col: c}
			idx := g.Index(p)
			n := g.Nodes[idx]
			var cell string
			switch {
			case idx == current:
				cell = t.fg(t.Compare).Bold(true).Render("◆")
			case p == start:
				cell = t.fg(t.Pivot).Bold(true).Render("S")
			case p == end:
				cell = t.fg(t.Pivot).Bold(true).Render("E")
			case n.IsPath:
				cell = t.fg(t.Path).Render("●")
			case n.IsWall:
				cell = t.fg(t.Wall).Render("█")
			case n.IsVisited && n.IsMud:
				cell = t.fg(t.Visited).Render("≈")
			case n.IsVisited:
				cell = t.fg(t.Visited).Render("·")
			case n.IsMud:
				cell = t.fg(t.Mud).Render("~")
			default:
				cell = t.fg(t.Muted).Render(".")
			}
			b.WriteString(cell + " ")
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// renderTree lays the tree on its side, right subtree on top, marking
// visited values and the current one.
func renderTree(root *traversal.Node, visited []int, current *int, t Theme) string {
	if root == nil {
		return t.fg(t.Muted).Render("(empty tree)")
	}
	seen := make(map[int]bool, len(visited))
	for _, v := range visited {
		seen[v] = true
	}
	var b strings.Builder
	var rec func(n *traversal.Node, depth int)
	rec = func(n *traversal.Node, depth int) {
		if n == nil {
			return
		}
		rec(n.Right, depth+1)
		label := fmt.Sprintf("%d", n.Value)
		switch {
		case current != nil && *current == n.Value:
			label = t.fg(t.Compare).Bold(true).Render(label)
		case seen[n.Value]:
			label = t.fg(t.Path).Render(label)
		default:
			label = t.fg(t.Muted).Render(label)
		}
		b.WriteString(strings.Repeat("    ", depth) + label + "\n")
		rec(n.Left, depth+1)
	}
	rec(root, 0)
	return b.String()
}

// renderCode lists the pseudo-code with the active line marked. Line 0
// highlights nothing.
func renderCode(lines []string, line int, t Theme) string {
	var b strings.Builder
	for i, l := range lines {
		text := fmt.Sprintf("%2d  %s", i+1, l)
		if i+1 == line {
			b.WriteString(t.fg(t.Compare).Bold(true).Render("▸ "+text) + "\n")
		} else {
			b.WriteString("  " + codeStyle.Render(text) + "\n")
		}
	}
	return b.String()
}

func renderVariables(vars map[string]float64) string {
	if len(vars) == 0 {
		return ""
	}
	var b strings.Builder
	for _, k := range slices.Sorted(maps.Keys(vars)) {
		b.WriteString(labelStyle.Render(k) + valueStyle.Render(fmt.Sprintf("%g", vars[k])) + "\n")
	}
	return b.String()
}
