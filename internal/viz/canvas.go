package viz

import "strings"

// Braille cells hold 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// starting at U+2800.
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas packs a bar chart into braille cells, so a canvas of w x h cells
// shows 2w bars at 4h dots of resolution. It is used for arrays too wide
// for one terminal column per element.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = []rune(strings.Repeat(string(rune(blank)), w))
	}
	return c
}

// Set lights the dot at (x, y), counted from the top left. Points off the
// canvas are ignored.
func (c *Canvas) Set(x, y int) {
	col, row := x/2, y/4
	if x < 0 || y < 0 || col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= dotBits[y%4][x%2]
}

// Bars draws one column of dots per value, scaled so hi reaches the top.
// Values beyond the dot width are sampled evenly.
func (c *Canvas) Bars(values []int, hi int) {
	if len(values) == 0 || hi <= 0 {
		return
	}
	w, h := c.Width*2, c.Height*4
	cols := min(w, len(values))
	for x := range cols {
		v := max(values[x*len(values)/cols], 0)
		top := h - (min(v, hi)*h+hi-1)/hi
		for y := top; y < h; y++ {
			c.Set(x, y)
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}
