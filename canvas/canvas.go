// Package canvas provides a character grid used to draw diagrams for the
// terminal and for plain-text export.
package canvas

import (
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// continuation marks the second cell of a double-width rune.
const continuation = '\x00'

// Cell is one character position.
type Cell struct {
	Rune  rune
	Style Style
}

// Canvas is a fixed-size grid of cells. Origin (0,0) is top-left, x grows
// rightward and y downward. Writes outside the grid are dropped.
//
// Canvas is not safe for concurrent writes.
type Canvas struct {
	cells  [][]Cell
	width  int
	height int
}

// New returns a blank canvas, or nil if either dimension is not positive.
func New(width, height int) *Canvas {
	if width <= 0 || height <= 0 {
		return nil
	}
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
	}
	c := &Canvas{cells: cells, width: width, height: height}
	c.Clear()
	return c
}

// Size returns the width and height of the canvas.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// Get returns the cell at (x, y); a blank cell when out of bounds.
func (c *Canvas) Get(x, y int) Cell {
	if !c.inside(x, y) {
		return Cell{Rune: ' '}
	}
	return c.cells[y][x]
}

// Set writes one cell and reports whether it was inside the canvas.
func (c *Canvas) Set(x, y int, r rune, style Style) bool {
	if !c.inside(x, y) {
		return false
	}
	c.cells[y][x] = Cell{Rune: r, Style: style}
	return true
}

// Clear resets every cell to a blank.
func (c *Canvas) Clear() {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = Cell{Rune: ' '}
		}
	}
}

// DrawLine draws from (x1,y1) to (x2,y2) inclusive using Bresenham's
// algorithm.
func (c *Canvas) DrawLine(x1, y1, x2, y2 int, r rune, style Style) {
	dx, dy := abs(x2-x1), abs(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	x, y := x1, y1
	if dx > dy {
		e := dx / 2
		for x != x2 {
			c.Set(x, y, r, style)
			e -= dy
			if e < 0 {
				y += sy
				e += dx
			}
			x += sx
		}
	} else {
		e := dy / 2
		for y != y2 {
			c.Set(x, y, r, style)
			e -= dx
			if e < 0 {
				x += sx
				e += dy
			}
			y += sy
		}
	}
	c.Set(x2, y2, r, style)
}

// DrawBox outlines the rectangle with top-left corner (x, y). Boxes smaller
// than 2x2 are not drawn. Parts outside the canvas are clipped.
func (c *Canvas) DrawBox(x, y, width, height int, box BoxStyle, style Style) {
	if width < 2 || height < 2 {
		return
	}
	right, bottom := x+width-1, y+height-1
	for i := x + 1; i < right; i++ {
		c.Set(i, y, box.Horizontal, style)
		c.Set(i, bottom, box.Horizontal, style)
	}
	for j := y + 1; j < bottom; j++ {
		c.Set(x, j, box.Vertical, style)
		c.Set(right, j, box.Vertical, style)
	}
	c.Set(x, y, box.TopLeft, style)
	c.Set(right, y, box.TopRight, style)
	c.Set(x, bottom, box.BottomLeft, style)
	c.Set(right, bottom, box.BottomRight, style)
}

// Fill sets every cell of the rectangle to r.
func (c *Canvas) Fill(x, y, width, height int, r rune, style Style) {
	for j := y; j < y+height; j++ {
		for i := x; i < x+width; i++ {
			c.Set(i, j, r, style)
		}
	}
}

// DrawText writes text starting at (x, y) and returns the number of cells it
// advanced. Zero-width runes are skipped; a wide rune that would straddle the
// right edge ends the text.
func (c *Canvas) DrawText(x, y int, text string, style Style) int {
	cur := x
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if w == 2 && cur+1 == c.width {
			break
		}
		c.Set(cur, y, r, style)
		if w == 2 {
			c.Set(cur+1, y, continuation, style)
		}
		cur += w
	}
	return cur - x
}

// Row returns row y as text, trailing blanks included.
func (c *Canvas) Row(y int) string {
	if y < 0 || y >= c.height {
		return ""
	}
	var sb strings.Builder
	for _, cell := range c.cells[y] {
		if cell.Rune != continuation {
			sb.WriteRune(cell.Rune)
		}
	}
	return sb.String()
}

// String returns the canvas as newline-separated rows with trailing blanks
// removed.
func (c *Canvas) String() string {
	rows := make([]string, c.height)
	for y := range rows {
		rows[y] = strings.TrimRight(c.Row(y), " ")
	}
	return strings.Join(rows, "\n")
}

// ColoredString is String with each run of same-styled cells wrapped in the
// colour the palette gives its style. Styles missing from the palette are
// written plain.
func (c *Canvas) ColoredString(palette map[Style]*color.Color) string {
	var out strings.Builder
	for y := 0; y < c.height; y++ {
		row := c.cells[y]
		end := len(row)
		for end > 0 && row[end-1].Rune == ' ' {
			end--
		}
		var run strings.Builder
		runStyle := StyleDefault
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if col, ok := palette[runStyle]; ok {
				out.WriteString(col.Sprint(run.String()))
			} else {
				out.WriteString(run.String())
			}
			run.Reset()
		}
		for _, cell := range row[:end] {
			if cell.Rune == continuation {
				continue
			}
			if cell.Style != runStyle {
				flush()
				runStyle = cell.Style
			}
			run.WriteRune(cell.Rune)
		}
		flush()
		if y < c.height-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
