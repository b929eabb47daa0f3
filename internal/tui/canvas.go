// Package tui provides the Bubble Tea game interfaces.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// canvas is a fixed grid of terminal cells. Wide runes occupy two cells;
// the second holds an empty continuation.
type canvas struct {
	width  int
	height int
	cells  [][]styledRune
}

func newCanvas(width, height int) *canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c := &canvas{width: width, height: height, cells: make([][]styledRune, height)}
	for y := range c.cells {
		row := make([]styledRune, width)
		for x := range row {
			row[x] = blankRune
		}
		c.cells[y] = row
	}
	return c
}

func (c *canvas) inside(col, row int) bool {
	return col >= 0 && row >= 0 && col < c.width && row < c.height
}

func (c *canvas) set(col, row int, r rune, style lipgloss.Style) {
	w := runewidth.RuneWidth(r)
	if w == 0 || !c.inside(col, row) || (w == 2 && !c.inside(col+1, row)) {
		return
	}
	line := c.cells[row]
	if line[col].width == 0 && col > 0 {
		line[col-1] = blankRune
	}
	if line[col].width == 2 && col+1 < c.width {
		line[col+1] = blankRune
	}
	line[col] = styledRune{s: style.Render(string(r)), width: w, isSpace: r == ' '}
	if w == 2 {
		if col+2 < c.width && line[col+1].width == 2 {
			line[col+2] = blankRune
		}
		line[col+1] = styledRune{}
	}
}

// text writes s starting at col and returns the number of columns used.
func (c *canvas) text(col, row int, s string, style lipgloss.Style) int {
	start := col
	for _, r := range s {
		c.set(col, row, r, style)
		col += runewidth.RuneWidth(r)
	}
	return col - start
}

// put copies prestyled runes starting at col.
func (c *canvas) put(col, row int, runes []styledRune) {
	for _, r := range runes {
		if r.width == 0 {
			continue
		}
		if c.inside(col, row) && (r.width == 1 || c.inside(col+1, row)) {
			c.cells[row][col] = r
			if r.width == 2 {
				c.cells[row][col+1] = styledRune{}
			}
		}
		col += r.width
	}
}

// line draws a straight segment between two cells.
func (c *canvas) line(x0, y0, x1, y1 int, r rune, style lipgloss.Style) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.set(x0, y0, r, style)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// box draws a rectangle outline.
func (c *canvas) box(col, row, width, height int, style lipgloss.Style) {
	if width < 2 || height < 2 {
		return
	}
	right, bottom := col+width-1, row+height-1
	for x := col + 1; x < right; x++ {
		c.set(x, row, '─', style)
		c.set(x, bottom, '─', style)
	}
	for y := row + 1; y < bottom; y++ {
		c.set(col, y, '│', style)
		c.set(right, y, '│', style)
	}
	c.set(col, row, '┌', style)
	c.set(right, row, '┐', style)
	c.set(col, bottom, '└', style)
	c.set(right, bottom, '┘', style)
}

func (c *canvas) String() string {
	lines := make([]string, len(c.cells))
	for i, row := range c.cells {
		lines[i] = renderStyledRunes(row)
	}
	return strings.Join(lines, "\n")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
