// Package table holds a loaded CSV table and renders the currently selected
// columns as padded, pipe-joined text lines.
package table

import (
	"strings"

	runewidth "github.com/mattn/go-runewidth"
)

// Separator joins the visible cells of a line.
const Separator = " | "

// Cell is a single table value annotated with its display width.
// MaxWidth is the width the cell is padded to when rendered.
type Cell struct {
	Value    string
	Width    int
	MaxWidth int
	Index    int
}

// NewCell creates a cell for the column at index.
func NewCell(value string, index int) Cell {
	return Cell{
		Value: value,
		Width: runewidth.StringWidth(value),
		Index: index,
	}
}

// Padding returns the number of spaces appended to the value on render.
func (c Cell) Padding() int {
	return max(c.MaxWidth, c.Width) - c.Width
}

// Padded returns the value right-padded to MaxWidth. Values wider than
// MaxWidth are returned unchanged.
func (c Cell) Padded() string {
	return c.Value + strings.Repeat(" ", c.Padding())
}
