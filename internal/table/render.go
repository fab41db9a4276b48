package table

import (
	"strings"

	runewidth "github.com/mattn/go-runewidth"
)

// Render returns the header line followed by one line per row, in row order.
// Lines are truncated to width display columns; width <= 0 disables truncation.
// The last visible cell of each line is intentionally left unpadded.
func (t *Table) Render(width int) []string {
	lines := make([]string, 0, len(t.rows)+1)
	lines = append(lines, t.HeaderLine(width))
	for i := range t.rows {
		lines = append(lines, t.RowLine(i, width))
	}
	return lines
}

// HeaderLine renders the header cells.
func (t *Table) HeaderLine(width int) string {
	return t.formatLine(t.headers, width)
}

// RowLine renders data row i. It panics if i is out of range.
func (t *Table) RowLine(i, width int) string {
	return t.formatLine(t.rows[i], width)
}

// formatLine pads and joins the selected cells. The last visible cell is not
// padded so lines carry no trailing filler.
func (t *Table) formatLine(cells []Cell, width int) string {
	parts := make([]string, 0, len(cells))
	last := ""
	for _, c := range cells {
		if !t.IsSelected(c.Index) {
			continue
		}
		parts = append(parts, c.Padded())
		last = c.Value
	}
	if n := len(parts); n > 0 {
		parts[n-1] = last
	}
	return Truncate(strings.Join(parts, Separator), width)
}

// Truncate clips s to width display columns without wrapping.
// width <= 0 returns s unchanged.
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "")
}
