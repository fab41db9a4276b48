package table

import (
	"fmt"
	"slices"

	"github.com/oakwood-commons/csvx/internal/query"
)

// Table is a header row plus data rows. Only the column selection changes
// after Build.
type Table struct {
	headers  []Cell
	rows     [][]Cell
	selected map[int]struct{} // nil means every column is visible
}

// Build creates a table from raw header and row text.
//
// Every header cell is padded to the widest header. Each data row is padded
// to the widest header among the columns present in that row; data values are
// not compared across rows.
func Build(headerTexts []string, rowTexts [][]string) *Table {
	headers := make([]Cell, len(headerTexts))
	headerMax := 0
	for i, text := range headerTexts {
		headers[i] = NewCell(text, i)
		headerMax = max(headerMax, headers[i].Width)
	}
	for i := range headers {
		headers[i].MaxWidth = headerMax
	}

	rows := make([][]Cell, len(rowTexts))
	for r, texts := range rowTexts {
		cells := make([]Cell, len(texts))
		rowMax := 0
		for i, text := range texts {
			cells[i] = NewCell(text, i)
			if i < len(headers) {
				rowMax = max(rowMax, headers[i].Width)
			}
		}
		for i := range cells {
			cells[i].MaxWidth = rowMax
		}
		rows[r] = cells
	}

	return &Table{headers: headers, rows: rows}
}

// Headers returns the header cells.
func (t *Table) Headers() []Cell {
	return t.headers
}

// Rows returns the data rows.
func (t *Table) Rows() [][]Cell {
	return t.rows
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// SelectHeaders shows only the columns whose header equals one of names.
// Names that match no header are ignored, so the selection may be empty.
func (t *Table) SelectHeaders(names []string) {
	selected := make(map[int]struct{}, len(names))
	for i, h := range t.headers {
		if slices.Contains(names, h.Value) {
			selected[i] = struct{}{}
		}
	}
	t.selected = selected
}

// Apply updates the selection from the last ColumnFilter in exprs. It reports
// whether the selection was replaced; expression lists without a filter leave
// it untouched.
func (t *Table) Apply(exprs []query.Expr) bool {
	f, ok := query.LastColumnFilter(exprs)
	if !ok {
		return false
	}
	t.SelectHeaders(f.Names())
	return true
}

// ClearSelection makes every column visible again.
func (t *Table) ClearSelection() {
	t.selected = nil
}

// Selection returns the selected column indices in ascending order, or nil
// when no selection is active.
func (t *Table) Selection() []int {
	if t.selected == nil {
		return nil
	}
	out := make([]int, 0, len(t.selected))
	for i := range t.selected {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// IsSelected reports whether the column at index is rendered.
func (t *Table) IsSelected(index int) bool {
	if t.selected == nil {
		return true
	}
	_, ok := t.selected[index]
	return ok
}

// VisibleColumns returns how many header columns are rendered.
func (t *Table) VisibleColumns() int {
	if t.selected == nil {
		return len(t.headers)
	}
	return len(t.selected)
}

func (t *Table) String() string {
	return fmt.Sprintf("Table[columns=%d, rows=%d, visible=%d]",
		len(t.headers), len(t.rows), t.VisibleColumns())
}

// Project returns the text of the visible columns: the header values and, for
// each row, the values of the visible columns present in that row.
func (t *Table) Project() ([]string, [][]string) {
	headers := make([]string, 0, t.VisibleColumns())
	for _, h := range t.headers {
		if t.IsSelected(h.Index) {
			headers = append(headers, h.Value)
		}
	}
	rows := make([][]string, len(t.rows))
	for r, cells := range t.rows {
		row := make([]string, 0, len(headers))
		for _, c := range cells {
			if t.IsSelected(c.Index) {
				row = append(row, c.Value)
			}
		}
		rows[r] = row
	}
	return headers, rows
}
