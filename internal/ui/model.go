// Package ui implements the interactive csvx viewer: a query line above the
// rendered table, re-evaluated on every keystroke.
package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/csvx/internal/query"
	"github.com/oakwood-commons/csvx/internal/table"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// query line, header line and footer
	chromeLines = 3
)

// Options configures a new Model.
type Options struct {
	AppName        string
	Prompt         string
	Placeholder    string
	NoColor        bool
	Theme          Theme
	DefaultColumns []string // selection restored by esc; empty shows every column
	Logger         logr.Logger
}

// Model is the bubbletea model of the viewer. The table is owned by the model
// and only its column selection changes while the program runs.
type Model struct {
	Table *table.Table
	Input textinput.Model

	AppName        string
	Prompt         string
	NoColor        bool
	DefaultColumns []string

	WinWidth  int
	WinHeight int
	Offset    int // first visible data row

	// Exprs is the last successfully parsed query.
	Exprs []query.Expr
	// ParseErr is the error of the most recent parse, nil after a success.
	// It is only logged, never shown in the table.
	ParseErr error

	lastQuery string
	parsed    bool
	styles    styles
	log       logr.Logger
}

// NewModel creates a viewer over tbl. DefaultColumns, when set, are selected
// before any query is typed.
func NewModel(tbl *table.Table, opts Options) *Model {
	ti := textinput.New()
	ti.Placeholder = opts.Placeholder
	ti.CharLimit = 1000
	ti.SetWidth(defaultWidth)
	ti.Prompt = ""
	ti.Focus()

	m := &Model{
		Table:          tbl,
		Input:          ti,
		AppName:        opts.AppName,
		Prompt:         opts.Prompt,
		NoColor:        opts.NoColor,
		DefaultColumns: append([]string(nil), opts.DefaultColumns...),
		WinWidth:       defaultWidth,
		WinHeight:      defaultHeight,
		log:            opts.Logger,
	}
	if m.AppName == "" {
		m.AppName = "csvx"
	}
	th := opts.Theme
	if th == (Theme{}) {
		th = DefaultTheme()
	}
	m.styles = newStyles(th, opts.NoColor)
	m.resetSelection()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Every key that edits the query re-parses the
// whole query text.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyPressMsg:
		switch ActionForKey(msg) {
		case ActionQuit:
			return m, tea.Quit
		case ActionReset:
			m.Input.SetValue("")
			m.lastQuery = ""
			m.ParseErr = nil
			m.Exprs = nil
			m.resetSelection()
			m.clampOffset()
			return m, nil
		case ActionUp:
			m.Scroll(-1)
			return m, nil
		case ActionDown:
			m.Scroll(1)
			return m, nil
		case ActionPageUp:
			m.Scroll(-m.bodyHeight())
			return m, nil
		case ActionPageDown:
			m.Scroll(m.bodyHeight())
			return m, nil
		}

		var cmd tea.Cmd
		m.Input, cmd = m.Input.Update(msg)
		m.refresh()
		return m, cmd
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// SetQuery replaces the query text and applies it.
func (m *Model) SetQuery(text string) {
	m.Input.SetValue(text)
	m.Input.SetCursor(len([]rune(text)))
	m.refresh()
}

// Query returns the current query text.
func (m *Model) Query() string {
	return m.Input.Value()
}

// SetSize sets the window dimensions used for rendering.
func (m *Model) SetSize(width, height int) {
	if width > 0 {
		m.WinWidth = width
	}
	if height > 0 {
		m.WinHeight = height
	}
	m.Input.SetWidth(max(m.WinWidth-runewidth.StringWidth(m.Prompt)-1, 1))
	m.clampOffset()
}

// Scroll moves the first visible row by delta, clamped to the table.
func (m *Model) Scroll(delta int) {
	m.Offset += delta
	m.clampOffset()
}

// refresh re-derives the selection from the query text. A failed parse keeps
// the previous selection.
func (m *Model) refresh() {
	text := m.Input.Value()
	if m.parsed && text == m.lastQuery {
		return
	}
	m.lastQuery = text
	m.parsed = true

	exprs, err := query.Parse(text)
	if err != nil {
		m.ParseErr = err
		m.log.Info("query rejected", "query", text, "error", err.Error())
		return
	}
	m.ParseErr = nil
	m.Exprs = exprs
	if m.Table.Apply(exprs) {
		m.clampOffset()
	}
	m.log.V(1).Info("query applied", "query", text, "exprs", fmt.Sprint(exprs), "selection", m.Table.Selection())
}

func (m *Model) resetSelection() {
	if len(m.DefaultColumns) > 0 {
		m.Table.SelectHeaders(m.DefaultColumns)
		return
	}
	m.Table.ClearSelection()
}

func (m *Model) bodyHeight() int {
	return max(m.WinHeight-chromeLines, 1)
}

func (m *Model) clampOffset() {
	maxOffset := max(m.Table.Len()-m.bodyHeight(), 0)
	m.Offset = min(max(m.Offset, 0), maxOffset)
}

// View implements tea.Model.
func (m *Model) View() tea.View {
	v := tea.NewView(m.Render())
	v.AltScreen = true
	return v
}

// Render draws the full frame as text.
func (m *Model) Render() string {
	width := m.WinWidth
	lines := make([]string, 0, m.WinHeight)

	lines = append(lines, m.styles.prompt.Render(m.Prompt)+m.Input.View())
	lines = append(lines, m.styles.header.Render(m.Table.HeaderLine(width)))

	end := min(m.Offset+m.bodyHeight(), m.Table.Len())
	for i := m.Offset; i < end; i++ {
		lines = append(lines, m.Table.RowLine(i, width))
	}
	lines = append(lines, m.styles.status.Render(table.Truncate(m.footer(end), width)))
	return strings.Join(lines, "\n")
}

func (m *Model) footer(end int) string {
	rows := "no rows"
	if m.Table.Len() > 0 {
		rows = fmt.Sprintf("rows %d-%d/%d", m.Offset+1, end, m.Table.Len())
	}
	return fmt.Sprintf("%s • %s • columns %d/%d • ctrl+c quit • esc reset • ↑/↓ scroll",
		m.AppName, rows, m.Table.VisibleColumns(), len(m.Table.Headers()))
}
