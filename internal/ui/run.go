package ui

import (
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/oakwood-commons/csvx/internal/table"
)

// RunConfig configures Run.
type RunConfig struct {
	Width     int // 0 = follow the terminal
	Height    int // 0 = follow the terminal
	Query     string
	StartKeys []string
	Options   Options
}

// Run starts the interactive viewer and blocks until the user quits. It
// returns the final model so callers can report the last query.
// Extra ProgramOptions (e.g., custom IO) are passed to tea.NewProgram.
func Run(tbl *table.Table, cfg RunConfig, opts ...tea.ProgramOption) (*Model, error) {
	m := NewModel(tbl, cfg.Options)

	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		if tw, th, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			if w <= 0 {
				w = tw
			}
			if h <= 0 {
				h = th
			}
		}
	}
	m.SetSize(orDefault(w, defaultWidth), orDefault(h, defaultHeight))
	if cfg.Width > 0 && cfg.Height > 0 {
		opts = append(opts, tea.WithWindowSize(cfg.Width, cfg.Height))
	}

	if cfg.Query != "" {
		m.SetQuery(cfg.Query)
	}
	ApplyStartupKeys(m, cfg.StartKeys)

	final, err := tea.NewProgram(m, opts...).Run()
	if fm, ok := final.(*Model); ok && fm != nil {
		m = fm
	}
	return m, err
}
