package ui

import (
	"github.com/oakwood-commons/csvx/internal/table"
)

// SnapshotConfig configures RenderSnapshot.
type SnapshotConfig struct {
	Width     int
	Height    int
	Query     string
	StartKeys []string
	Options   Options
}

// RenderSnapshot renders a single frame of the viewer without a terminal.
func RenderSnapshot(tbl *table.Table, cfg SnapshotConfig) string {
	m := NewModel(tbl, cfg.Options)
	m.SetSize(orDefault(cfg.Width, defaultWidth), orDefault(cfg.Height, defaultHeight))
	if cfg.Query != "" {
		m.SetQuery(cfg.Query)
	}
	ApplyStartupKeys(m, cfg.StartKeys)
	// No cursor in a static frame.
	m.Input.Blur()
	return m.Render()
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
