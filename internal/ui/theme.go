package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/csvx/internal/config"
)

// Theme holds the colors used by the viewer.
type Theme struct {
	HeaderFG color.Color // Table header line
	PromptFG color.Color // Query prompt
	StatusFG color.Color // Footer text
}

// DefaultTheme returns the built-in colors.
func DefaultTheme() Theme {
	return Theme{
		HeaderFG: lipgloss.Color("12"),
		PromptFG: lipgloss.Color("10"),
		StatusFG: lipgloss.Color("8"),
	}
}

// ThemeFromConfig builds a theme, keeping defaults for unset colors.
func ThemeFromConfig(cfg config.ThemeConfig) Theme {
	th := DefaultTheme()
	if cfg.Header != "" {
		th.HeaderFG = lipgloss.Color(cfg.Header)
	}
	if cfg.Prompt != "" {
		th.PromptFG = lipgloss.Color(cfg.Prompt)
	}
	if cfg.Status != "" {
		th.StatusFG = lipgloss.Color(cfg.Status)
	}
	return th
}

type styles struct {
	header lipgloss.Style
	prompt lipgloss.Style
	status lipgloss.Style
}

func newStyles(th Theme, noColor bool) styles {
	if noColor {
		return styles{header: lipgloss.NewStyle(), prompt: lipgloss.NewStyle(), status: lipgloss.NewStyle()}
	}
	return styles{
		header: lipgloss.NewStyle().Bold(true).Foreground(th.HeaderFG),
		prompt: lipgloss.NewStyle().Foreground(th.PromptFG),
		status: lipgloss.NewStyle().Faint(true).Foreground(th.StatusFG),
	}
}
