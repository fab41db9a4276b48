// Package config defines the csvx configuration file schema and its
// embedded defaults.
package config

// Config is the merged application configuration. Pointer fields distinguish
// "unset" from an explicit false when a user file is merged over defaults.
type Config struct {
	App  AppConfig  `yaml:"app" toml:"app"`
	UI   UIConfig   `yaml:"ui" toml:"ui"`
	Data DataConfig `yaml:"data" toml:"data"`
	Log  LogConfig  `yaml:"log" toml:"log"`
}

// AppConfig carries metadata shown in the footer.
type AppConfig struct {
	Name string `yaml:"name,omitempty" toml:"name,omitempty"`
}

// UIConfig controls the interactive viewer.
type UIConfig struct {
	Prompt      string      `yaml:"prompt,omitempty" toml:"prompt,omitempty"`
	Placeholder string      `yaml:"placeholder,omitempty" toml:"placeholder,omitempty"`
	NoColor     *bool       `yaml:"no_color,omitempty" toml:"no_color,omitempty"`
	Columns     []string    `yaml:"columns,omitempty" toml:"columns,omitempty"` // default selection; empty shows all
	Theme       ThemeConfig `yaml:"theme" toml:"theme"`
}

// ThemeConfig holds lipgloss color strings ("12", "#ff8800").
type ThemeConfig struct {
	Header string `yaml:"header,omitempty" toml:"header,omitempty"`
	Prompt string `yaml:"prompt,omitempty" toml:"prompt,omitempty"`
	Status string `yaml:"status,omitempty" toml:"status,omitempty"`
}

// DataConfig controls CSV parsing.
type DataConfig struct {
	Delimiter        string `yaml:"delimiter,omitempty" toml:"delimiter,omitempty"`
	Comment          string `yaml:"comment,omitempty" toml:"comment,omitempty"`
	LazyQuotes       *bool  `yaml:"lazy_quotes,omitempty" toml:"lazy_quotes,omitempty"`
	TrimLeadingSpace *bool  `yaml:"trim_leading_space,omitempty" toml:"trim_leading_space,omitempty"`
}

// LogConfig selects the log level (debug|info|warn|error) and an optional file.
type LogConfig struct {
	Level string `yaml:"level,omitempty" toml:"level,omitempty"`
	File  string `yaml:"file,omitempty" toml:"file,omitempty"`
}

// Merge overlays every field set in override onto c and returns the result.
func (c Config) Merge(override Config) Config {
	out := c
	setString(&out.App.Name, override.App.Name)

	setString(&out.UI.Prompt, override.UI.Prompt)
	setString(&out.UI.Placeholder, override.UI.Placeholder)
	setBool(&out.UI.NoColor, override.UI.NoColor)
	if len(override.UI.Columns) > 0 {
		out.UI.Columns = append([]string(nil), override.UI.Columns...)
	}
	setString(&out.UI.Theme.Header, override.UI.Theme.Header)
	setString(&out.UI.Theme.Prompt, override.UI.Theme.Prompt)
	setString(&out.UI.Theme.Status, override.UI.Theme.Status)

	setString(&out.Data.Delimiter, override.Data.Delimiter)
	setString(&out.Data.Comment, override.Data.Comment)
	setBool(&out.Data.LazyQuotes, override.Data.LazyQuotes)
	setBool(&out.Data.TrimLeadingSpace, override.Data.TrimLeadingSpace)

	setString(&out.Log.Level, override.Log.Level)
	setString(&out.Log.File, override.Log.File)
	return out
}

// Bool dereferences an optional flag.
func Bool(b *bool) bool {
	return b != nil && *b
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setBool(dst **bool, v *bool) {
	if v != nil {
		b := *v
		*dst = &b
	}
}
