package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/csvx/internal/config"
	"github.com/oakwood-commons/csvx/pkg/settings"
)

// configFileNames are tried in order inside the csvx config directory.
var configFileNames = []string{"config.yaml", "config.yml", "config.toml"}

// loadMergedConfig returns the embedded defaults with the user file at
// cfgPath merged on top. An empty cfgPath means defaults only.
func loadMergedConfig(cfgPath string) (config.Config, error) {
	cfg, err := config.Default()
	if err != nil {
		return cfg, fmt.Errorf("load default config: %w", err)
	}
	if cfgPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", cfgPath, err)
	}
	user, err := decodeConfig(cfgPath, data)
	if err != nil {
		return cfg, err
	}
	return cfg.Merge(user), nil
}

// decodeConfig picks the decoder from the file extension: .toml files use
// go-toml, everything else is YAML.
func decodeConfig(path string, data []byte) (config.Config, error) {
	var cfg config.Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("decode toml config %s: %w", path, err)
		}
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode yaml config %s: %w", path, err)
	}
	return cfg, nil
}

// encodeConfig renders cfg as yaml or toml for the config subcommand.
func encodeConfig(cfg config.Config, format string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "yaml", "yml":
		return yaml.Marshal(cfg)
	case "toml":
		return toml.Marshal(cfg)
	default:
		return nil, fmt.Errorf("unsupported config output %q (expected yaml or toml)", format)
	}
}

// resolveConfigPath returns the explicit path if set, otherwise the first
// existing file under $XDG_CONFIG_HOME/csvx or ~/.config/csvx.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	dir := ""
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dir = filepath.Join(xdg, settings.CliBinaryName)
	} else if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".config", settings.CliBinaryName)
	}
	if dir == "" {
		return ""
	}
	for _, name := range configFileNames {
		candidate := filepath.Join(dir, name)
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}
