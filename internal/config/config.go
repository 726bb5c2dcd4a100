// Package config provides configuration types, defaults and loading for jig.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration options for jig.
type Config struct {
	// GraphPageSize is how many revisions one load fetches.
	GraphPageSize int `mapstructure:"graph_page_size"`
	// AutoRefresh reloads the graph when the repository changes on disk.
	AutoRefresh bool        `mapstructure:"auto_refresh"`
	UI          UIConfig    `mapstructure:"ui"`
	Theme       ThemeConfig `mapstructure:"theme"`
	Log         LogConfig   `mapstructure:"log"`
	Trace       TraceConfig `mapstructure:"trace"`
	// Keys maps action names to key overrides, e.g. "snapshot: S".
	Keys map[string]string `mapstructure:"keys"`
}

// UIConfig holds user interface options.
type UIConfig struct {
	ShowStatusBar bool `mapstructure:"show_status_bar"`
	// DiffRatio is the diff panel width as a percentage of the terminal.
	DiffRatio int `mapstructure:"diff_ratio"`
}

// ThemeConfig selects a preset and optionally forces light or dark mode.
type ThemeConfig struct {
	// Preset names a built-in theme. Valid values: "default",
	// "catppuccin-mocha", "catppuccin-latte", "dracula", "nord".
	Preset string `mapstructure:"preset"`
	// Mode forces "light" or "dark"; empty uses terminal detection.
	Mode string `mapstructure:"mode"`
}

// LogConfig controls the file logger.
type LogConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error
	Path  string `mapstructure:"path"`  // empty means <config dir>/jig.log
}

// TraceConfig controls the optional command-span trace file.
type TraceConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"` // empty means <config dir>/trace.jsonl
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		GraphPageSize: 100,
		AutoRefresh:   true,
		UI: UIConfig{
			ShowStatusBar: true,
			DiffRatio:     40,
		},
		Theme: ThemeConfig{Preset: "default"},
		Log:   LogConfig{Level: "info"},
	}
}

// Dir returns jig's config directory (~/.config/jig).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "jig")
}

// Load reads config.yaml from the given path (or the default config dir when
// empty), layered over Defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Defaults()

	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		dir := Dir()
		if dir == "" {
			return cfg, nil
		}
		v.SetConfigName("config")
		v.AddConfigPath(dir)
	}

	v.SetDefault("graph_page_size", cfg.GraphPageSize)
	v.SetDefault("auto_refresh", cfg.AutoRefresh)
	v.SetDefault("ui.show_status_bar", cfg.UI.ShowStatusBar)
	v.SetDefault("ui.diff_ratio", cfg.UI.DiffRatio)
	v.SetDefault("theme.preset", cfg.Theme.Preset)
	v.SetDefault("log.level", cfg.Log.Level)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks option values for errors.
func (c Config) Validate() error {
	if c.GraphPageSize <= 0 {
		return fmt.Errorf("graph_page_size must be positive, got %d", c.GraphPageSize)
	}
	if c.UI.DiffRatio < 10 || c.UI.DiffRatio > 90 {
		return fmt.Errorf("ui.diff_ratio must be between 10 and 90, got %d", c.UI.DiffRatio)
	}
	switch c.Theme.Mode {
	case "", "light", "dark":
	default:
		return fmt.Errorf("theme.mode must be \"light\", \"dark\" or empty, got %q", c.Theme.Mode)
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with
// comments.
func DefaultConfigTemplate() string {
	return `# jig configuration

# How many revisions one graph load fetches
graph_page_size: 100

# Reload the graph when the repository changes on disk
auto_refresh: true

ui:
  show_status_bar: true
  diff_ratio: 40   # diff panel width, percent of terminal

theme:
  # preset: catppuccin-mocha
  #
  # Available presets:
  #   default           - jig's own palette
  #   catppuccin-mocha  - warm dark theme
  #   catppuccin-latte  - warm light theme
  #   dracula           - dark theme with vibrant colors
  #   nord              - arctic, north-bluish palette
  #
  # mode: dark         # force light/dark; empty detects the terminal

log:
  level: info          # debug, info, warn, error
  # path: /tmp/jig.log

# trace:
#   enabled: true      # write a span per executed command

# Key overrides (action name -> key)
# keys:
#   snapshot: S
#   fetch: F
`
}

// WriteDefaultConfig creates a commented config file at the given path.
func WriteDefaultConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
