package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Model sources.
const (
	SourceXrandr = "xrandr"
	SourceRandr  = "randr"
)

const (
	DefaultXrandrCommand = "xrandr"
	DefaultLogLevel      = "info"
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxFiles   = 3
)

// Config is the effective configuration.
type Config struct {
	Source string `yaml:"source"`

	// Display names the X server, e.g. ":0". Empty means $DISPLAY, then
	// the highest socket under /tmp/.X11-unix.
	Display string `yaml:"display,omitempty"`

	Xrandr  XrandrConfig  `yaml:"xrandr"`
	Logging LoggingConfig `yaml:"logging"`
	Keys    KeysConfig    `yaml:"keys"`
	Theme   ThemeConfig   `yaml:"theme"`
}

// XrandrConfig controls how layouts are read and applied.
type XrandrConfig struct {
	Command string `yaml:"command"`
	// ConfirmApply shows a diff of the pending command before running it.
	ConfirmApply bool `yaml:"confirm_apply"`
}

// LoggingConfig controls the rotating log file. An empty File discards logs.
// MaxFiles 0 keeps every rotated file.
type LoggingConfig struct {
	File      string `yaml:"file"`
	Level     string `yaml:"level"`
	MaxSizeMB int    `yaml:"max_size_mb"`
	MaxFiles  int    `yaml:"max_files"`
}

// KeysConfig overrides key bindings. An empty list keeps the built-in keys
// for that action.
type KeysConfig struct {
	Left        []string `yaml:"left,omitempty"`
	Right       []string `yaml:"right,omitempty"`
	Up          []string `yaml:"up,omitempty"`
	Down        []string `yaml:"down,omitempty"`
	Enter       []string `yaml:"enter,omitempty"`
	Escape      []string `yaml:"escape,omitempty"`
	Swap        []string `yaml:"swap,omitempty"`
	Apply       []string `yaml:"apply,omitempty"`
	Undo        []string `yaml:"undo,omitempty"`
	Primary     []string `yaml:"primary,omitempty"`
	Preview     []string `yaml:"preview,omitempty"`
	Help        []string `yaml:"help,omitempty"`
	Connections []string `yaml:"connections,omitempty"`
	Toggle      []string `yaml:"toggle,omitempty"`
	Quit        []string `yaml:"quit,omitempty"`
}

// ThemeConfig holds lipgloss colors: ANSI 256 numbers or #rrggbb.
type ThemeConfig struct {
	Accent   string `yaml:"accent"`
	Selected string `yaml:"selected"`
	Primary  string `yaml:"primary"`
	Disabled string `yaml:"disabled"`
}

func DefaultConfig() *Config {
	return &Config{
		Source: SourceXrandr,
		Xrandr: XrandrConfig{
			Command: DefaultXrandrCommand,
		},
		Logging: LoggingConfig{
			Level:     DefaultLogLevel,
			MaxSizeMB: DefaultLogMaxSizeMB,
			MaxFiles:  DefaultLogMaxFiles,
		},
		Theme: ThemeConfig{
			Accent:   "62",
			Selected: "205",
			Primary:  "42",
			Disabled: "241",
		},
	}
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceXrandr, SourceRandr:
	default:
		return &ValidationError{Path: "source", Err: fmt.Errorf("source must be one of: %s, %s", SourceXrandr, SourceRandr)}
	}
	if d := c.Display; d != "" && !strings.Contains(d, ":") {
		return &ValidationError{Path: "display", Err: fmt.Errorf("display %q must look like \":0\" or \"host:0\"", d)}
	}
	if strings.TrimSpace(c.Xrandr.Command) == "" {
		return &ValidationError{Path: "xrandr.command", Err: fmt.Errorf("command must not be empty")}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "logging.level", Err: fmt.Errorf("level must be one of: debug, info, warn, error")}
	}
	if c.Logging.MaxSizeMB <= 0 {
		return &ValidationError{Path: "logging.max_size_mb", Err: fmt.Errorf("max_size_mb must be > 0")}
	}
	if c.Logging.MaxFiles < 0 {
		return &ValidationError{Path: "logging.max_files", Err: fmt.Errorf("max_files must be >= 0")}
	}
	colors := []struct {
		path  string
		value string
	}{
		{"theme.accent", c.Theme.Accent},
		{"theme.selected", c.Theme.Selected},
		{"theme.primary", c.Theme.Primary},
		{"theme.disabled", c.Theme.Disabled},
	}
	for _, col := range colors {
		if err := validateColor(col.value); err != nil {
			return &ValidationError{Path: col.path, Err: err}
		}
	}
	return nil
}

// validateColor accepts an ANSI 256 palette index or a #rrggbb value.
func validateColor(value string) error {
	if value == "" {
		return fmt.Errorf("color must not be empty")
	}
	if strings.HasPrefix(value, "#") {
		if len(value) != 7 {
			return fmt.Errorf("hex color %q must look like #rrggbb", value)
		}
		for _, r := range value[1:] {
			if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
				return fmt.Errorf("hex color %q has a non-hex digit", value)
			}
		}
		return nil
	}
	n := 0
	for _, r := range value {
		if r < '0' || r > '9' {
			return fmt.Errorf("color %q must be 0-255 or #rrggbb", value)
		}
		n = n*10 + int(r-'0')
		if n > 255 {
			return fmt.Errorf("color %q must be 0-255 or #rrggbb", value)
		}
	}
	return nil
}

// LogPath returns the log file with a leading ~ expanded.
func (c *Config) LogPath() string {
	file := c.Logging.File
	if file == "~" || strings.HasPrefix(file, "~/") {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			return file
		}
		return filepath.Join(home, strings.TrimPrefix(file, "~"))
	}
	return file
}

// Marshal renders the effective configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
