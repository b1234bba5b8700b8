package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Source != SourceXrandr || cfg.Xrandr.Command != DefaultXrandrCommand {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(res.Config, DefaultConfig()) {
		t.Fatalf("expected defaults, got %+v", res.Config)
	}
	if res.File != "" {
		t.Fatalf("expected no file, got %q", res.File)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(writeConfig(t, "# empty\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(res.Config, DefaultConfig()) {
		t.Fatalf("expected defaults, got %+v", res.Config)
	}
}

func TestLoadFromPath_Overrides(t *testing.T) {
	data := strings.Join([]string{
		"source: randr",
		"display: \":1\"",
		"xrandr:",
		"  command: /usr/local/bin/xrandr",
		"  confirm_apply: true",
		"logging:",
		"  file: /tmp/randrtile.log",
		"  level: debug",
		"keys:",
		"  swap: [w]",
		"  quit: [Q, ctrl+q]",
		"theme:",
		"  accent: \"#ff8800\"",
		"",
	}, "\n")
	res, err := LoadFromPath(writeConfig(t, data))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.Source != SourceRandr || cfg.Display != ":1" {
		t.Errorf("source = %q display = %q", cfg.Source, cfg.Display)
	}
	if cfg.Xrandr.Command != "/usr/local/bin/xrandr" || !cfg.Xrandr.ConfirmApply {
		t.Errorf("xrandr = %+v", cfg.Xrandr)
	}
	if cfg.Logging.File != "/tmp/randrtile.log" || cfg.Logging.Level != "debug" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if cfg.Logging.MaxSizeMB != DefaultLogMaxSizeMB || cfg.Logging.MaxFiles != DefaultLogMaxFiles {
		t.Errorf("logging defaults lost: %+v", cfg.Logging)
	}
	if !reflect.DeepEqual(cfg.Keys.Swap, []string{"w"}) || !reflect.DeepEqual(cfg.Keys.Quit, []string{"Q", "ctrl+q"}) {
		t.Errorf("keys = %+v", cfg.Keys)
	}
	if cfg.Keys.Left != nil {
		t.Errorf("expected unset key list, got %v", cfg.Keys.Left)
	}
	if cfg.Theme.Accent != "#ff8800" || cfg.Theme.Primary != "42" {
		t.Errorf("theme = %+v", cfg.Theme)
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	_, err := LoadFromPath(writeConfig(t, "xrandr:\n  comand: xrandr\n"))
	if err == nil {
		t.Fatalf("expected unknown key error")
	}
	if !strings.Contains(err.Error(), "comand") {
		t.Fatalf("expected error to name the key, got %v", err)
	}
}

func TestLoadFromPath_ValidationHasSourceContext(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: loud\n")
	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Path != "logging.level" {
		t.Fatalf("path = %q", verr.Path)
	}
	if verr.Source.File != path || verr.Source.Line != 2 {
		t.Fatalf("source = %+v", verr.Source)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"bad source", func(c *Config) { c.Source = "wayland" }, "source"},
		{"display without colon", func(c *Config) { c.Display = "0" }, "display"},
		{"empty command", func(c *Config) { c.Xrandr.Command = " " }, "xrandr.command"},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"zero size", func(c *Config) { c.Logging.MaxSizeMB = 0 }, "logging.max_size_mb"},
		{"negative files", func(c *Config) { c.Logging.MaxFiles = -1 }, "logging.max_files"},
		{"color out of range", func(c *Config) { c.Theme.Accent = "300" }, "theme.accent"},
		{"short hex", func(c *Config) { c.Theme.Selected = "#fff" }, "theme.selected"},
		{"bad hex", func(c *Config) { c.Theme.Primary = "#gg0000" }, "theme.primary"},
		{"empty color", func(c *Config) { c.Theme.Disabled = "" }, "theme.disabled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("path = %q, want %q", verr.Path, tt.path)
			}
		})
	}
}

func TestLogPath_ExpandsHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	cfg := DefaultConfig()
	cfg.Logging.File = "~/logs/randrtile.log"
	if got := cfg.LogPath(); got != "/home/tester/logs/randrtile.log" {
		t.Fatalf("LogPath = %q", got)
	}
	cfg.Logging.File = "/var/log/randrtile.log"
	if got := cfg.LogPath(); got != "/var/log/randrtile.log" {
		t.Fatalf("LogPath = %q", got)
	}
}

func TestMarshal_RoundTrips(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Keys.Swap = []string{"w"}
	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	res, err := LoadFromPath(writeConfig(t, string(data)))
	if err != nil {
		t.Fatalf("load marshalled config: %v", err)
	}
	if !reflect.DeepEqual(res.Config, cfg) {
		t.Fatalf("got %+v, want %+v", res.Config, cfg)
	}
}
