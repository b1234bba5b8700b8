package config

import "fmt"

// RawConfig mirrors the YAML file. Pointer fields distinguish "not set"
// from zero values so defaults only fill the gaps.
type RawConfig struct {
	Source  *string           `yaml:"source"`
	Display *string           `yaml:"display"`
	Xrandr  *RawXrandrConfig  `yaml:"xrandr"`
	Logging *RawLoggingConfig `yaml:"logging"`
	Keys    *KeysConfig       `yaml:"keys"`
	Theme   *RawThemeConfig   `yaml:"theme"`
}

type RawXrandrConfig struct {
	Command      *string `yaml:"command"`
	ConfirmApply *bool   `yaml:"confirm_apply"`
}

type RawLoggingConfig struct {
	File      *string `yaml:"file"`
	Level     *string `yaml:"level"`
	MaxSizeMB *int    `yaml:"max_size_mb"`
	MaxFiles  *int    `yaml:"max_files"`
}

type RawThemeConfig struct {
	Accent   *string `yaml:"accent"`
	Selected *string `yaml:"selected"`
	Primary  *string `yaml:"primary"`
	Disabled *string `yaml:"disabled"`
}

// ValidationError locates a configuration problem by YAML path and, when
// known, by file position.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// BuildEffectiveConfig layers raw over DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	setString(&cfg.Source, raw.Source)
	setString(&cfg.Display, raw.Display)
	if x := raw.Xrandr; x != nil {
		setString(&cfg.Xrandr.Command, x.Command)
		if x.ConfirmApply != nil {
			cfg.Xrandr.ConfirmApply = *x.ConfirmApply
		}
	}
	if l := raw.Logging; l != nil {
		setString(&cfg.Logging.File, l.File)
		setString(&cfg.Logging.Level, l.Level)
		setInt(&cfg.Logging.MaxSizeMB, l.MaxSizeMB)
		setInt(&cfg.Logging.MaxFiles, l.MaxFiles)
	}
	if raw.Keys != nil {
		cfg.Keys = *raw.Keys
	}
	if th := raw.Theme; th != nil {
		setString(&cfg.Theme.Accent, th.Accent)
		setString(&cfg.Theme.Selected, th.Selected)
		setString(&cfg.Theme.Primary, th.Primary)
		setString(&cfg.Theme.Disabled, th.Disabled)
	}
	return cfg
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
