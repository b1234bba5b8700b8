package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/1broseidon/randrtile/internal/config"
	"github.com/1broseidon/randrtile/internal/layout"
	"github.com/1broseidon/randrtile/internal/x11"
	"github.com/1broseidon/randrtile/internal/xrandr"
)

// commonFlags are accepted by the TUI and every command that reads the
// layout.
type commonFlags struct {
	debug      bool
	configPath string
	source     string
	logPath    string
}

func (c *commonFlags) bind(fs *flag.FlagSet) {
	fs.BoolVar(&c.debug, "d", false, "Debug mode: use a built-in three-monitor layout and never apply")
	fs.StringVar(&c.configPath, "config", "", "Config file path (default: ~/.config/randrtile/config.yaml)")
	fs.StringVar(&c.source, "source", "", "Output source: xrandr or randr (overrides config)")
	fs.StringVar(&c.logPath, "log", "", "Log file path (overrides logging.file)")
}

// config loads the configuration and layers the flags over it.
func (c *commonFlags) config() (*config.Config, error) {
	res, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	cfg := res.Config
	if c.source != "" {
		cfg.Source = c.source
	}
	if c.logPath != "" {
		cfg.Logging.File = c.logPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}

// source reads the current layout either by parsing `xrandr --query` or
// straight from RandR. Applying always goes through the xrandr runner.
type source struct {
	kind    string
	display string
	debug   bool
	runner  *xrandr.Runner
	logger  *slog.Logger
}

func newSource(cfg *config.Config, debug bool, logger *slog.Logger) *source {
	display := x11.ResolveDisplay(cfg.Display)
	var env []string
	if display != "" {
		env = x11.WithDisplay(os.Environ(), display)
	}
	return &source{
		kind:    cfg.Source,
		display: display,
		debug:   debug,
		runner: &xrandr.Runner{
			Command: cfg.Xrandr.Command,
			Debug:   debug,
			Env:     env,
			Logger:  logger,
		},
		logger: logger,
	}
}

func (s *source) name() string {
	if s.debug {
		return "debug"
	}
	return s.kind
}

func (s *source) load(ctx context.Context) (layout.Monitors, error) {
	if s.debug || s.kind != config.SourceRandr {
		return s.runner.Load(ctx)
	}

	conn, err := x11.NewConnection(s.display)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	ms, err := conn.Outputs()
	if err != nil {
		return nil, err
	}
	s.logger.Debug("read outputs over randr", "display", s.display, "outputs", len(ms))
	return ms, nil
}
