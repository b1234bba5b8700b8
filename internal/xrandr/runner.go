package xrandr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/1broseidon/randrtile/internal/layout"
)

// Runner invokes the xrandr binary.
type Runner struct {
	// Command is the binary to run. Empty means "xrandr".
	Command string
	// Debug replaces the query with DebugQuery. Apply still runs; callers
	// decide whether to suppress it.
	Debug bool
	// Env is the environment xrandr runs with. Nil inherits the process
	// environment.
	Env    []string
	Logger *slog.Logger
}

func (r *Runner) command() string {
	if r.Command == "" {
		return "xrandr"
	}
	return r.Command
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r.Logger
}

// Query returns the output of `xrandr --query`.
func (r *Runner) Query(ctx context.Context) (string, error) {
	if r.Debug {
		return DebugQuery, nil
	}
	out, err := r.run(ctx, "--query")
	if err != nil {
		return "", err
	}
	return out, nil
}

// Load queries xrandr and parses the result.
func (r *Runner) Load(ctx context.Context) (layout.Monitors, error) {
	out, err := r.Query(ctx)
	if err != nil {
		return nil, err
	}
	ms, err := Parse(strings.NewReader(out))
	if err != nil {
		return nil, err
	}
	r.logger().Debug("parsed xrandr query", "outputs", len(ms), "debug", r.Debug)
	return ms, nil
}

// Apply runs xrandr with the arguments that reproduce ms.
func (r *Runner) Apply(ctx context.Context, ms layout.Monitors) error {
	args := Args(ms)
	if len(args) == 0 {
		return fmt.Errorf("%s: nothing to apply", r.command())
	}
	r.logger().Info("applying layout", "command", CommandLine(r.command(), ms))
	_, err := r.run(ctx, args...)
	return err
}

func (r *Runner) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, r.command(), args...)
	cmd.Env = r.Env
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return "", fmt.Errorf("%s failed: %s", r.command(), msg)
			}
		}
		return "", fmt.Errorf("%s failed: %w", r.command(), err)
	}
	return string(out), nil
}
