// Package tui is the interactive front end: a bubbletea program that draws
// the layout and feeds key presses to an arrange.Session.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/randrtile/internal/arrange"
	"github.com/1broseidon/randrtile/internal/config"
)

// Options configures the program.
type Options struct {
	Keys         config.KeysConfig
	Theme        config.ThemeConfig
	ConfirmApply bool
	Logger       *slog.Logger
}

// Run starts the program on the alternate screen and blocks until the user
// quits or ctx is cancelled. The terminal is restored on every exit path.
func Run(ctx context.Context, s *arrange.Session, opts Options) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	m, err := newModel(ctx, s, opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
