// Package logging writes slog text records to a size-rotated file. The TUI
// owns the terminal, so nothing may be logged to stderr while it runs.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the log file.
type Options struct {
	File  string
	Level string
	// MaxSizeMB is the size at which the file is rotated. MaxFiles rotated
	// files are kept; 0 keeps all of them.
	MaxSizeMB int
	MaxFiles  int
}

// OpenFile returns a rotating writer for opts.File. The directory is created
// 0700; new log files are created 0600.
func OpenFile(opts Options) (*lumberjack.Logger, error) {
	dir := filepath.Dir(opts.File)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}
	return &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxFiles,
	}, nil
}

// ParseLevel converts a config level name to a slog level. Unknown names
// map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds a text logger writing to opts.File. With no file the logger
// discards everything.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	if opts.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, handlerOpts)), nopCloser{}, nil
	}
	w, err := OpenFile(opts)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts)), w, nil
}

// Stderr returns a text logger for commands that do not own the terminal.
func Stderr(level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: ParseLevel(level)}))
}
