package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/1broseidon/randrtile/internal/arrange"
	"github.com/1broseidon/randrtile/internal/logging"
	"github.com/1broseidon/randrtile/internal/tui"
	"github.com/1broseidon/randrtile/internal/xrandr"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches to a subcommand and returns the exit code: 0 on success,
// 1 on a runtime failure, 2 on a usage error.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return runTUI(args, stderr)
	}

	switch args[0] {
	case "print":
		return runPrint(args[1:], stdout, stderr)
	case "validate":
		return runValidate(args[1:], stdout, stderr)
	case "config":
		return runConfig(args[1:], stdout, stderr)
	case "mcp":
		return runMCP(args[1:], stderr)
	case "help":
		printMainUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printMainUsage(stderr)
		return 2
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: randrtile [options]            Arrange monitors interactively")
	fmt.Fprintln(w, "       randrtile <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -d                  Debug mode: use a built-in three-monitor layout, never apply")
	fmt.Fprintln(w, "  -config PATH        Config file (default: ~/.config/randrtile/config.yaml)")
	fmt.Fprintln(w, "  -source NAME        Where to read outputs from: xrandr or randr")
	fmt.Fprintln(w, "  -log PATH           Log file (overrides logging.file)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  print               Print the xrandr command for the current layout")
	fmt.Fprintln(w, "  validate            Check the current layout for overlaps and broken links")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print effective configuration")
	fmt.Fprintln(w, "  mcp                 Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'randrtile <command> -h' for command-specific options.")
}

// parseFlags parses the shared options for name. On a help request or a
// bad flag it returns nil and the exit code to use.
func parseFlags(name string, args []string, stderr io.Writer, usage string) (*commonFlags, int) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	cf := &commonFlags{}
	cf.bind(fs)
	fs.Usage = func() {
		fmt.Fprintln(stderr, usage)
		fmt.Fprintln(stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, 0
		}
		return nil, 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "%s takes no arguments\n", name)
		fs.Usage()
		return nil, 2
	}
	return cf, 0
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runTUI(args []string, stderr io.Writer) int {
	cf, code := parseFlags("randrtile", args, stderr, "Usage: randrtile [-d] [-config PATH] [-source xrandr|randr] [-log PATH]")
	if cf == nil {
		return code
	}
	cfg, err := cf.config()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	// The terminal belongs to the TUI, so logs only ever go to a file.
	logger, closer, err := logging.New(logging.Options{
		File:      cfg.LogPath(),
		Level:     cfg.Logging.Level,
		MaxSizeMB: cfg.Logging.MaxSizeMB,
		MaxFiles:  cfg.Logging.MaxFiles,
	})
	if err != nil {
		fmt.Fprintf(stderr, "log file: %v\n", err)
		return 1
	}
	defer closer.Close()

	ctx, cancel := signalContext()
	defer cancel()

	src := newSource(cfg, cf.debug, logger)
	ms, err := src.load(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	s, err := arrange.NewSession(ms, arrange.Options{
		Debug:   cf.debug,
		Applier: src.runner,
		Logger:  logger,
	})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	logger.Info("session started", "source", src.name(), "outputs", len(ms), "debug", cf.debug)

	err = tui.Run(ctx, s, tui.Options{
		Keys:         cfg.Keys,
		Theme:        cfg.Theme,
		ConfirmApply: cfg.Xrandr.ConfirmApply,
		Logger:       logger,
	})
	if err != nil {
		logger.Error("tui exited", "error", err)
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func runPrint(args []string, stdout, stderr io.Writer) int {
	cf, code := parseFlags("print", args, stderr, "Usage: randrtile print [-d] [-config PATH] [-source xrandr|randr]")
	if cf == nil {
		return code
	}
	cfg, err := cf.config()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	ctx, cancel := signalContext()
	defer cancel()

	ms, err := newSource(cfg, cf.debug, logging.Stderr(cfg.Logging.Level)).load(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintln(stdout, xrandr.CommandLine(cfg.Xrandr.Command, ms))
	return 0
}

func runValidate(args []string, stdout, stderr io.Writer) int {
	cf, code := parseFlags("validate", args, stderr, "Usage: randrtile validate [-d] [-config PATH] [-source xrandr|randr]")
	if cf == nil {
		return code
	}
	cfg, err := cf.config()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	ctx, cancel := signalContext()
	defer cancel()

	ms, err := newSource(cfg, cf.debug, logging.Stderr(cfg.Logging.Level)).load(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if err := ms.Validate(); err != nil {
		fmt.Fprintf(stderr, "layout: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "layout: ok (%d outputs, %d enabled)\n", len(ms), ms.EnabledCount())
	return 0
}
