package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/1broseidon/randrtile/internal/arrange"
	"github.com/1broseidon/randrtile/internal/logging"
	"github.com/1broseidon/randrtile/internal/mcp"
)

func runMCP(args []string, stderr io.Writer) int {
	cf, code := parseFlags("mcp", args, stderr, "Usage: randrtile mcp [-d] [-config PATH] [-source xrandr|randr] [-log PATH]\n\n"+
		"Start the MCP server on stdio. Designed to be invoked by MCP clients,\n"+
		"e.g. with: <client> mcp add randrtile -- randrtile mcp")
	if cf == nil {
		return code
	}
	cfg, err := cf.config()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	// stdout carries the protocol; logs go to the file, else stderr.
	var logger *slog.Logger
	if path := cfg.LogPath(); path != "" {
		l, closer, err := logging.New(logging.Options{
			File:      path,
			Level:     cfg.Logging.Level,
			MaxSizeMB: cfg.Logging.MaxSizeMB,
			MaxFiles:  cfg.Logging.MaxFiles,
		})
		if err != nil {
			fmt.Fprintf(stderr, "log file: %v\n", err)
			return 1
		}
		defer closer.Close()
		logger = l
	} else {
		logger = logging.Stderr(cfg.Logging.Level)
	}

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

	server := mcp.NewServer(s, mcp.Options{Command: cfg.Xrandr.Command, Logger: logger})
	if err := server.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("mcp server stopped", "error", err)
		return 1
	}
	return 0
}
