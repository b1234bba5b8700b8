package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/1broseidon/randrtile/internal/config"
)

func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  randrtile config validate [-path PATH]")
	fmt.Fprintln(w, "  randrtile config print [-path PATH] [-defaults]")
}

func runConfig(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printConfigUsage(stderr)
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/randrtile/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return flagExitCode(err)
		}

		res, err := config.Load(*path)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		if res.File == "" {
			fmt.Fprintln(stdout, "config: ok (defaults, no file)")
			return 0
		}
		fmt.Fprintf(stdout, "config: ok (%s)\n", res.File)
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/randrtile/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return flagExitCode(err)
		}

		cfg := config.DefaultConfig()
		if !*printDefaults {
			res, err := config.Load(*path)
			if err != nil {
				fmt.Fprintln(stderr, err)
				return 1
			}
			cfg = res.Config
		}
		data, err := cfg.Marshal()
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		fmt.Fprint(stdout, string(data))
		return 0

	case "help", "-h", "--help":
		printConfigUsage(stdout)
		return 0

	default:
		fmt.Fprintf(stderr, "Unknown config subcommand: %s\n", args[0])
		printConfigUsage(stderr)
		return 2
	}
}

func flagExitCode(err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	return 2
}
