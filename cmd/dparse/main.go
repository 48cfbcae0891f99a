// Package main provides the CLI entry point for dparse.
//
// Usage:
//
//	dparse parse input.d
//	dparse parse input.d --config dparse.toml
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dlang-tools/dparse/config"
	"github.com/dlang-tools/dparse/lexer"
	"github.com/dlang-tools/dparse/syntax"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "parse", "p":
		if err := runParse(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		printVersion()
	default:
		if err := runParse(os.Args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

func printUsage() {
	fmt.Println(`dparse - a recoverable recursive-descent parser for a D-family language

Usage:
  dparse parse <input.d> [--config <dparse.toml>] [--quiet]
  dparse <input.d>
  dparse help
  dparse version

Options:
  --config   Path to a dparse.toml configuration file (default: ./dparse.toml)
  --quiet    Suppress per-diagnostic output; print only the final counts`)
}

func printVersion() {
	fmt.Println("dparse version 0.1.0")
}

func runParse(args []string) error {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	configPath := fs.String("config", "dparse.toml", "Path to a dparse.toml configuration file")
	quiet := fs.Bool("quiet", false, "Suppress per-diagnostic output")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("missing input file")
	}
	input := fs.Arg(0)
	if err := fs.Parse(fs.Args()[1:]); err != nil {
		return err
	}

	return parseFile(input, *configPath, *quiet)
}

// parseFile tokenizes input with the harness lexer, parses with syntax's
// public entry point, and reports diagnostics to stderr. It mirrors the
// teacher CLI's source-then-parse-then-report sequencing, generalized
// from "compile to PDF" down to "parse and report".
func parseFile(inputPath, configPath string, quiet bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", inputPath, err)
	}

	tokens := lexer.Tokenize(string(data))

	var messages []syntax.Message
	onMessage := func(m syntax.Message) {
		if !cfg.Diagnostics.EmitDeprecationWarnings && !m.IsError {
			return
		}
		messages = append(messages, m)
	}

	mod, diags := syntax.ParseModule(tokens, inputPath, nil, onMessage, cfg.ParserOptions())

	if !quiet {
		srcLines := strings.Split(string(data), "\n")
		limit := cfg.Diagnostics.MaxDisplayed
		for i, m := range messages {
			if limit > 0 && i >= limit {
				fmt.Fprintf(os.Stderr, "  ... %d more diagnostics suppressed\n", len(messages)-limit)
				break
			}
			fmt.Fprintln(os.Stderr, m.String())
			if m.Pos.Line >= 1 && m.Pos.Line <= len(srcLines) {
				fmt.Fprintln(os.Stderr, syntax.RenderCaret(srcLines[m.Pos.Line-1], m))
			}
		}
	}

	name := moduleChainString(mod)
	if name == "" {
		name = "(no module declaration)"
	}
	fmt.Printf("%s [%s]: %d declaration(s), %d error(s), %d warning(s)\n",
		inputPath, name, len(mod.Declarations), diags.ErrorCount(), diags.WarningCount())

	if diags.ErrorCount() > 0 {
		return fmt.Errorf("parse failed with %d error(s)", diags.ErrorCount())
	}
	return nil
}

// moduleChainString renders a module declaration's dotted name for the
// summary line parseFile prints; it returns "" when there is no module
// declaration.
func moduleChainString(mod *syntax.Module) string {
	if mod.ModuleDecl == nil {
		return ""
	}
	return mod.ModuleDecl.ModuleName.String()
}
