// Package main is the entry point for the paredit command.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/waddie/paredit.hx/internal/app"
	"github.com/waddie/paredit.hx/internal/config"
	"github.com/waddie/paredit.hx/internal/dispatcher/handler"
	edithandler "github.com/waddie/paredit.hx/internal/dispatcher/handlers/editor"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const configEnv = "PAREDIT_CONFIG"

// errUsage marks a command line that cannot be run.
var errUsage = errors.New("usage")

type cliOptions struct {
	app         app.Options
	op          string
	pos         int64
	count       int
	interactive bool
	write       bool
	printCursor bool
	listLangs   bool
	showVersion bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 2
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "paredit %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	if opts.app.FilePath == "" || opts.app.FilePath == "-" {
		opts.app.FilePath = ""
		if !opts.interactive {
			opts.app.Input = stdin
		}
	}
	if opts.app.LogOutput == nil {
		opts.app.LogOutput = stderr
	}

	application, err := app.New(opts.app)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer func() {
		if err := application.Close(); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
	}()

	switch {
	case opts.listLangs:
		for _, name := range application.Registry().Names() {
			fmt.Fprintln(stdout, name)
		}
		return 0
	case opts.interactive:
		return runInteractive(application, stderr)
	default:
		return runBatch(application, opts, stdout, stderr)
	}
}

// runBatch applies one operation and prints the result.
func runBatch(application *app.Application, opts *cliOptions, stdout, stderr io.Writer) int {
	if err := application.SetCursor(opts.pos); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	result := application.Execute(actionName(opts.op), opts.count)
	switch {
	case result.IsError():
		fmt.Fprintf(stderr, "Error: %v\n", result.Error)
		return 1
	case result.Status == handler.StatusCancelled:
		fmt.Fprintf(stderr, "Error: %s: %s\n", opts.op, result.Message)
		return 1
	}
	if result.IsNoOp() {
		msg := result.Message
		if msg == "" {
			msg = "nothing to do"
		}
		fmt.Fprintf(stderr, "%s: %s\n", opts.op, msg)
	}

	if opts.write {
		if r := application.Execute(edithandler.ActionSave, 1); r.IsError() {
			fmt.Fprintf(stderr, "Error: %v\n", r.Error)
			return 1
		}
	} else if _, err := io.WriteString(stdout, application.Engine().Text()); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if opts.printCursor {
		eng := application.Engine()
		if sel, ok := eng.SelectedRange(); ok {
			fmt.Fprintf(stderr, "selection=%d-%d\n", sel.Start, sel.End)
		}
		fmt.Fprintf(stderr, "cursor=%d\n", eng.Cursor())
	}
	return 0
}

func runInteractive(application *app.Application, stderr io.Writer) int {
	log := application.Logger()
	if err := application.WatchConfig(); err != nil {
		log.Warn("config watch: %v", err)
	}
	if err := application.WatchPlugins(); err != nil {
		log.Warn("plugin watch: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	view := app.NewView(application, screen)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		if _, ok := <-signals; ok {
			view.Stop()
		}
	}()

	if err := view.Run(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// actionName qualifies a bare operation name with the paredit namespace.
func actionName(op string) string {
	if strings.Contains(op, ".") {
		return op
	}
	return "paredit." + op
}

func parseFlags(args []string, stderr io.Writer) (*cliOptions, error) {
	opts := &cliOptions{}
	fs := flag.NewFlagSet("paredit", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.app.ConfigPath, "config", "", "Path to configuration file (default $"+configEnv+" or the user config)")
	fs.StringVar(&opts.app.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.app.Language, "lang", "", "Language rule set (default from the file extension)")
	fs.StringVar(&opts.app.Language, "l", "", "Language rule set (shorthand)")
	fs.StringVar(&opts.op, "op", "", "Operation to apply, e.g. slurpForward or paredit.raiseSexp")
	fs.Int64Var(&opts.pos, "pos", 0, "Cursor byte offset before the operation")
	fs.IntVar(&opts.count, "count", 1, "Repeat count")
	fs.StringVar(&opts.app.CursorBehavior, "cursor", "", "Cursor behavior (auto, remain, follow)")
	fs.StringVar(&opts.app.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.app.ReadOnly, "readonly", false, "Reject every edit")
	fs.BoolVar(&opts.app.ReadOnly, "R", false, "Reject every edit (shorthand)")
	fs.BoolVar(&opts.interactive, "i", false, "Edit interactively in the terminal")
	fs.BoolVar(&opts.write, "w", false, "Write the result back to the file instead of stdout")
	fs.BoolVar(&opts.printCursor, "print-cursor", false, "Print the final cursor offset on stderr")
	fs.BoolVar(&opts.listLangs, "list-languages", false, "List the available languages")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "paredit - structural editing for Lisp code\n\n")
		fmt.Fprintf(stderr, "Usage: paredit [options] [file]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  echo '(a) b' | paredit -op slurpForward -pos 1\n")
		fmt.Fprintf(stderr, "  paredit -op barfBackward -pos 12 -w core.clj\n")
		fmt.Fprintf(stderr, "  paredit -i core.clj\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.showVersion {
		return opts, nil
	}

	switch fs.NArg() {
	case 0:
	case 1:
		opts.app.FilePath = fs.Arg(0)
	default:
		fmt.Fprintf(stderr, "Error: at most one file may be given\n")
		fs.Usage()
		return nil, errUsage
	}

	if opts.app.LogLevel != "" {
		switch strings.ToLower(opts.app.LogLevel) {
		case "debug", "info", "warn", "error":
		default:
			return nil, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", opts.app.LogLevel)
		}
	}
	if opts.count < 1 {
		return nil, fmt.Errorf("invalid count %d", opts.count)
	}
	if !opts.interactive && !opts.listLangs && opts.op == "" {
		fmt.Fprintf(stderr, "Error: -op is required without -i\n")
		fs.Usage()
		return nil, errUsage
	}
	if opts.write && (opts.app.FilePath == "" || opts.app.FilePath == "-") {
		return nil, errors.New("-w needs a file argument")
	}

	if opts.app.ConfigPath == "" {
		opts.app.ConfigPath = os.Getenv(configEnv)
	}
	if opts.app.ConfigPath == "" {
		if path, ok := config.Locate(); ok {
			opts.app.ConfigPath = path
		}
	}
	return opts, nil
}
