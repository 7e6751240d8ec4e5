// Package main is the entry point for ropectl, a command line front end to
// the text rope engine.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/dshills/textrope/internal/config"
	"github.com/dshills/textrope/internal/engine/rope"
	"github.com/dshills/textrope/internal/engine/tracking"
	"github.com/dshills/textrope/internal/logging"
	"github.com/dshills/textrope/internal/script"
	"github.com/dshills/textrope/internal/watcher"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// options holds parsed command line flags. Negative numeric values mean
// the query was not requested.
type options struct {
	configPath string
	logLevel   string
	scriptPath string
	line       int
	fromLine   int
	substr     string
	char       int
	stats      bool
	watch      bool
	version    bool
	file       string
}

func (o options) hasQuery() bool {
	return o.line >= 0 || o.fromLine >= 0 || o.substr != "" || o.char >= 0 || o.stats
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if opts.version {
		fmt.Fprintf(stdout, "ropectl %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	a, err := newApp(opts, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if opts.watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		err = a.watch(ctx)
	} else {
		err = a.once(stdin)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("ropectl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "Path to TOML configuration file")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&opts.scriptPath, "script", "", "YAML edit script to apply before queries")
	fs.IntVar(&opts.line, "line", -1, "Print line `N` (0-based)")
	fs.IntVar(&opts.fromLine, "from-line", -1, "Print the text from line `N` to the end")
	fs.StringVar(&opts.substr, "substr", "", "Print `start:len` characters")
	fs.IntVar(&opts.char, "char", -1, "Print the character at index `N`")
	fs.BoolVar(&opts.stats, "stats", false, "Print length, line count and tree depth")
	fs.BoolVar(&opts.watch, "watch", false, "Reload the file and rerun on every change")
	fs.BoolVar(&opts.version, "version", false, "Show version information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "ropectl - query and edit text with an immutable rope\n\n")
		fmt.Fprintf(stderr, "Usage: ropectl [options] [file]\n\n")
		fmt.Fprintf(stderr, "Reads standard input when no file is given.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  ropectl -stats notes.txt           Show size and shape\n")
		fmt.Fprintf(stderr, "  ropectl -line 41 main.go           Print line 42\n")
		fmt.Fprintf(stderr, "  ropectl -script edit.yaml doc.txt  Apply edits and print the result\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	switch fs.NArg() {
	case 0:
	case 1:
		opts.file = fs.Arg(0)
	default:
		return opts, fmt.Errorf("expected at most one file, got %d", fs.NArg())
	}

	if opts.watch && opts.file == "" {
		return opts, errors.New("-watch needs a file argument")
	}
	return opts, nil
}

// app holds everything a single invocation needs.
type app struct {
	opts   options
	cfg    config.Config
	log    *logging.Logger
	script *script.Script
	snaps  *tracking.SnapshotManager
	load   watcher.LoadFunc
	stdout io.Writer
}

func newApp(opts options, stdout, stderr io.Writer) (*app, error) {
	cfg, err := config.LoadWithEnv(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	log := logging.New(logging.Config{
		Level:  cfg.LogLevel(),
		Output: stderr,
		Prefix: "ropectl",
	})

	a := &app{
		opts:   opts,
		cfg:    cfg,
		log:    log,
		snaps:  tracking.NewSnapshotManager(tracking.WithLogger(log)),
		load:   newLoader(cfg.Input.Normalize),
		stdout: stdout,
	}

	if opts.scriptPath != "" {
		a.script, err = script.Load(opts.scriptPath)
		if err != nil {
			return nil, err
		}
		log.Debug("loaded script %s with %d steps", opts.scriptPath, len(a.script.Steps))
	}
	return a, nil
}

// newLoader returns a loader that applies the configured normalization
// form while reading.
func newLoader(form string) watcher.LoadFunc {
	return func(r io.Reader) (rope.Text, error) {
		switch strings.ToLower(form) {
		case "nfc":
			r = transform.NewReader(r, norm.NFC)
		case "nfd":
			r = transform.NewReader(r, norm.NFD)
		}
		return rope.FromReader(r)
	}
}

// once reads the input a single time and processes it.
func (a *app) once(stdin io.Reader) error {
	in := stdin
	name := "<stdin>"
	if a.opts.file != "" {
		f, err := os.Open(a.opts.file)
		if err != nil {
			return err
		}
		defer f.Close()
		in, name = f, a.opts.file
	}

	text, err := a.load(in)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	a.log.WithField("source", name).Debug("loaded %d chars, %d lines", text.Len(), text.Lines())
	return a.process(context.Background(), text)
}

// watch processes the file now and again after every change until ctx is
// done. Processing errors are reported without stopping the watch.
func (a *app) watch(ctx context.Context) error {
	w, err := watcher.New(a.opts.file,
		watcher.WithDebounce(time.Duration(a.cfg.Watch.Debounce)),
		watcher.WithLoader(a.load),
		watcher.WithLogger(a.log),
	)
	if err != nil {
		return err
	}

	return w.Run(ctx, func(text rope.Text) {
		if err := a.process(ctx, text); err != nil {
			a.log.Error("%v", err)
		}
	})
}

// process applies the script, if any, and answers the queries. With no
// query flags the resulting text is written out.
func (a *app) process(ctx context.Context, text rope.Text) error {
	if a.script != nil {
		a.snaps.Clear()
		var err error
		text, err = a.script.Apply(ctx, text, a.snaps)
		if err != nil {
			return err
		}
		if limit := a.cfg.Snapshots.Limit; limit > 0 {
			a.snaps.PruneKeepN(limit)
		}
	}
	if a.cfg.Input.Rebalance {
		text = text.Rebalance()
	}

	if !a.opts.hasQuery() {
		_, err := text.WriteTo(a.stdout)
		return err
	}
	return a.query(text)
}

func (a *app) query(text rope.Text) error {
	if a.opts.line >= 0 {
		line, ok := text.Line(a.opts.line)
		if !ok {
			return fmt.Errorf("line %d out of range (text has %d lines)", a.opts.line, text.Lines())
		}
		if _, err := line.WriteTo(a.stdout); err != nil {
			return err
		}
	}

	if a.opts.fromLine >= 0 {
		rest, ok := text.FromLine(a.opts.fromLine)
		if !ok {
			return fmt.Errorf("line %d out of range (text has %d lines)", a.opts.fromLine, text.Lines())
		}
		if _, err := rest.WriteTo(a.stdout); err != nil {
			return err
		}
	}

	if a.opts.substr != "" {
		start, length, err := parseRange(a.opts.substr)
		if err != nil {
			return err
		}
		if _, err := text.Substr(start, length).WriteTo(a.stdout); err != nil {
			return err
		}
	}

	if a.opts.char >= 0 {
		c, ok := text.CharAt(a.opts.char)
		if !ok {
			return fmt.Errorf("index %d out of range (text has %d chars)", a.opts.char, text.Len())
		}
		fmt.Fprintf(a.stdout, "%q\n", c)
	}

	if a.opts.stats {
		fmt.Fprintf(a.stdout, "chars: %d\n", text.Len())
		fmt.Fprintf(a.stdout, "lines: %d\n", text.Lines())
		fmt.Fprintf(a.stdout, "depth: %d\n", text.Depth())
		if a.script != nil {
			fmt.Fprintf(a.stdout, "snapshots: %d\n", a.snaps.Count())
		}
	}
	return nil
}

// parseRange parses "start:len".
func parseRange(s string) (start, length int, err error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid range %q (want start:len)", s)
	}
	if start, err = strconv.Atoi(a); err != nil {
		return 0, 0, fmt.Errorf("invalid range start %q: %w", a, err)
	}
	if length, err = strconv.Atoi(b); err != nil {
		return 0, 0, fmt.Errorf("invalid range length %q: %w", b, err)
	}
	return start, length, nil
}
