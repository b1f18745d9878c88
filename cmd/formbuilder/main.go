package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

type command struct {
	summary string
	run     func(ctx context.Context, args []string) error
}

var commands = map[string]command{
	"palette": {"list the field types that can be added", runPalette},
	"tree":    {"print the outline of a form definition", runTree},
	"export":  {"rewrite a form definition as JSON or YAML", runExport},
	"schema":  {"generate the OpenAPI submission schema of a form", runSchema},
	"preview": {"render a form definition as an HTML page", runPreview},
	"edit":    {"build a form interactively in the terminal", runEdit},
	"serve":   {"serve the form builder HTTP API", runServe},
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	cmd, ok := commands[flag.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", flag.Arg(0))
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.run(ctx, flag.Args()[1:]); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "%s: %v\n", flag.Arg(0), err)
		os.Exit(1)
	}
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s <command> [flags]\n\nCommands:\n", filepath.Base(os.Args[0]))
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %-8s %s\n", name, commands[name].summary)
	}
	fmt.Fprintf(out, "\nRun '%s <command> -h' for command flags.\n", filepath.Base(os.Args[0]))
}

// common holds the flags every command accepts.
type common struct {
	source   string
	output   string
	logLevel string
	dev      bool
}

func newFlagSet(name string, c *common) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.StringVar(&c.source, "source", "", "form definition path or URL (the bundled sample when empty)")
	fs.StringVar(&c.output, "output", "", "output file (stdout if empty)")
	fs.StringVar(&c.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	fs.BoolVar(&c.dev, "dev", false, "human readable development logging")
	return fs
}

func (c common) logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.logLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	if c.dev {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = level
	return cfg.Build()
}

func (c common) write(payload []byte) error {
	if c.output == "" {
		_, err := os.Stdout.Write(payload)
		return err
	}
	if err := os.WriteFile(c.output, payload, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Written to %s\n", c.output)
	return nil
}
