package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/internal/server"
	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/codec"
	"github.com/goliatone/go-formbuilder/pkg/formtree"
	"github.com/goliatone/go-formbuilder/pkg/interact"
	"github.com/goliatone/go-formbuilder/pkg/loader"
	"github.com/goliatone/go-formbuilder/pkg/palette"
	"github.com/goliatone/go-formbuilder/pkg/preview"
	"github.com/goliatone/go-formbuilder/pkg/schema"
)

const fetchTimeout = 30 * time.Second

// load builds a tree from c.source, or from the bundled sample when no source
// is given and sample is set.
func load(ctx context.Context, c common, logger *zap.Logger, sample bool) (*formtree.Tree, error) {
	tree := formtree.New(formtree.WithLogger(logger))
	if c.source == "" {
		if sample {
			sess := builder.NewSession(builder.WithTree(tree), builder.WithLogger(logger))
			if !sess.Bootstrap(ctx, nil) {
				return nil, errors.New("error loading sample data")
			}
		}
		return tree, nil
	}
	src, err := loader.ParseSource(c.source)
	if err != nil {
		return nil, err
	}
	l := loader.New(loader.WithLogger(logger), loader.WithHTTPFallback(fetchTimeout))
	fields, err := l.LoadFields(ctx, src)
	if err != nil {
		return nil, err
	}
	tree.Replace(fields)
	return tree, nil
}

func runPalette(_ context.Context, args []string) error {
	var c common
	fs := newFlagSet("palette", &c)
	if err := fs.Parse(args); err != nil {
		return err
	}
	id := color.New(color.FgCyan, color.Bold)
	for _, d := range palette.Default().List() {
		fmt.Printf("%s %s (%s)\n", id.Sprintf("%-10s", d.ID), d.Label, d.Icon)
	}
	return nil
}

func runTree(ctx context.Context, args []string) error {
	var c common
	fs := newFlagSet("tree", &c)
	plain := fs.Bool("plain", false, "disable colours")
	if err := fs.Parse(args); err != nil {
		return err
	}
	logger, err := c.logger()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	tree, err := load(ctx, c, logger, true)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := builder.NewOutline(palette.Default(), *plain).Write(&buf, tree.Fields); err != nil {
		return err
	}
	return c.write(buf.Bytes())
}

func runExport(ctx context.Context, args []string) error {
	var c common
	fs := newFlagSet("export", &c)
	format := fs.String("format", "", "json or yaml (from -output's extension when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	logger, err := c.logger()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	f, err := resolveFormat(*format, c.output)
	if err != nil {
		return err
	}
	tree, err := load(ctx, c, logger, true)
	if err != nil {
		return err
	}
	if dups := tree.DuplicateNames(); len(dups) > 0 {
		logger.Warn("form has duplicate names", zap.Any("names", dups))
	}

	sess := builder.NewSession(
		builder.WithTree(tree),
		builder.WithLogger(logger),
		builder.WithPromptDriver(interact.NewFixed(false, os.Stderr)),
	)
	if c.output == "" {
		return sess.Export(ctx, os.Stdout, f, "stdout")
	}
	var buf bytes.Buffer
	if err := sess.Export(ctx, &buf, f, c.output); err != nil {
		return err
	}
	return os.WriteFile(c.output, buf.Bytes(), 0o644)
}

func runSchema(ctx context.Context, args []string) error {
	var c common
	fs := newFlagSet("schema", &c)
	format := fs.String("format", "", "json or yaml (from -output's extension when empty)")
	title := fs.String("title", "", "document title")
	path := fs.String("path", "", "submission path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	logger, err := c.logger()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	f, err := resolveFormat(*format, c.output)
	if err != nil {
		return err
	}
	tree, err := load(ctx, c, logger, true)
	if err != nil {
		return err
	}
	var opts []schema.Option
	if *title != "" {
		opts = append(opts, schema.WithTitle(*title))
	}
	if *path != "" {
		opts = append(opts, schema.WithPath(*path))
	}
	gen := schema.New(opts...)
	if err := gen.Validate(ctx, tree.Fields); err != nil {
		return err
	}
	doc, err := gen.Document(tree.Fields)
	if err != nil {
		return err
	}
	payload, err := schema.Marshal(doc, f)
	if err != nil {
		return err
	}
	return c.write(payload)
}

func runPreview(ctx context.Context, args []string) error {
	var c common
	fs := newFlagSet("preview", &c)
	themeName := fs.String("theme", "", "theme name")
	variant := fs.String("variant", "", "theme variant (e.g. dark)")
	title := fs.String("title", "", "page title")
	templates := fs.String("templates", "", "directory overriding the embedded templates")
	if err := fs.Parse(args); err != nil {
		return err
	}
	logger, err := c.logger()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	tree, err := load(ctx, c, logger, true)
	if err != nil {
		return err
	}
	opts := []preview.Option{
		preview.WithLogger(logger),
		preview.WithPalette(palette.Default()),
		preview.WithTheme(*themeName, *variant),
	}
	if *title != "" {
		opts = append(opts, preview.WithTitle(*title))
	}
	if *templates != "" {
		opts = append(opts, preview.WithTemplateDir(*templates))
	}
	renderer, err := preview.New(opts...)
	if err != nil {
		return err
	}
	page, err := renderer.Render(ctx, tree.Fields)
	if err != nil {
		return err
	}
	return c.write(page)
}

func runEdit(ctx context.Context, args []string) error {
	var c common
	fs := newFlagSet("edit", &c)
	noColor := fs.Bool("no-color", false, "disable colours")
	if err := fs.Parse(args); err != nil {
		return err
	}
	logger, err := c.logger()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	tree, err := load(ctx, c, logger, true)
	if err != nil {
		return err
	}
	driverOpts := []interact.Option{interact.WithOutput(os.Stdout)}
	if *noColor {
		driverOpts = append(driverOpts, interact.WithoutColor())
	}
	sess := builder.NewSession(
		builder.WithTree(tree),
		builder.WithLogger(logger),
		builder.WithPromptDriver(interact.NewSurveyDriver(driverOpts...)),
	)
	if err := sess.Run(ctx, os.Stdout); err != nil {
		return err
	}
	if c.output == "" {
		return nil
	}
	return sess.ExportFile(ctx, c.output)
}

func runServe(ctx context.Context, args []string) error {
	var c common
	fs := newFlagSet("serve", &c)
	addr := fs.String("addr", ":8080", "listen address")
	sample := fs.Bool("sample", false, "start from the bundled sample when -source is empty")
	if err := fs.Parse(args); err != nil {
		return err
	}
	logger, err := c.logger()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	tree, err := load(ctx, c, logger, *sample)
	if err != nil {
		return err
	}
	if !c.dev {
		gin.SetMode(gin.ReleaseMode)
	}
	srv, err := server.New(server.WithTree(tree), server.WithLogger(logger))
	if err != nil {
		return err
	}
	return srv.Run(ctx, *addr)
}

func resolveFormat(raw, output string) (codec.Format, error) {
	if raw != "" {
		return codec.ParseFormat(raw)
	}
	if output != "" {
		return codec.FormatFromPath(output), nil
	}
	return codec.FormatJSON, nil
}
