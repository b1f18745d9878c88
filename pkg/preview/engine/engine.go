// Package engine loads the preview templates into a pongo2 set and renders
// them with field and page views.
package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	json "github.com/goccy/go-json"
)

const extension = ".tpl"

// Renderer renders a named preview template.
type Renderer interface {
	RenderTemplate(name string, data map[string]any) (string, error)
}

// Option configures where templates are loaded from.
type Option func(*config)

type config struct {
	overrideDir string
	embedded    fs.FS
}

// WithBaseDir adds a directory whose templates take precedence over the
// embedded ones.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.overrideDir = strings.TrimSpace(dir)
	}
}

// WithFS sets the bundled template files.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.embedded = files
	}
}

// Engine caches parsed templates by name.
type Engine struct {
	mu     sync.Mutex
	set    *pongo2.TemplateSet
	parsed map[string]*pongo2.Template
}

var _ Renderer = (*Engine)(nil)

// New builds an Engine. At least one template source is required.
func New(options ...Option) (*Engine, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	var loaders []pongo2.TemplateLoader
	if cfg.overrideDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.overrideDir)
		if err != nil {
			return nil, fmt.Errorf("engine: template dir %s: %w", cfg.overrideDir, err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.embedded != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.embedded))
	}
	if len(loaders) == 0 {
		return nil, errors.New("engine: no template source")
	}

	return &Engine{
		set:    pongo2.NewSet("preview", loaders...),
		parsed: make(map[string]*pongo2.Template),
	}, nil
}

// RenderTemplate executes the template called name (".tpl" is implied).
// Struct values in data are exposed to the template under their JSON names.
func (e *Engine) RenderTemplate(name string, data map[string]any) (string, error) {
	tmpl, err := e.lookup(strings.TrimSuffix(name, extension) + extension)
	if err != nil {
		return "", err
	}
	ctx, err := viewContext(data)
	if err != nil {
		return "", fmt.Errorf("engine: %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("engine: execute %s: %w", name, err)
	}
	return buf.String(), nil
}

func (e *Engine) lookup(path string) (*pongo2.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.parsed[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("engine: load %s: %w", path, err)
	}
	e.parsed[path] = tmpl
	return tmpl, nil
}

// viewContext round trips each value through JSON so templates address
// fields by their serialized names. Strings pass through untouched since
// pre-rendered HTML fragments are handed over as strings.
func viewContext(data map[string]any) (pongo2.Context, error) {
	ctx := make(pongo2.Context, len(data))
	for key, value := range data {
		switch v := value.(type) {
		case nil, string, bool, int, float64:
			ctx[key] = v
			continue
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
		ctx[key] = decoded
	}
	return ctx, nil
}
