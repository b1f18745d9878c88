// Package formbuilder is the entry point for building form definitions in Go.
// It re-exports the pieces most callers need: the field tree, interactive
// sessions, the HTTP server, the definition loader and the renderers.
package formbuilder

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-formbuilder/internal/server"
	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/codec"
	"github.com/goliatone/go-formbuilder/pkg/formtree"
	"github.com/goliatone/go-formbuilder/pkg/loader"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/preview"
	"github.com/goliatone/go-formbuilder/pkg/schema"
)

// Field aliases model.Field for callers that only import the root package.
type Field = model.Field

// Location aliases formtree.Location.
type Location = formtree.Location

// Server aliases the HTTP server type.
type Server = server.Server

// ServerOption configures NewServer.
type ServerOption = server.Option

// NewTree constructs an empty field tree.
func NewTree(options ...formtree.Option) *formtree.Tree {
	return formtree.New(options...)
}

// NewSession wraps a tree in an interactive session.
func NewSession(options ...builder.Option) *builder.Session {
	return builder.NewSession(options...)
}

// NewServer constructs the HTTP API around a tree.
func NewServer(options ...ServerOption) (*Server, error) {
	return server.New(options...)
}

// WithServerTree serves tree from NewServer.
func WithServerTree(tree *formtree.Tree) ServerOption {
	return server.WithTree(tree)
}

// NewLoader constructs a definition loader.
func NewLoader(options ...loader.Option) *loader.Loader {
	return loader.New(options...)
}

// LoadFields reads a form definition from a path or http(s) URL.
func LoadFields(ctx context.Context, raw string, options ...loader.Option) ([]*Field, error) {
	src, err := loader.ParseSource(raw)
	if err != nil {
		return nil, err
	}
	return loader.New(options...).LoadFields(ctx, src)
}

// Export serialises fields as the 4-space indented JSON document.
func Export(fields []*Field) ([]byte, error) {
	return codec.Serialize(fields)
}

// RenderPreview renders fields as a standalone HTML page.
func RenderPreview(ctx context.Context, fields []*Field, options ...preview.Option) ([]byte, error) {
	renderer, err := preview.New(options...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, fields)
}

// GenerateSchema describes the submission of fields as an OpenAPI document in
// the requested format.
func GenerateSchema(ctx context.Context, fields []*Field, format codec.Format, options ...schema.Option) ([]byte, error) {
	gen := schema.New(options...)
	doc, err := gen.Document(fields)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}
	return schema.Marshal(doc, format)
}

// EmbeddedTemplates exposes the built-in preview templates so callers can
// reuse or extend them without importing the preview package directly.
func EmbeddedTemplates() fs.FS {
	return preview.TemplatesFS()
}

// AssetsFS exposes the bundled preview stylesheet.
func AssetsFS() fs.FS {
	return preview.AssetsFS()
}
