package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/formtree"
	"github.com/goliatone/go-formbuilder/pkg/interact"
	"github.com/goliatone/go-formbuilder/pkg/palette"
	"github.com/goliatone/go-formbuilder/pkg/preview"
	"github.com/goliatone/go-formbuilder/pkg/schema"
)

const shutdownTimeout = 5 * time.Second

// Option customises a Server.
type Option func(*Server)

// WithTree serves an existing tree.
func WithTree(tree *formtree.Tree) Option {
	return func(s *Server) {
		if tree != nil {
			s.tree = tree
		}
	}
}

// WithLogger attaches a logger used for requests and session events.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPalette overrides the palette.
func WithPalette(registry *palette.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.palette = registry
		}
	}
}

// WithPreview overrides the preview renderer.
func WithPreview(renderer *preview.Renderer) Option {
	return func(s *Server) {
		s.preview = renderer
	}
}

// WithSchema overrides the schema generator.
func WithSchema(gen *schema.Generator) Option {
	return func(s *Server) {
		if gen != nil {
			s.schema = gen
		}
	}
}

// Server exposes one form tree over HTTP. Requests are serialised by a mutex
// since the tree itself is not synchronised.
type Server struct {
	mu      sync.Mutex
	tree    *formtree.Tree
	palette *palette.Registry
	preview *preview.Renderer
	schema  *schema.Generator
	logger  *zap.Logger
}

// New constructs a Server applying options.
func New(options ...Option) (*Server, error) {
	s := &Server{}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.palette == nil {
		s.palette = palette.Default()
	}
	if s.tree == nil {
		s.tree = formtree.New(formtree.WithLogger(s.logger))
	}
	if s.schema == nil {
		s.schema = schema.New()
	}
	if s.preview == nil {
		renderer, err := preview.New(preview.WithPalette(s.palette), preview.WithLogger(s.logger))
		if err != nil {
			return nil, fmt.Errorf("server: preview: %w", err)
		}
		s.preview = renderer
	}
	return s, nil
}

// Handler builds the gin engine serving the API.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(RequestID(), Logger(s.logger), Recovery(s.logger))
	r.MaxMultipartMemory = 32 << 20

	api := r.Group("/api")
	api.GET("/palette", s.listPalette)

	api.GET("/form", s.exportForm)
	api.PUT("/form", s.importForm)
	api.DELETE("/form", s.clearForm)
	api.POST("/form/sample", s.loadSample)

	api.POST("/fields", s.createField)
	api.GET("/fields/:uid", s.getField)
	api.PUT("/fields/:uid", s.updateField)
	api.DELETE("/fields/:uid", s.removeField)
	api.POST("/fields/:uid/move", s.moveField)
	api.POST("/fields/:uid/photo", s.attachPhoto)
	api.DELETE("/fields/:uid/photo", s.detachPhoto)

	api.POST("/containers/:uid/columns", s.addColumn)
	api.DELETE("/containers/:uid/columns/:idx", s.removeColumn)

	api.POST("/tables/:uid/rows", s.addTableRow)
	api.DELETE("/tables/:uid/rows/:idx", s.removeTableRow)
	api.POST("/tables/:uid/columns", s.addTableColumn)
	api.DELETE("/tables/:uid/columns/:idx", s.removeTableColumn)
	api.PUT("/tables/:uid/headers/:idx", s.setTableHeader)

	api.GET("/schema", s.getSchema)
	api.GET("/validate", s.validateForm)
	r.GET("/preview", s.getPreview)
	r.StaticFS(preview.AssetsPrefix, http.FS(preview.AssetsFS()))
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("form builder listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	}
}

// session wraps the shared tree for one request. confirmations are answered
// with confirm; driver messages are collected on the returned driver.
func (s *Server) session(confirm bool) (*builder.Session, *interact.Fixed) {
	driver := interact.NewFixed(confirm, nil)
	return builder.NewSession(
		builder.WithTree(s.tree),
		builder.WithPromptDriver(driver),
		builder.WithPalette(s.palette),
		builder.WithLogger(s.logger),
	), driver
}
