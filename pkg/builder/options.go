package builder

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/formtree"
	"github.com/goliatone/go-formbuilder/pkg/interact"
	"github.com/goliatone/go-formbuilder/pkg/loader"
	"github.com/goliatone/go-formbuilder/pkg/palette"
)

// Option customises a Session.
type Option func(*Session)

// WithTree wraps an existing tree instead of a fresh one.
func WithTree(tree *formtree.Tree) Option {
	return func(s *Session) {
		if tree != nil {
			s.tree = tree
		}
	}
}

// WithPromptDriver sets the driver used for confirmations and messages.
func WithPromptDriver(driver interact.PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithPalette overrides the palette offered when adding fields.
func WithPalette(registry *palette.Registry) Option {
	return func(s *Session) {
		if registry != nil {
			s.palette = registry
		}
	}
}

// WithLoader overrides the loader used by Bootstrap and Import.
func WithLoader(l *loader.Loader) Option {
	return func(s *Session) {
		if l != nil {
			s.loader = l
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
