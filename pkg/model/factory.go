package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-formbuilder/internal/model"
	"github.com/goliatone/go-formbuilder/pkg/palette"
)

// Factory instantiates fields from palette types.
type Factory interface {
	Create(typeID string) *Field
	NewUID() string
	NewName() string
}

// FactoryOption configures the factory behaviour.
type FactoryOption func(*model.Options)

// WithPalette overrides the palette used to label new fields.
func WithPalette(registry *palette.Registry) FactoryOption {
	return func(opts *model.Options) {
		opts.Palette = registry
	}
}

// WithClock overrides the time source embedded in generated uids.
func WithClock(clock func() time.Time) FactoryOption {
	return func(opts *model.Options) {
		opts.Clock = clock
	}
}

// WithEntropy overrides the random source for uid suffixes and names.
func WithEntropy(entropy func() uuid.UUID) FactoryOption {
	return func(opts *model.Options) {
		opts.Entropy = entropy
	}
}

// NewFactory returns a Factory backed by the internal implementation.
func NewFactory(options ...FactoryOption) Factory {
	cfg := model.Options{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return model.NewFactory(cfg)
}
