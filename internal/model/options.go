package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-formbuilder/pkg/palette"
)

// Options configures the behaviour of the Factory. Options are constructed by
// the public adapter in pkg/model and passed into NewFactory.
type Options struct {
	Palette *palette.Registry
	Clock   func() time.Time
	Entropy func() uuid.UUID
}

func defaultOptions() Options {
	return Options{
		Palette: palette.Default(),
		Clock:   time.Now,
		Entropy: uuid.New,
	}
}
