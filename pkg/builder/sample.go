package builder

import (
	"context"
	"embed"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/loader"
)

// SampleFile names the bundled example form inside SampleFS.
const SampleFile = "sample.json"

// SampleFS holds the example form used to bootstrap new sessions.
//
//go:embed sample.json
var SampleFS embed.FS

// SampleSource addresses the bundled example form.
func SampleSource() loader.Source {
	return loader.SourceFromFS(SampleFile)
}

// Bootstrap loads src into the session, falling back to the bundled sample
// when src is nil. A failed load is logged and leaves the tree as it was; it
// reports whether the tree was replaced.
func (s *Session) Bootstrap(ctx context.Context, src loader.Source) bool {
	l := s.loader
	if src == nil {
		src = SampleSource()
		l = loader.New(loader.WithFileSystem(SampleFS), loader.WithLogger(s.logger))
	}
	fields, err := l.LoadFields(ctx, src)
	if err != nil {
		s.logger.Error("error loading sample data",
			zap.String("location", src.Location()),
			zap.Error(err),
		)
		return false
	}
	s.tree.Replace(fields)
	s.logger.Info("sample data loaded", zap.String("location", src.Location()), zap.Int("fields", len(fields)))
	return true
}
