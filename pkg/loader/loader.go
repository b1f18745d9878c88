package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/codec"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

var (
	// ErrEmptySource is returned when no location is supplied.
	ErrEmptySource = errors.New("loader: source location is required")
	// ErrHTTPDisabled is returned for URL sources when HTTP loading was not
	// enabled.
	ErrHTTPDisabled = errors.New("loader: http support disabled")
	// ErrUnsupportedSource is returned for unknown source kinds.
	ErrUnsupportedSource = errors.New("loader: unsupported source kind")
)

// maxDocumentSize caps remote and local reads.
const maxDocumentSize = 16 << 20

// Options configures how a Loader resolves sources.
type Options struct {
	// FileSystem backs SourceFromFS lookups.
	FileSystem fs.FS
	// HTTPClient is used for URL sources. Nil disables HTTP unless
	// AllowHTTPFallback is set.
	HTTPClient        *http.Client
	AllowHTTPFallback bool
	RequestTimeout    time.Duration
	Logger            *zap.Logger
}

// Option mutates Options prior to construction.
type Option func(*Options)

// WithFileSystem injects an fs.FS implementation for SourceFromFS.
func WithFileSystem(files fs.FS) Option {
	return func(opts *Options) {
		opts.FileSystem = files
	}
}

// WithHTTPClient injects a custom HTTP client for remote documents.
func WithHTTPClient(client *http.Client) Option {
	return func(opts *Options) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables HTTP loading with a default client and the given
// timeout.
func WithHTTPFallback(timeout time.Duration) Option {
	return func(opts *Options) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// Document is a fetched definition and its origin.
type Document struct {
	Source Source
	Format codec.Format
	Raw    []byte
}

// Fields decodes the document into a field tree.
func (d Document) Fields() ([]*model.Field, error) {
	fields, err := codec.Decode(d.Format, d.Raw)
	if err != nil {
		return nil, fmt.Errorf("loader: decode %s: %w", d.Source.Location(), err)
	}
	return fields, nil
}

// Loader fetches form definitions from files, an fs.FS or HTTP.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
	logger  *zap.Logger
}

// New constructs a Loader applying the provided options.
func New(options ...Option) *Loader {
	cfg := Options{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	var httpClient *http.Client
	switch {
	case cfg.HTTPClient != nil:
		clone := *cfg.HTTPClient
		if cfg.RequestTimeout > 0 && clone.Timeout == 0 {
			clone.Timeout = cfg.RequestTimeout
		}
		httpClient = &clone
	case cfg.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: cfg.RequestTimeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		fs:      cfg.FileSystem,
		http:    httpClient,
		timeout: cfg.RequestTimeout,
		logger:  logger,
	}
}

// Load fetches the raw document named by src.
func (l *Loader) Load(ctx context.Context, src Source) (Document, error) {
	if src == nil {
		return Document{}, errors.New("loader: source is nil")
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case SourceKindURL:
		if l.http == nil {
			return Document{}, ErrHTTPDisabled
		}
		data, err = loadHTTP(ctx, l.http, src.Location())
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedSource, src.Kind())
	}
	if err != nil {
		return Document{}, err
	}

	l.logger.Debug("definition loaded",
		zap.String("kind", string(src.Kind())),
		zap.String("location", src.Location()),
		zap.Int("bytes", len(data)),
	)
	return Document{Source: src, Format: formatOf(src), Raw: data}, nil
}

// LoadFields fetches and decodes src in one step.
func (l *Loader) LoadFields(ctx context.Context, src Source) ([]*model.Field, error) {
	doc, err := l.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return doc.Fields()
}

func formatOf(src Source) codec.Format {
	location := src.Location()
	if src.Kind() == SourceKindURL {
		if parsed, err := url.Parse(location); err == nil {
			location = parsed.Path
		}
	}
	return codec.FormatFromPath(location)
}
