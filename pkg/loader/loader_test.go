package loader_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/codec"
	"github.com/goliatone/go-formbuilder/pkg/loader"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

const document = `[
    {
        "uid": "field-1767206578220-vl6ah",
        "type": "heading",
        "name": "field_8796964812690",
        "label": "Heading",
        "required": false,
        "placeholder": "Enter heading"
    }
]`

const yamlDocument = `- uid: field-1767206578220-vl6ah
  type: heading
  name: field_8796964812690
  label: Heading
  required: false
  placeholder: Enter heading
`

func labels(fields []*model.Field) []string {
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		out = append(out, field.Label)
	}
	return out
}

func TestLoader_File(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "form.json")
	yamlPath := filepath.Join(dir, "form.yaml")
	if err := os.WriteFile(jsonPath, []byte(document), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(yamlPath, []byte(yamlDocument), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	l := loader.New()
	for _, path := range []string{jsonPath, yamlPath} {
		fields, err := l.LoadFields(context.Background(), loader.SourceFromFile(path))
		if err != nil {
			t.Fatalf("load %s: %v", path, err)
		}
		if diff := cmp.Diff([]string{"Heading"}, labels(fields)); diff != "" {
			t.Fatalf("%s mismatch (-want +got):\n%s", path, diff)
		}
	}

	if _, err := l.Load(context.Background(), loader.SourceFromFile(filepath.Join(dir, "missing.json"))); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoader_FS(t *testing.T) {
	files := fstest.MapFS{"forms/sample.json": {Data: []byte(document)}}
	l := loader.New(loader.WithFileSystem(files))

	doc, err := l.Load(context.Background(), loader.SourceFromFS("forms/sample.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Format != codec.FormatJSON {
		t.Fatalf("format = %q", doc.Format)
	}
	fields, err := doc.Fields()
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	if fields[0].UID != "field-1767206578220-vl6ah" {
		t.Fatalf("unexpected uid %q", fields[0].UID)
	}

	if _, err := loader.New().Load(context.Background(), loader.SourceFromFS("forms/sample.json")); err == nil {
		t.Fatalf("expected error without a filesystem")
	}
}

func TestLoader_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/form.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(document))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	if _, err := loader.New().Load(context.Background(), loader.SourceFromURL(srv.URL+"/form.json")); !errors.Is(err, loader.ErrHTTPDisabled) {
		t.Fatalf("expected ErrHTTPDisabled, got %v", err)
	}

	l := loader.New(loader.WithHTTPFallback(2 * time.Second))
	fields, err := l.LoadFields(context.Background(), loader.SourceFromURL(srv.URL+"/form.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(fields) != 1 {
		t.Fatalf("expected one field, got %d", len(fields))
	}

	if _, err := l.Load(context.Background(), loader.SourceFromURL(srv.URL+"/missing.json")); err == nil {
		t.Fatalf("expected status error")
	}
}

func TestLoader_RejectsNonArrayDocuments(t *testing.T) {
	files := fstest.MapFS{"object.json": {Data: []byte(`{"uid": "x"}`)}}
	_, err := loader.New(loader.WithFileSystem(files)).LoadFields(context.Background(), loader.SourceFromFS("object.json"))
	if !errors.Is(err, codec.ErrNotArray) {
		t.Fatalf("expected ErrNotArray, got %v", err)
	}
}

func TestParseSource(t *testing.T) {
	src, err := loader.ParseSource("https://example.com/forms/a.yaml")
	if err != nil || src.Kind() != loader.SourceKindURL {
		t.Fatalf("expected url source, got %v %v", src, err)
	}
	src, err = loader.ParseSource("./forms/../forms/a.json")
	if err != nil || src.Kind() != loader.SourceKindFile || src.Location() != "forms/a.json" {
		t.Fatalf("expected cleaned file source, got %v %v", src, err)
	}
	if _, err := loader.ParseSource("  "); !errors.Is(err, loader.ErrEmptySource) {
		t.Fatalf("expected ErrEmptySource, got %v", err)
	}
}
