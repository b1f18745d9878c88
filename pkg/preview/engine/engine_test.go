package engine_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/preview/engine"
)

type fieldView struct {
	Label   string   `json:"label"`
	Options []string `json:"options"`
}

func TestEngine_FieldViewUsesJSONNames(t *testing.T) {
	files := fstest.MapFS{
		"field.tpl": {Data: []byte(`{{ field.label }}:{% for o in field.options %}[{{ o }}]{% endfor %}|{{ body|safe }}`)},
	}
	e, err := engine.New(engine.WithFS(files))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	got, err := e.RenderTemplate("field", map[string]any{
		"field": fieldView{Label: "<b>Colour</b>", Options: []string{"Red", "Blue"}},
		"body":  "<input>",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "&lt;b&gt;Colour&lt;/b&gt;:[Red][Blue]|<input>"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_BaseDirOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "page.tpl"), []byte(`custom {{ title }}`), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}
	files := fstest.MapFS{
		"page.tpl":  {Data: []byte(`embedded {{ title }}`)},
		"field.tpl": {Data: []byte(`embedded field`)},
	}
	e, err := engine.New(engine.WithFS(files), engine.WithBaseDir(dir))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	page, err := e.RenderTemplate("page.tpl", map[string]any{"title": "Form"})
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	field, err := e.RenderTemplate("field", nil)
	if err != nil {
		t.Fatalf("render field: %v", err)
	}
	if diff := cmp.Diff([]string{"custom Form", "embedded field"}, []string{page, field}); diff != "" {
		t.Fatalf("template resolution mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_MissingTemplate(t *testing.T) {
	e, err := engine.New(engine.WithFS(fstest.MapFS{}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := e.RenderTemplate("absent", nil); err == nil {
		t.Fatalf("expected an error for a missing template")
	}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := engine.New(); err == nil {
		t.Fatalf("expected error without templates")
	}
}
