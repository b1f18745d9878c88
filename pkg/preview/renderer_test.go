package preview_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbuilder/pkg/palette"
	"github.com/goliatone/go-formbuilder/pkg/preview"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     [][2]string
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, [2]string{name, variant})
	return s.selection, s.err
}

func TestRender_NestedTree(t *testing.T) {
	r, err := preview.New(preview.WithTitle("Signup"), preview.WithPalette(palette.Default()))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	fields := testsupport.NestedTree()
	out, err := r.Render(context.Background(), fields)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	wants := []string{
		"<title>Signup</title>",
		"--fb-accent: #0d6efd;",
		`<div class="fb-container" id="` + fields[1].UID + `"`,
		`id="` + fields[1].Container.Columns[0].Fields[0].UID + `"`,
		`<table class="fb-table" id="` + fields[2].UID + `">`,
		"<th>Column 1</th>",
		`type="radio" name="` + fields[2].Table.Rows[0][0].Fields[0].Name + `" value="Option 1"`,
		`accept="image/*" data-max-size-mb="5"`,
		`type="email"`,
		`<span class="fb-required">*</span>`,
		`<i class="fas fa-table" aria-hidden="true"></i> Table`,
	}
	for _, want := range wants {
		if !strings.Contains(html, want) {
			t.Fatalf("preview missing %q:\n%s", want, html)
		}
	}
}

func TestRender_SanitisesStaticText(t *testing.T) {
	r, err := preview.New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	fields := testsupport.NestedTree()
	fields[0].Label = `<em>Welcome</em><script>alert(1)</script>`
	fields[4].Label = `<b>Email</b>`

	out, err := r.Render(context.Background(), fields)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	if strings.Contains(html, "<script>") {
		t.Fatalf("script survived sanitising:\n%s", html)
	}
	if !strings.Contains(html, "<em>Welcome</em>") {
		t.Fatalf("allowed markup dropped:\n%s", html)
	}
	if !strings.Contains(html, "&lt;b&gt;Email&lt;/b&gt;") {
		t.Fatalf("input labels must be escaped:\n%s", html)
	}
}

func TestRender_UsesSelectedVariant(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens:  map[string]string{"brand": "#123456"},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files:  map[string]string{preview.AssetStylesheet: "theme.css"},
		},
		Variants: map[string]theme.Variant{
			"dark": {Tokens: map[string]string{"brand": "#654321"}},
		},
	}
	selector := &stubThemeSelector{selection: &theme.Selection{Theme: "acme", Variant: "dark", Manifest: manifest}}

	r, err := preview.New(preview.WithThemeSelector(selector), preview.WithTheme("acme", "dark"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	out, err := r.Render(context.Background(), nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	for _, want := range []string{
		"--brand: #654321;",
		`href="/assets/themes/acme/theme.css"`,
		`data-theme="acme" data-variant="dark"`,
		"No fields yet.",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("preview missing %q:\n%s", want, html)
		}
	}
	if len(selector.calls) != 1 || selector.calls[0] != [2]string{"acme", "dark"} {
		t.Fatalf("unexpected selector calls %v", selector.calls)
	}
}

func TestStaticSelector(t *testing.T) {
	selector, err := preview.NewStaticSelector()
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	selection, err := selector.Select("", "dark")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if selection.Theme != "default" || selection.Variant != "dark" {
		t.Fatalf("unexpected selection %+v", selection)
	}
	if _, err := selector.Select("missing", ""); !errors.Is(err, preview.ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound, got %v", err)
	}
	if _, err := selector.Select("default", "sepia"); !errors.Is(err, preview.ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound for variant, got %v", err)
	}

	r, _ := preview.New(preview.WithThemeSelector(selector), preview.WithTheme("missing", ""))
	if _, err := r.Render(context.Background(), nil); !errors.Is(err, preview.ErrThemeNotFound) {
		t.Fatalf("expected render to surface theme errors, got %v", err)
	}
}
