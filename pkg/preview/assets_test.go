package preview_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/preview"
)

func TestAssetsFSContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(preview.AssetsFS(), "formbuilder.css")
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(data), "var(--fb-accent)") {
		t.Fatalf("expected stylesheet to use theme tokens")
	}
}

func TestDefaultThemeLinksBundledStylesheet(t *testing.T) {
	renderer, err := preview.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	page, err := renderer.Render(context.Background(), nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(page), `href="/assets/formbuilder.css"`) {
		t.Fatalf("expected default stylesheet link, got:\n%s", page)
	}
}
