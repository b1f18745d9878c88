package palette_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/palette"
)

func TestDefault_ListOrder(t *testing.T) {
	want := []string{
		"text", "email", "photo", "number", "textarea", "select",
		"radio", "checkbox", "heading", "paragraph", "container", "table",
	}
	if diff := cmp.Diff(want, palette.Default().IDs()); diff != "" {
		t.Fatalf("palette order mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_ListReturnsCopy(t *testing.T) {
	reg := palette.Default()
	list := reg.List()
	list[0].Label = "mutated"

	desc, ok := reg.Lookup(palette.TypeText)
	if !ok {
		t.Fatalf("expected text descriptor")
	}
	if desc.Label != "Text Input" {
		t.Fatalf("registry mutated through List copy: %q", desc.Label)
	}
}

func TestRegistry_LabelFallsBackToID(t *testing.T) {
	reg := palette.Default()
	if got := reg.Label(palette.TypeSelect); got != "Select Dropdown" {
		t.Fatalf("unexpected label: %q", got)
	}
	if got := reg.Label("signature"); got != "signature" {
		t.Fatalf("expected fallback to id, got %q", got)
	}
	if _, ok := reg.Lookup("signature"); ok {
		t.Fatalf("lookup should miss unknown ids")
	}
}

func TestNew_RejectsInvalidDescriptors(t *testing.T) {
	if _, err := palette.New(palette.Descriptor{ID: " "}); !errors.Is(err, palette.ErrInvalidDescriptor) {
		t.Fatalf("expected ErrInvalidDescriptor for empty id, got %v", err)
	}
	_, err := palette.New(
		palette.Descriptor{ID: "text"},
		palette.Descriptor{ID: "text"},
	)
	if !errors.Is(err, palette.ErrInvalidDescriptor) {
		t.Fatalf("expected ErrInvalidDescriptor for duplicate id, got %v", err)
	}

	reg, err := palette.New(palette.Descriptor{ID: " rating ", Label: "Rating"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := reg.Label("rating"); got != "Rating" {
		t.Fatalf("expected trimmed id lookup, got %q", got)
	}
}

func TestSanitizeIcon(t *testing.T) {
	if got := palette.Default().IconMarkup(palette.TypeText); got != `<i class="fas fa-font" aria-hidden="true"></i>` {
		t.Fatalf("unexpected class icon markup: %s", got)
	}

	got := palette.SanitizeIcon(`<svg><path d="M0 0h1"></path><script>alert(1)</script></svg>`)
	if strings.Contains(got, "script") {
		t.Fatalf("script survived sanitising: %s", got)
	}
	if !strings.Contains(got, `<path d="M0 0h1">`) {
		t.Fatalf("expected path to survive sanitising: %s", got)
	}

	if got := palette.SanitizeIcon("   "); got != "" {
		t.Fatalf("expected empty markup, got %q", got)
	}
}
