package builder_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/formtree"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/palette"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

const (
	menuAdd    = 0
	menuEdit   = 1
	menuMove   = 2
	menuRemove = 3
	menuShow   = 8
	menuQuit   = 12
)

func TestRun_AddAndShow(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{menuAdd, 0, 0, 0, menuShow, menuQuit}}
	s := newSession(driver)

	var out bytes.Buffer
	if err := s.Run(testsupport.Context(), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if s.Tree().Len() != 1 || s.Tree().Fields[0].Type != model.FieldTypeText {
		t.Fatalf("expected a single text field, got %d", s.Tree().Len())
	}
	field := s.Tree().Fields[0]
	if !strings.Contains(out.String(), field.UID) {
		t.Fatalf("outline missing field:\n%s", out.String())
	}
	if len(driver.infos) != 1 || !strings.HasPrefix(driver.infos[0], "Added Text") {
		t.Fatalf("unexpected notices %v", driver.infos)
	}
}

func TestRun_EditChoiceField(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{menuEdit, 0, menuQuit},
		inputs:    []string{"Colour", "colour", "Pick one"},
		confirm:   []bool{true},
		textAreas: []string{"Red\n\n  Blue  \n"},
	}
	s := newSession(driver)
	field, _ := s.Add(testsupport.Context(), formtree.Root(), 0, "select")

	if err := s.Run(testsupport.Context(), &bytes.Buffer{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if field.Label != "Colour" || field.Name != "colour" || !field.Required || field.Placeholder != "Pick one" {
		t.Fatalf("edit not saved: %+v", field)
	}
	if diff := cmp.Diff([]string{"Red", "Blue"}, field.Choice.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if _, open := s.Tree().Editing(); open {
		t.Fatalf("editing slot should be closed")
	}
}

func TestRun_MoveIntoContainer(t *testing.T) {
	s := newSession(&stubDriver{})
	ctx := testsupport.Context()
	text, _ := s.Add(ctx, formtree.Root(), 0, "text")
	container, _ := s.Add(ctx, formtree.Root(), 1, "container")

	// pick "text" (first listed), target 2 = container column 2, slot 0 = end.
	driver := &stubDriver{selectIdx: []int{menuMove, 0, 2, 0, menuQuit}}
	s = builder.NewSession(builder.WithTree(s.Tree()), builder.WithPromptDriver(driver))
	if err := s.Run(ctx, &bytes.Buffer{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := container.Container.Columns[1].Fields; len(got) != 1 || got[0] != text {
		t.Fatalf("text field not moved into column 2")
	}
	if s.Tree().Len() != 1 {
		t.Fatalf("root should only hold the container")
	}
}

func TestRun_DeclinedRemoveKeepsField(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{menuRemove, 0, menuQuit}, confirm: []bool{false}}
	s := newSession(driver)
	_, _ = s.Add(testsupport.Context(), formtree.Root(), 0, "email")

	if err := s.Run(testsupport.Context(), &bytes.Buffer{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if s.Tree().Len() != 1 {
		t.Fatalf("declined removal changed the tree")
	}
	if len(driver.warnings) != 0 {
		t.Fatalf("a declined action is not an error: %v", driver.warnings)
	}
}

func TestOutline_Plain(t *testing.T) {
	var out bytes.Buffer
	if err := builder.NewOutline(palette.Default(), true).Write(&out, testsupport.NestedTree()); err != nil {
		t.Fatalf("outline: %v", err)
	}
	text := out.String()
	for _, want := range []string{"column 1", "row 1 / Column 1", "options: Option 1, Option 2", " *"} {
		if !strings.Contains(text, want) {
			t.Fatalf("outline missing %q:\n%s", want, text)
		}
	}

	out.Reset()
	_ = builder.NewOutline(nil, true).Write(&out, nil)
	if out.String() != "(no fields)\n" {
		t.Fatalf("unexpected empty outline %q", out.String())
	}
}
