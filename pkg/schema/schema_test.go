package schema_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formbuilder/pkg/codec"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/schema"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

func TestSubmission_NestedTree(t *testing.T) {
	fields := testsupport.NestedTree()
	text := fields[1].Container.Columns[0].Fields[0]
	radio := fields[2].Table.Rows[0][0].Fields[0]
	photo := fields[3]
	email := fields[4]

	got, err := schema.New().Submission(fields)
	if err != nil {
		t.Fatalf("submission: %v", err)
	}

	names := make([]string, 0, len(got.Properties))
	for name := range got.Properties {
		names = append(names, name)
	}
	want := []string{text.Name, radio.Name, photo.Name, email.Name}
	if diff := cmp.Diff(want, names, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("properties mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{email.Name}, got.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}

	if f := got.Properties[email.Name].Value; f.Format != "email" || f.Title != "Email" {
		t.Fatalf("unexpected email property: %+v", f)
	}
	if diff := cmp.Diff([]any{"Option 1", "Option 2"}, got.Properties[radio.Name].Value.Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}
	ext := got.Properties[photo.Name].Value.Extensions
	if ext[schema.ExtensionAcceptedTypes] != model.DefaultPhotoAcceptedTypes || ext[schema.ExtensionFieldUID] != photo.UID {
		t.Fatalf("unexpected photo extensions: %v", ext)
	}
}

func TestSubmission_CheckboxIsArray(t *testing.T) {
	field := testsupport.DeterministicFactory().Create("checkbox")
	got, err := schema.New().Submission([]*model.Field{field})
	if err != nil {
		t.Fatalf("submission: %v", err)
	}
	property := got.Properties[field.Name].Value
	if !property.Type.Is("array") || !property.UniqueItems {
		t.Fatalf("checkbox should map to a unique array, got %+v", property)
	}
	if diff := cmp.Diff([]any{"Option 1", "Option 2"}, property.Items.Value.Enum); diff != "" {
		t.Fatalf("item enum mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmission_DuplicateNames(t *testing.T) {
	factory := testsupport.DeterministicFactory()
	a, b := factory.Create("text"), factory.Create("number")
	b.Name = a.Name
	if _, err := schema.New().Submission([]*model.Field{a, b}); !errors.Is(err, schema.ErrDuplicateProperty) {
		t.Fatalf("expected ErrDuplicateProperty, got %v", err)
	}
}

func TestDocument_ValidatesAndMarshals(t *testing.T) {
	gen := schema.New(schema.WithTitle("Signup"), schema.WithPath("/signup"))
	fields := testsupport.NestedTree()
	if err := gen.Validate(context.Background(), fields); err != nil {
		t.Fatalf("validate: %v", err)
	}

	doc, err := gen.Document(fields)
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	raw, err := schema.Marshal(doc, codec.FormatJSON)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	paths, _ := decoded["paths"].(map[string]any)
	if _, ok := paths["/signup"]; !ok {
		t.Fatalf("missing /signup path: %v", paths)
	}

	yamlRaw, err := schema.Marshal(doc, codec.FormatYAML)
	if err != nil {
		t.Fatalf("marshal yaml: %v", err)
	}
	if !strings.Contains(string(yamlRaw), schema.ComponentName) {
		t.Fatalf("yaml output missing component:\n%s", yamlRaw)
	}

	if _, err := schema.Marshal(doc, codec.Format("toml")); !errors.Is(err, codec.ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}
