package validation

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/codec"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

func TestValidateForm_Valid(t *testing.T) {
	result := ValidateForm(context.Background(), testsupport.NestedTree(), Options{})
	if !result.Valid {
		t.Fatalf("expected form to be valid: %#v", result.Issues)
	}
}

func TestValidateForm_Issues(t *testing.T) {
	raw := []byte(`[
    {"uid": "a", "type": "text", "name": "dup", "label": "A", "required": false},
    {"uid": "b", "type": "select", "name": "dup", "label": "B", "required": false, "options": []},
    {"uid": "c", "type": "slider", "name": "c", "label": "C", "required": false},
    {"uid": "d", "type": "table", "name": "d", "label": "D", "required": false,
     "table": {"headers": ["Column 1", "Column 2"], "rows": [[{"fields": [
        {"uid": "e", "type": "photo", "name": "", "label": "E", "required": false, "acceptedTypes": "image/*", "maxSize": 0}
     ]}]]}}
]`)
	fields, err := codec.Deserialize(raw)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}

	result := ValidateForm(context.Background(), fields, Options{})
	if result.Valid {
		t.Fatalf("expected form to be invalid")
	}

	type brief struct{ Path, UID, Message string }
	var got []brief
	for _, issue := range result.Issues {
		if issue.Path == "schema" {
			continue
		}
		got = append(got, brief{issue.Path, issue.UID, issue.Message})
	}
	want := []brief{
		{"[1]", "b", "choice field has no options"},
		{"[2]", "c", `unknown field type "slider" (supported: text, email, photo, number, textarea, select, radio, checkbox, heading, paragraph, container, table)`},
		{"[3]", "d", "row 0 has 1 cells, expected 2"},
		{"[3] > cell 0,0 > [0]", "e", "maxSize must be positive, found 0"},
		{"[3] > cell 0,0 > [0]", "e", "name is empty"},
		{"names", "", `name "dup" is used by a, b`},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}
