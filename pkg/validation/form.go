package validation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/palette"
	"github.com/goliatone/go-formbuilder/pkg/schema"
)

// Issue is one problem found in a form definition.
type Issue struct {
	Path    string `json:"path,omitempty"`
	UID     string `json:"uid,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result captures validation outcomes for exported or imported forms.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Options configures ValidateForm.
type Options struct {
	Palette *palette.Registry
	Schema  *schema.Generator
}

// ValidateForm checks a field tree for problems the editor cannot prevent on
// its own: imported documents with unknown types, ragged tables, empty option
// lists, duplicate names and submissions the schema generator rejects.
func ValidateForm(ctx context.Context, fields []*model.Field, opts Options) Result {
	if opts.Palette == nil {
		opts.Palette = palette.Default()
	}
	if opts.Schema == nil {
		opts.Schema = schema.New()
	}

	v := &validator{palette: opts.Palette}
	v.fields(nil, fields)
	v.names(fields)
	if err := opts.Schema.Validate(ctx, fields); err != nil && !errors.Is(err, schema.ErrDuplicateProperty) {
		v.issues = append(v.issues, issueFromError(err))
	}

	sort.SliceStable(v.issues, func(i, j int) bool {
		if v.issues[i].Path == v.issues[j].Path {
			return v.issues[i].Message < v.issues[j].Message
		}
		return v.issues[i].Path < v.issues[j].Path
	})
	return Result{Valid: len(v.issues) == 0, Issues: v.issues}
}

type validator struct {
	palette *palette.Registry
	issues  []Issue
}

func (v *validator) fields(path []string, fields []*model.Field) {
	for i, field := range fields {
		if field == nil {
			continue
		}
		v.field(appendPath(path, fmt.Sprintf("[%d]", i)), field)
	}
}

func (v *validator) field(path []string, field *model.Field) {
	report := func(format string, args ...any) {
		v.issues = append(v.issues, Issue{
			Path:    formatPath(path),
			UID:     field.UID,
			Field:   field.Name,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if field.UID == "" {
		report("uid is empty")
	}
	if _, ok := v.palette.Lookup(string(field.Type)); !ok {
		report("unknown field type %q (supported: %s)", field.Type, strings.Join(v.palette.IDs(), ", "))
	}
	if strings.TrimSpace(field.Name) == "" {
		report("name is empty")
	}

	switch {
	case field.Type.IsChoice():
		if field.Choice == nil || len(field.Choice.Options) == 0 {
			report("choice field has no options")
		}
	case field.Type == model.FieldTypeContainer:
		if field.Container == nil || len(field.Container.Columns) == 0 {
			report("container has no columns")
			return
		}
		for c, column := range field.Container.Columns {
			v.fields(appendPath(path, fmt.Sprintf("column %d", c)), column.Fields)
		}
	case field.Type == model.FieldTypeTable:
		if field.Table == nil || len(field.Table.Headers) == 0 || len(field.Table.Rows) == 0 {
			report("table needs at least one row and one column")
			return
		}
		width := len(field.Table.Headers)
		for r, row := range field.Table.Rows {
			if len(row) != width {
				report("row %d has %d cells, expected %d", r, len(row), width)
			}
			for c, cell := range row {
				v.fields(appendPath(path, fmt.Sprintf("cell %d,%d", r, c)), cell.Fields)
			}
		}
	case field.Type == model.FieldTypePhoto:
		if field.Photo == nil {
			report("photo field has no constraints")
			return
		}
		if field.Photo.MaxSize <= 0 {
			report("maxSize must be positive, found %v", field.Photo.MaxSize)
		}
	}
}

func (v *validator) names(fields []*model.Field) {
	seen := map[string][]string{}
	var order []string
	model.Walk(fields, func(field *model.Field, _ int) bool {
		if field.Name == "" {
			return true
		}
		if _, ok := seen[field.Name]; !ok {
			order = append(order, field.Name)
		}
		seen[field.Name] = append(seen[field.Name], field.UID)
		return true
	})
	for _, name := range order {
		if uids := seen[name]; len(uids) > 1 {
			v.issues = append(v.issues, Issue{
				Path:    "names",
				Field:   name,
				Message: fmt.Sprintf("name %q is used by %s", name, strings.Join(uids, ", ")),
			})
		}
	}
}

func issueFromError(err error) Issue {
	msg := strings.TrimSpace(err.Error())
	msg = strings.TrimPrefix(msg, "schema: ")
	return Issue{Path: "schema", Message: msg}
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	return append(next, segment)
}

func formatPath(path []string) string {
	return strings.Join(path, " > ")
}
