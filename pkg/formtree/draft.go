package formtree

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Draft is an independent copy of a field opened for editing. Changes made to
// Field or OptionsText never reach the tree until Save.
type Draft struct {
	Field *model.Field
	// OptionsText holds the option list of choice fields, one option per line.
	OptionsText string

	original *model.Field
}

// OriginalUID names the field the draft will be merged into.
func (d *Draft) OriginalUID() string {
	if d == nil || d.original == nil {
		return ""
	}
	return d.original.UID
}

// Edit opens a draft of the field named by uid. Any draft already open is
// discarded.
func (t *Tree) Edit(uid string) (*Draft, error) {
	field, err := t.Find(uid)
	if err != nil {
		return nil, err
	}
	draft := &Draft{Field: field.Clone(), original: field}
	if field.Choice != nil {
		draft.OptionsText = strings.Join(field.Choice.Options, "\n")
	}
	if t.editing != nil {
		t.logger.Debug("discarding unsaved draft", zap.String("uid", t.editing.OriginalUID()))
	}
	t.editing = draft
	return draft, nil
}

// Editing returns the open draft, if any.
func (t *Tree) Editing() (*Draft, bool) {
	return t.editing, t.editing != nil
}

// Cancel discards the open draft.
func (t *Tree) Cancel() {
	t.editing = nil
}

// Save merges the open draft into its original field and closes the editing
// slot. For choice fields the option list is rebuilt from OptionsText: each
// non-blank line, trimmed, becomes one option in order. The draft's uid and
// type are ignored, variants missing from the draft do not clear the
// original's, and only the upload constraints of a photo draft are merged.
func (t *Tree) Save() (*model.Field, error) {
	draft := t.editing
	if draft == nil {
		return nil, ErrNotEditing
	}
	original := draft.original
	edited := draft.Field
	if edited == nil {
		return nil, fmt.Errorf("%w: draft has no field", ErrNotEditing)
	}

	name := strings.TrimSpace(edited.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if name != original.Name {
		if owner, taken := t.nameOwner(name, original.UID); taken {
			return nil, fmt.Errorf("%w: %q is used by %s", ErrDuplicateName, name, owner)
		}
	}

	if original.Type.IsChoice() {
		if edited.Choice == nil {
			edited.Choice = &model.Choice{}
		}
		edited.Choice.Options = ParseOptions(draft.OptionsText)
	}

	merge(original, edited)
	original.Name = name
	t.editing = nil
	return original, nil
}

// ParseOptions splits newline separated text into options, trimming each line
// and dropping blank ones.
func ParseOptions(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	options := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		options = append(options, trimmed)
	}
	return options
}

func merge(dst, src *model.Field) {
	dst.Name = src.Name
	dst.Label = src.Label
	dst.Required = src.Required
	dst.Placeholder = src.Placeholder
	if src.Choice != nil {
		dst.Choice = &model.Choice{Options: append([]string(nil), src.Choice.Options...)}
	}
	// Nested structure and uploads change through their own operations; the
	// draft's copies of them are stale snapshots.
	if src.Photo != nil {
		if dst.Photo == nil {
			dst.Photo = &model.Photo{}
		}
		dst.Photo.AcceptedTypes = src.Photo.AcceptedTypes
		dst.Photo.MaxSize = src.Photo.MaxSize
	}
}

func (t *Tree) dropDraftFor(removed *model.Field) {
	if t.editing == nil || removed == nil {
		return
	}
	if removed.Contains(t.editing.OriginalUID()) {
		t.editing = nil
	}
}
