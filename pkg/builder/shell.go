package builder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/codec"
	"github.com/goliatone/go-formbuilder/pkg/formtree"
	"github.com/goliatone/go-formbuilder/pkg/interact"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

var errNoCandidates = errors.New("builder: no matching fields")

type action struct {
	label string
	run   func(context.Context, io.Writer) error
}

// Run drives the session interactively until the user quits or aborts. out
// receives outlines of the form.
func (s *Session) Run(ctx context.Context, out io.Writer) error {
	outline := NewOutline(s.palette, false)
	actions := []action{
		{"Add field", func(ctx context.Context, _ io.Writer) error { return s.promptAdd(ctx) }},
		{"Edit field", func(ctx context.Context, _ io.Writer) error { return s.promptEdit(ctx) }},
		{"Move field", func(ctx context.Context, _ io.Writer) error { return s.promptMove(ctx) }},
		{"Remove field", func(ctx context.Context, _ io.Writer) error { return s.promptRemove(ctx) }},
		{"Container columns", func(ctx context.Context, _ io.Writer) error { return s.promptColumns(ctx) }},
		{"Table layout", func(ctx context.Context, _ io.Writer) error { return s.promptTable(ctx) }},
		{"Attach photo", func(ctx context.Context, _ io.Writer) error { return s.promptAttach(ctx) }},
		{"Remove photo", func(ctx context.Context, _ io.Writer) error { return s.promptDetach(ctx) }},
		{"Show form", func(_ context.Context, w io.Writer) error { return outline.Write(w, s.tree.Fields) }},
		{"Export JSON", func(ctx context.Context, _ io.Writer) error { return s.promptExport(ctx) }},
		{"Load sample data", func(ctx context.Context, _ io.Writer) error { s.Bootstrap(ctx, nil); return nil }},
		{"Clear all", func(ctx context.Context, _ io.Writer) error { return s.Clear(ctx) }},
	}
	labels := make([]string, 0, len(actions)+1)
	for _, a := range actions {
		labels = append(labels, a.label)
	}
	labels = append(labels, "Quit")

	for {
		choice, err := s.driver.Select(ctx, interact.SelectConfig{
			Message:  "What next?",
			Options:  labels,
			PageSize: len(labels),
		})
		if err != nil {
			if errors.Is(err, interact.ErrAborted) {
				return nil
			}
			return err
		}
		if choice < 0 || choice >= len(actions) {
			return nil
		}
		err = actions[choice].run(ctx, out)
		switch {
		case err == nil, errors.Is(err, ErrDeclined), errors.Is(err, interact.ErrAborted):
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return err
		default:
			s.warn(ctx, err.Error())
		}
	}
}

// ExportFile writes the form to path, picking the format from its extension.
func (s *Session) ExportFile(ctx context.Context, path string) error {
	if path == "" {
		path = codec.ExportFileName
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("builder: create export: %w", err)
	}
	if err := s.Export(ctx, file, codec.FormatFromPath(path), path); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func (s *Session) promptAdd(ctx context.Context) error {
	descriptors := s.palette.List()
	options := make([]string, len(descriptors))
	for i, d := range descriptors {
		options[i] = d.Label
	}
	idx, err := s.driver.Select(ctx, interact.SelectConfig{Message: "Field type", Options: options, PageSize: len(options)})
	if err != nil || idx < 0 {
		return err
	}
	loc, index, err := s.promptPosition(ctx, "")
	if err != nil {
		return err
	}
	field, err := s.Add(ctx, loc, index, descriptors[idx].ID)
	if err != nil {
		return err
	}
	return s.driver.Info(ctx, fmt.Sprintf("Added %s (%s).", field.Label, field.Name))
}

func (s *Session) promptEdit(ctx context.Context) error {
	field, err := s.pickField(ctx, "Field to edit", nil)
	if err != nil {
		return err
	}
	draft, err := s.Edit(field.UID)
	if err != nil {
		return err
	}
	if err := s.fillDraft(ctx, draft); err != nil {
		s.tree.Cancel()
		return err
	}
	if _, err := s.Save(); err != nil {
		s.tree.Cancel()
		return err
	}
	return nil
}

func (s *Session) fillDraft(ctx context.Context, draft *formtree.Draft) error {
	f := draft.Field
	var err error
	if f.Label, err = s.driver.Input(ctx, interact.InputConfig{Message: "Label", Default: f.Label}); err != nil {
		return err
	}
	if f.Name, err = s.driver.Input(ctx, interact.InputConfig{
		Message:   "Name",
		Default:   f.Name,
		Validator: requireText,
	}); err != nil {
		return err
	}
	if f.Type.IsStatic() {
		return nil
	}
	if f.Required, err = s.driver.Confirm(ctx, interact.ConfirmConfig{Message: "Required?", Default: f.Required}); err != nil {
		return err
	}
	if f.Placeholder, err = s.driver.Input(ctx, interact.InputConfig{Message: "Placeholder", Default: f.Placeholder}); err != nil {
		return err
	}
	if f.Type.IsChoice() {
		if draft.OptionsText, err = s.driver.TextArea(ctx, interact.TextAreaConfig{
			Message: "Options",
			Default: draft.OptionsText,
			Help:    "One option per line; blank lines are ignored.",
		}); err != nil {
			return err
		}
	}
	if f.Photo != nil {
		if f.Photo.AcceptedTypes, err = s.driver.Input(ctx, interact.InputConfig{
			Message: "Accepted types",
			Default: f.Photo.AcceptedTypes,
			Help:    "Comma separated, e.g. image/png, image/*, .heic",
		}); err != nil {
			return err
		}
		raw, err := s.driver.Input(ctx, interact.InputConfig{
			Message:   "Max size (MB)",
			Default:   strconv.FormatFloat(f.Photo.MaxSize, 'f', -1, 64),
			Validator: positiveNumber,
		})
		if err != nil {
			return err
		}
		f.Photo.MaxSize, _ = strconv.ParseFloat(strings.TrimSpace(raw), 64)
	}
	return nil
}

func (s *Session) promptMove(ctx context.Context) error {
	field, err := s.pickField(ctx, "Field to move", nil)
	if err != nil {
		return err
	}
	loc, index, err := s.promptPosition(ctx, field.UID)
	if err != nil {
		return err
	}
	return s.Move(ctx, field.UID, loc, index)
}

func (s *Session) promptRemove(ctx context.Context) error {
	field, err := s.pickField(ctx, "Field to remove", nil)
	if err != nil {
		return err
	}
	return s.Remove(ctx, field.UID)
}

func (s *Session) promptColumns(ctx context.Context) error {
	field, err := s.pickField(ctx, "Container", func(f *model.Field) bool { return f.Container != nil })
	if err != nil {
		return err
	}
	options := []string{"Add column"}
	for i, column := range field.Container.Columns {
		options = append(options, fmt.Sprintf("Remove column %d (%d fields)", i+1, len(column.Fields)))
	}
	idx, err := s.driver.Select(ctx, interact.SelectConfig{Message: "Column action", Options: options})
	if err != nil || idx < 0 {
		return err
	}
	if idx == 0 {
		return s.AddColumn(ctx, field.UID)
	}
	return s.RemoveColumn(ctx, field.UID, idx-1)
}

func (s *Session) promptTable(ctx context.Context) error {
	field, err := s.pickField(ctx, "Table", func(f *model.Field) bool { return f.Table != nil })
	if err != nil {
		return err
	}
	options := []string{"Add row", "Add column", "Remove row", "Remove column", "Rename column"}
	idx, err := s.driver.Select(ctx, interact.SelectConfig{Message: "Table action", Options: options})
	if err != nil {
		return err
	}
	switch idx {
	case 0:
		return s.AddTableRow(ctx, field.UID)
	case 1:
		return s.AddTableColumn(ctx, field.UID)
	case 2:
		rows := make([]string, len(field.Table.Rows))
		for i := range rows {
			rows[i] = fmt.Sprintf("Row %d", i+1)
		}
		row, err := s.driver.Select(ctx, interact.SelectConfig{Message: "Row", Options: rows})
		if err != nil || row < 0 {
			return err
		}
		return s.RemoveTableRow(ctx, field.UID, row)
	case 3, 4:
		column, err := s.driver.Select(ctx, interact.SelectConfig{Message: "Column", Options: field.Table.Headers})
		if err != nil || column < 0 {
			return err
		}
		if idx == 3 {
			return s.RemoveTableColumn(ctx, field.UID, column)
		}
		header, err := s.driver.Input(ctx, interact.InputConfig{
			Message:   "Header",
			Default:   field.Table.Headers[column],
			Validator: requireText,
		})
		if err != nil {
			return err
		}
		return s.tree.SetTableHeader(field.UID, column, header)
	}
	return nil
}

func (s *Session) promptAttach(ctx context.Context) error {
	field, err := s.pickField(ctx, "Photo field", func(f *model.Field) bool { return f.Type == model.FieldTypePhoto })
	if err != nil {
		return err
	}
	path, err := s.driver.Input(ctx, interact.InputConfig{Message: "Image path", Validator: requireText})
	if err != nil {
		return err
	}
	path = strings.TrimSpace(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return &formtree.PhotoError{Kind: formtree.PhotoUnreadable, File: path, Message: "could not read file", Err: err}
	}
	return s.AttachPhoto(ctx, field.UID, formtree.File{Name: filepath.Base(path), Data: data})
}

func (s *Session) promptDetach(ctx context.Context) error {
	field, err := s.pickField(ctx, "Photo field", func(f *model.Field) bool { return f.Photo.HasUpload() })
	if err != nil {
		return err
	}
	return s.DetachPhoto(ctx, field.UID)
}

func (s *Session) promptExport(ctx context.Context) error {
	path, err := s.driver.Input(ctx, interact.InputConfig{Message: "Export to", Default: codec.ExportFileName})
	if err != nil {
		return err
	}
	return s.ExportFile(ctx, strings.TrimSpace(path))
}

// pickField lists the tree's fields, indented by depth, optionally filtered.
func (s *Session) pickField(ctx context.Context, message string, keep func(*model.Field) bool) (*model.Field, error) {
	var (
		candidates []*model.Field
		options    []string
	)
	model.Walk(s.tree.Fields, func(field *model.Field, depth int) bool {
		if keep == nil || keep(field) {
			candidates = append(candidates, field)
			options = append(options, fmt.Sprintf("%s%s (%s)", strings.Repeat("  ", depth), field.Label, field.Type))
		}
		return true
	})
	if len(candidates) == 0 {
		return nil, errNoCandidates
	}
	idx, err := s.driver.Select(ctx, interact.SelectConfig{Message: message, Options: options, PageSize: 15})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(candidates) {
		return nil, errNoCandidates
	}
	return candidates[idx], nil
}

type target struct {
	label string
	loc   formtree.Location
	list  []*model.Field
}

// promptPosition asks for a destination list and a slot within it. Lists
// inside the subtree of exclude are not offered.
func (s *Session) promptPosition(ctx context.Context, exclude string) (formtree.Location, int, error) {
	targets := []target{{label: "Form", loc: formtree.Root(), list: s.tree.Fields}}
	model.Walk(s.tree.Fields, func(field *model.Field, _ int) bool {
		if field.Container != nil {
			for i, column := range field.Container.Columns {
				targets = append(targets, target{
					label: fmt.Sprintf("%s / column %d", field.Label, i+1),
					loc:   formtree.InColumn(field.UID, i),
					list:  column.Fields,
				})
			}
		}
		if field.Table != nil {
			for r, row := range field.Table.Rows {
				for c, cell := range row {
					header := ""
					if c < len(field.Table.Headers) {
						header = field.Table.Headers[c]
					}
					targets = append(targets, target{
						label: fmt.Sprintf("%s / row %d / %s", field.Label, r+1, header),
						loc:   formtree.InCell(field.UID, r, c),
						list:  cell.Fields,
					})
				}
			}
		}
		return true
	})
	if exclude != "" {
		if moving, err := s.tree.Find(exclude); err == nil {
			kept := targets[:0]
			for _, t := range targets {
				if t.loc.IsRoot() || !moving.Contains(t.loc.Owner) {
					kept = append(kept, t)
				}
			}
			targets = kept
		}
	}

	labels := make([]string, len(targets))
	for i, t := range targets {
		labels[i] = t.label
	}
	ti, err := s.driver.Select(ctx, interact.SelectConfig{Message: "Where", Options: labels, PageSize: 15})
	if err != nil {
		return formtree.Location{}, 0, err
	}
	if ti < 0 || ti >= len(targets) {
		return formtree.Location{}, 0, errNoCandidates
	}
	chosen := targets[ti]

	slots := []string{"At the end"}
	for _, field := range chosen.list {
		slots = append(slots, "Before "+field.Label)
	}
	si, err := s.driver.Select(ctx, interact.SelectConfig{Message: "Position", Options: slots})
	if err != nil {
		return formtree.Location{}, 0, err
	}
	end := len(chosen.list)
	index := si - 1
	if exclude != "" {
		// Move takes the index after the field has left its current list.
		if loc, current, err := s.tree.Locate(exclude); err == nil && loc == chosen.loc {
			end--
			if current < index {
				index--
			}
		}
	}
	if si <= 0 {
		return chosen.loc, end, nil
	}
	return chosen.loc, index, nil
}

func requireText(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("a value is required")
	}
	return nil
}

func positiveNumber(value string) error {
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || n <= 0 {
		return errors.New("enter a positive number")
	}
	return nil
}
