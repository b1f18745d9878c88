package builder_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/codec"
	"github.com/goliatone/go-formbuilder/pkg/formtree"
	"github.com/goliatone/go-formbuilder/pkg/interact"
	"github.com/goliatone/go-formbuilder/pkg/loader"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

type stubDriver struct {
	inputs    []string
	selectIdx []int
	confirm   []bool
	textAreas []string

	inputPos   int
	selectPos  int
	confirmPos int
	textPos    int

	prompts  []string
	infos    []string
	warnings []string
}

func (s *stubDriver) Input(_ context.Context, cfg interact.InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	if cfg.Validator != nil {
		if err := cfg.Validator(val); err != nil {
			return "", err
		}
	}
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg interact.ConfirmConfig) (bool, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ interact.SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, interact.ErrAborted
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, _ interact.SelectConfig) ([]int, error) {
	return nil, errors.New("no multiselect scripted")
}

func (s *stubDriver) TextArea(_ context.Context, _ interact.TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

func (s *stubDriver) Warn(_ context.Context, msg string) error {
	s.warnings = append(s.warnings, msg)
	return nil
}

func newSession(driver interact.PromptDriver, options ...builder.Option) *builder.Session {
	tree := formtree.New(formtree.WithFactory(testsupport.DeterministicFactory()))
	options = append([]builder.Option{builder.WithTree(tree), builder.WithPromptDriver(driver)}, options...)
	return builder.NewSession(options...)
}

func TestSession_ContainerColumnRemoval(t *testing.T) {
	driver := &stubDriver{confirm: []bool{false, true}}
	s := newSession(driver)
	ctx := testsupport.Context()

	container, err := s.Add(ctx, formtree.Root(), 0, "container")
	if err != nil {
		t.Fatalf("add container: %v", err)
	}
	if err := s.AddColumn(ctx, container.UID); err != nil {
		t.Fatalf("add column: %v", err)
	}
	nested, err := s.Append(ctx, formtree.InColumn(container.UID, 1), "text")
	if err != nil {
		t.Fatalf("nest: %v", err)
	}

	if err := s.RemoveColumn(ctx, container.UID, 1); !errors.Is(err, builder.ErrDeclined) {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}
	if got := len(container.Container.Columns); got != 3 {
		t.Fatalf("declined removal must keep 3 columns, got %d", got)
	}
	if found, _ := s.Tree().Find(nested.UID); found != nested {
		t.Fatalf("nested field lost after decline")
	}

	if err := s.RemoveColumn(ctx, container.UID, 2); err != nil {
		t.Fatalf("empty column removal: %v", err)
	}
	if diff := cmp.Diff([]string{builder.MsgRemoveColumn}, driver.prompts); diff != "" {
		t.Fatalf("empty column should not ask (-want +got):\n%s", diff)
	}

	if err := s.RemoveColumn(ctx, container.UID, 1); err != nil {
		t.Fatalf("confirmed removal: %v", err)
	}
	if got := len(container.Container.Columns); got != 1 {
		t.Fatalf("expected 1 column, got %d", got)
	}
	if _, err := s.Tree().Find(nested.UID); !errors.Is(err, formtree.ErrFieldNotFound) {
		t.Fatalf("nested field should be gone, got %v", err)
	}
}

func TestSession_RemoveAndClearAreGuarded(t *testing.T) {
	driver := &stubDriver{confirm: []bool{false, true, false, true}}
	s := newSession(driver)
	ctx := testsupport.Context()

	first, _ := s.Add(ctx, formtree.Root(), 0, "text")
	_, _ = s.Add(ctx, formtree.Root(), 1, "email")

	if err := s.Remove(ctx, first.UID); !errors.Is(err, builder.ErrDeclined) {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}
	if s.Tree().Len() != 2 {
		t.Fatalf("declined remove changed the tree")
	}
	if err := s.Remove(ctx, first.UID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if s.Tree().Len() != 1 {
		t.Fatalf("expected 1 field, got %d", s.Tree().Len())
	}

	if err := s.Clear(ctx); !errors.Is(err, builder.ErrDeclined) {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if s.Tree().Len() != 0 {
		t.Fatalf("clear left fields behind")
	}

	want := []string{builder.MsgRemoveField, builder.MsgRemoveField, builder.MsgClearAll, builder.MsgClearAll}
	if diff := cmp.Diff(want, driver.prompts); diff != "" {
		t.Fatalf("prompts mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_DefaultDriverDeclines(t *testing.T) {
	s := builder.NewSession()
	ctx := testsupport.Context()
	field, _ := s.Add(ctx, formtree.Root(), 0, "text")
	if err := s.Remove(ctx, field.UID); !errors.Is(err, builder.ErrDeclined) {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}
}

func TestSession_TableFloorsAreReported(t *testing.T) {
	driver := &stubDriver{}
	s := newSession(driver)
	ctx := testsupport.Context()

	table, _ := s.Add(ctx, formtree.Root(), 0, "table")
	if err := s.RemoveTableRow(ctx, table.UID, 0); !errors.Is(err, formtree.ErrLastTableRow) {
		t.Fatalf("expected ErrLastTableRow, got %v", err)
	}
	if err := s.RemoveTableColumn(ctx, table.UID, 0); err != nil {
		t.Fatalf("remove first of two columns: %v", err)
	}
	if err := s.RemoveTableColumn(ctx, table.UID, 0); !errors.Is(err, formtree.ErrLastTableColumn) {
		t.Fatalf("expected ErrLastTableColumn, got %v", err)
	}
	if diff := cmp.Diff([]string{builder.MsgLastTableRow, builder.MsgLastTableColumn}, driver.warnings); diff != "" {
		t.Fatalf("warnings mismatch (-want +got):\n%s", diff)
	}
	if len(table.Table.Rows) != 1 || len(table.Table.Headers) != 1 {
		t.Fatalf("floors must leave the table intact: %+v", table.Table)
	}
}

func TestSession_OccupiedTableRowAsks(t *testing.T) {
	driver := &stubDriver{confirm: []bool{false}}
	s := newSession(driver)
	ctx := testsupport.Context()

	table, _ := s.Add(ctx, formtree.Root(), 0, "table")
	_ = s.AddTableRow(ctx, table.UID)
	_, _ = s.Add(ctx, formtree.InCell(table.UID, 1, 1), 0, "radio")

	if err := s.RemoveTableRow(ctx, table.UID, 1); !errors.Is(err, builder.ErrDeclined) {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}
	if len(table.Table.Rows) != 2 {
		t.Fatalf("declined row removal changed the table")
	}
	if err := s.RemoveTableRow(ctx, table.UID, 0); err != nil {
		t.Fatalf("empty row removal: %v", err)
	}
}

func TestSession_PhotoRejectionIsReported(t *testing.T) {
	driver := &stubDriver{confirm: []bool{true}}
	s := newSession(driver)
	ctx := testsupport.Context()

	photo, _ := s.Add(ctx, formtree.Root(), 0, "photo")
	err := s.AttachPhoto(ctx, photo.UID, formtree.File{Name: "doc.pdf", ContentType: "application/pdf", Data: []byte("%PDF")})
	var photoErr *formtree.PhotoError
	if !errors.As(err, &photoErr) {
		t.Fatalf("expected PhotoError, got %v", err)
	}
	if len(driver.warnings) != 1 || driver.warnings[0] != photoErr.Message {
		t.Fatalf("rejection not reported: %v", driver.warnings)
	}

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	if err := s.AttachPhoto(ctx, photo.UID, formtree.File{Name: "a.png", Data: png}); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := s.DetachPhoto(ctx, photo.UID); err != nil {
		t.Fatalf("detach: %v", err)
	}
	if photo.Photo.HasUpload() {
		t.Fatalf("photo still attached")
	}
	if diff := cmp.Diff([]string{builder.MsgRemovePhoto}, driver.prompts); diff != "" {
		t.Fatalf("prompts mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_ExportAnnouncesAndLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	driver := &stubDriver{}
	s := newSession(driver, builder.WithLogger(zap.New(core)))
	ctx := testsupport.Context()
	_, _ = s.Add(ctx, formtree.Root(), 0, "text")

	var buf bytes.Buffer
	if err := s.Export(ctx, &buf, codec.FormatJSON, ""); err != nil {
		t.Fatalf("export: %v", err)
	}
	want, _ := s.Tree().Export()
	if diff := cmp.Diff(string(want), buf.String()); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Form JSON exported! Written to form-structure.json."}, driver.infos); diff != "" {
		t.Fatalf("notice mismatch (-want +got):\n%s", diff)
	}
	if logs.FilterMessage("exported form").Len() != 1 {
		t.Fatalf("expected the payload to be logged")
	}
}

func TestSession_SaveAndContinue(t *testing.T) {
	s := newSession(&stubDriver{})
	ctx := testsupport.Context()
	field, _ := s.Add(ctx, formtree.Root(), 0, "radio")

	draft, err := s.Edit(field.UID)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	draft.Field.Label = "Size"
	draft.OptionsText = "S\nM\n\nL"

	next, err := s.SaveAndContinue()
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if next.OriginalUID() != field.UID || next.Field.Label != "Size" {
		t.Fatalf("expected a fresh draft of the saved field")
	}
	if diff := cmp.Diff([]string{"S", "M", "L"}, field.Choice.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_Bootstrap(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := newSession(&stubDriver{}, builder.WithLogger(zap.New(core)))
	ctx := testsupport.Context()

	if !s.Bootstrap(ctx, nil) {
		t.Fatalf("expected the bundled sample to load")
	}
	if got := model.Count(s.Tree().Fields); got != 10 {
		t.Fatalf("expected 10 sample fields, got %d", got)
	}
	snapshot := s.Tree().Snapshot()

	if s.Bootstrap(ctx, loader.SourceFromFile("testdata/does-not-exist.json")) {
		t.Fatalf("expected bootstrap failure")
	}
	if logs.FilterMessage("error loading sample data").Len() != 1 {
		t.Fatalf("failure was not logged")
	}
	if diff := testsupport.CompareFields(snapshot, s.Tree().Fields); diff != "" {
		t.Fatalf("failed bootstrap changed the tree (-want +got):\n%s", diff)
	}
}

func TestSession_Import(t *testing.T) {
	s := newSession(&stubDriver{})
	err := s.Import(context.Background(), loader.SourceFromFile("../codec/testdata/nested_tree.golden.json"))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if diff := testsupport.CompareFields(testsupport.NestedTree(), s.Tree().Fields); diff != "" {
		t.Fatalf("import mismatch (-want +got):\n%s", diff)
	}
}
