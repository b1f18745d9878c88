package builder

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/codec"
	"github.com/goliatone/go-formbuilder/pkg/formtree"
	"github.com/goliatone/go-formbuilder/pkg/interact"
	"github.com/goliatone/go-formbuilder/pkg/loader"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/palette"
)

// ErrDeclined is returned when the user declines a destructive operation. The
// tree is left untouched.
var ErrDeclined = errors.New("builder: action declined")

// Confirmation prompts and notices shown to the user.
const (
	MsgRemoveField       = "Are you sure you want to remove this field?"
	MsgRemoveColumn      = "This column contains fields. Are you sure you want to remove it?"
	MsgRemoveTableRow    = "This row contains fields. Are you sure you want to remove it?"
	MsgRemoveTableColumn = "This table column contains fields. Are you sure you want to remove it?"
	MsgRemovePhoto       = "Are you sure you want to remove this photo?"
	MsgClearAll          = "Are you sure you want to clear all fields?"
	MsgLastTableRow      = "A table needs at least one row."
	MsgLastTableColumn   = "A table needs at least one column."
	MsgExported          = "Form JSON exported! Written to %s."
)

// Session drives a form tree on behalf of one user.
type Session struct {
	tree    *formtree.Tree
	driver  interact.PromptDriver
	palette *palette.Registry
	loader  *loader.Loader
	logger  *zap.Logger
}

// NewSession constructs a session applying any provided options. Without a
// prompt driver every confirmation is declined.
func NewSession(options ...Option) *Session {
	s := &Session{}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.tree == nil {
		s.tree = formtree.New(formtree.WithLogger(s.logger))
	}
	if s.driver == nil {
		s.driver = interact.NewFixed(false, nil)
	}
	if s.palette == nil {
		s.palette = palette.Default()
	}
	if s.loader == nil {
		s.loader = loader.New(loader.WithLogger(s.logger))
	}
	return s
}

// Tree exposes the underlying tree for read access and non-guarded edits.
func (s *Session) Tree() *formtree.Tree {
	return s.tree
}

// Palette returns the registry offered when adding fields.
func (s *Session) Palette() *palette.Registry {
	return s.palette
}

// Add instantiates a palette type at the given position.
func (s *Session) Add(ctx context.Context, loc formtree.Location, index int, typeID string) (*model.Field, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, ok := s.palette.Lookup(typeID); !ok {
		s.logger.Debug("adding type outside the palette", zap.String("type", typeID))
	}
	field, err := s.tree.InsertNew(loc, index, typeID)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("field added",
		zap.String("uid", field.UID),
		zap.String("type", string(field.Type)),
		zap.Stringer("location", loc),
		zap.Int("index", index),
	)
	return field, nil
}

// Append adds a palette type at the end of the addressed list.
func (s *Session) Append(ctx context.Context, loc formtree.Location, typeID string) (*model.Field, error) {
	index, err := s.lengthOf(loc)
	if err != nil {
		return nil, err
	}
	return s.Add(ctx, loc, index, typeID)
}

// Move relocates a field. Moves never delete anything and are not guarded.
func (s *Session) Move(ctx context.Context, uid string, to formtree.Location, index int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.tree.Move(uid, to, index); err != nil {
		return err
	}
	s.logger.Debug("field moved", zap.String("uid", uid), zap.Stringer("to", to), zap.Int("index", index))
	return nil
}

// Remove deletes a field, and its subtree, after confirmation.
func (s *Session) Remove(ctx context.Context, uid string) error {
	if _, err := s.tree.Find(uid); err != nil {
		return err
	}
	if err := s.confirm(ctx, MsgRemoveField); err != nil {
		return err
	}
	removed, err := s.tree.Remove(uid)
	if err != nil {
		return err
	}
	s.logger.Debug("field removed", zap.String("uid", uid), zap.Int("subtree", model.Count([]*model.Field{removed})))
	return nil
}

// AddColumn appends an empty column to a container.
func (s *Session) AddColumn(ctx context.Context, uid string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.tree.AddColumn(uid)
}

// RemoveColumn deletes a container column. Confirmation is only requested
// when the column holds fields.
func (s *Session) RemoveColumn(ctx context.Context, uid string, column int) error {
	occupied, err := s.tree.ColumnHasFields(uid, column)
	if err != nil {
		return err
	}
	if occupied {
		if err := s.confirm(ctx, MsgRemoveColumn); err != nil {
			return err
		}
	}
	_, err = s.tree.RemoveColumn(uid, column)
	return err
}

// AddTableRow appends a row of empty cells.
func (s *Session) AddTableRow(ctx context.Context, uid string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.tree.AddTableRow(uid)
}

// AddTableColumn appends a column to every row.
func (s *Session) AddTableColumn(ctx context.Context, uid string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.tree.AddTableColumn(uid)
}

// RemoveTableRow deletes a table row. The last row is never removed; the user
// is told why instead.
func (s *Session) RemoveTableRow(ctx context.Context, uid string, row int) error {
	occupied, err := s.tree.RowHasFields(uid, row)
	if err != nil {
		return err
	}
	if occupied {
		if err := s.confirm(ctx, MsgRemoveTableRow); err != nil {
			return err
		}
	}
	err = s.tree.RemoveTableRow(uid, row)
	if errors.Is(err, formtree.ErrLastTableRow) {
		s.warn(ctx, MsgLastTableRow)
	}
	return err
}

// RemoveTableColumn deletes a table column from every row. The last column is
// never removed; the user is told why instead.
func (s *Session) RemoveTableColumn(ctx context.Context, uid string, column int) error {
	occupied, err := s.tree.TableColumnHasFields(uid, column)
	if err != nil {
		return err
	}
	if occupied {
		if err := s.confirm(ctx, MsgRemoveTableColumn); err != nil {
			return err
		}
	}
	err = s.tree.RemoveTableColumn(uid, column)
	if errors.Is(err, formtree.ErrLastTableColumn) {
		s.warn(ctx, MsgLastTableColumn)
	}
	return err
}

// AttachPhoto stores an upload on a photo field. Rejections are reported to
// the user and returned.
func (s *Session) AttachPhoto(ctx context.Context, uid string, file formtree.File) error {
	err := s.tree.AttachPhoto(uid, file)
	var photoErr *formtree.PhotoError
	if errors.As(err, &photoErr) {
		s.warn(ctx, photoErr.Message)
	}
	return err
}

// DetachPhoto removes the stored upload after confirmation.
func (s *Session) DetachPhoto(ctx context.Context, uid string) error {
	field, err := s.tree.Find(uid)
	if err != nil {
		return err
	}
	if !field.Photo.HasUpload() {
		return nil
	}
	if err := s.confirm(ctx, MsgRemovePhoto); err != nil {
		return err
	}
	return s.tree.DetachPhoto(uid)
}

// Clear empties the form after confirmation.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.confirm(ctx, MsgClearAll); err != nil {
		return err
	}
	count := model.Count(s.tree.Fields)
	s.tree.Clear()
	s.logger.Info("form cleared", zap.Int("fields", count))
	return nil
}

// Edit opens a draft of the field named by uid.
func (s *Session) Edit(uid string) (*formtree.Draft, error) {
	return s.tree.Edit(uid)
}

// Save merges the open draft.
func (s *Session) Save() (*model.Field, error) {
	return s.tree.Save()
}

// SaveAndContinue merges the open draft and immediately reopens the saved
// field, for editors that keep the form open after saving.
func (s *Session) SaveAndContinue() (*formtree.Draft, error) {
	field, err := s.tree.Save()
	if err != nil {
		return nil, err
	}
	return s.tree.Edit(field.UID)
}

// Export writes the form in the requested format to w, mirrors the payload to
// the debug log and announces the export to the user under name.
func (s *Session) Export(ctx context.Context, w io.Writer, format codec.Format, name string) error {
	payload, err := codec.Encode(format, s.tree.Fields)
	if err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("builder: write export: %w", err)
	}
	if name == "" {
		name = codec.ExportFileName
	}
	s.logger.Debug("exported form", zap.String("format", string(format)), zap.ByteString("payload", payload))
	if err := s.driver.Info(ctx, fmt.Sprintf(MsgExported, name)); err != nil {
		s.logger.Warn("export notice failed", zap.Error(err))
	}
	return nil
}

// Import replaces the form with the document named by src.
func (s *Session) Import(ctx context.Context, src loader.Source) error {
	fields, err := s.loader.LoadFields(ctx, src)
	if err != nil {
		return err
	}
	s.tree.Replace(fields)
	if dups := s.tree.DuplicateNames(); len(dups) > 0 {
		s.logger.Warn("imported form has duplicate names", zap.Any("names", dups))
	}
	return nil
}

func (s *Session) confirm(ctx context.Context, message string) error {
	ok, err := s.driver.Confirm(ctx, interact.ConfirmConfig{Message: message})
	if err != nil {
		return err
	}
	if !ok {
		return ErrDeclined
	}
	return nil
}

func (s *Session) warn(ctx context.Context, message string) {
	if err := s.driver.Warn(ctx, message); err != nil {
		s.logger.Warn("prompt driver warning failed", zap.String("message", message), zap.Error(err))
	}
}

func (s *Session) lengthOf(loc formtree.Location) (int, error) {
	if loc.IsRoot() {
		return len(s.tree.Fields), nil
	}
	owner, err := s.tree.Find(loc.Owner)
	if err != nil {
		return 0, err
	}
	switch {
	case owner.Container != nil:
		if loc.Column < 0 || loc.Column >= len(owner.Container.Columns) {
			return 0, fmt.Errorf("%w: column %d of %s", formtree.ErrIndexOutOfRange, loc.Column, loc.Owner)
		}
		return len(owner.Container.Columns[loc.Column].Fields), nil
	case owner.Table != nil:
		rows := owner.Table.Rows
		if loc.Row < 0 || loc.Row >= len(rows) || loc.Column < 0 || loc.Column >= len(rows[loc.Row]) {
			return 0, fmt.Errorf("%w: cell %d,%d of %s", formtree.ErrIndexOutOfRange, loc.Row, loc.Column, loc.Owner)
		}
		return len(rows[loc.Row][loc.Column].Fields), nil
	default:
		return 0, fmt.Errorf("builder: field %s holds no nested fields", loc.Owner)
	}
}
