package formtree

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/codec"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

const maxNameAttempts = 8

// Option customises a Tree.
type Option func(*Tree)

// WithFactory injects the factory used to instantiate palette types.
func WithFactory(factory model.Factory) Option {
	return func(t *Tree) {
		t.factory = factory
	}
}

// WithLogger attaches a logger for structural events.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Tree) {
		t.logger = logger
	}
}

// WithFields seeds the tree with an existing field list.
func WithFields(fields []*model.Field) Option {
	return func(t *Tree) {
		t.Fields = fields
	}
}

// Tree is the root aggregate of a form definition.
type Tree struct {
	// Fields is the root field list, in display order.
	Fields []*model.Field

	factory model.Factory
	logger  *zap.Logger
	editing *Draft
}

// New constructs an empty tree applying any provided options.
func New(options ...Option) *Tree {
	t := &Tree{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(t)
	}
	if t.factory == nil {
		t.factory = model.NewFactory()
	}
	if t.logger == nil {
		t.logger = zap.NewNop()
	}
	if t.Fields == nil {
		t.Fields = []*model.Field{}
	}
	return t
}

// NewField instantiates a field of the given palette type. The generated name
// is unique within the tree.
func (t *Tree) NewField(typeID string) *model.Field {
	field := t.factory.Create(typeID)
	taken := t.names()
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		if _, exists := taken[field.Name]; !exists {
			break
		}
		field.Name = t.factory.NewName()
	}
	return field
}

// InsertAt places field at index in the list addressed by loc, shifting later
// elements. index must lie in [0, len(list)].
func (t *Tree) InsertAt(loc Location, index int, field *model.Field) error {
	if field == nil {
		return ErrNilField
	}
	list, err := t.list(loc)
	if err != nil {
		return err
	}
	if index < 0 || index > len(*list) {
		return fmt.Errorf("%w: insert at %d into %s (len %d)", ErrIndexOutOfRange, index, loc, len(*list))
	}
	*list = insert(*list, index, field)
	return nil
}

// InsertNew instantiates a palette type and inserts it, mirroring a drop from
// the palette onto the canvas.
func (t *Tree) InsertNew(loc Location, index int, typeID string) (*model.Field, error) {
	field := t.NewField(typeID)
	if err := t.InsertAt(loc, index, field); err != nil {
		return nil, err
	}
	return field, nil
}

// RemoveAt removes and returns the field at index in the list addressed by loc.
// Callers are expected to have obtained confirmation beforehand.
func (t *Tree) RemoveAt(loc Location, index int) (*model.Field, error) {
	list, err := t.list(loc)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(*list) {
		return nil, fmt.Errorf("%w: remove %d from %s (len %d)", ErrIndexOutOfRange, index, loc, len(*list))
	}
	removed := (*list)[index]
	*list = remove(*list, index)
	t.dropDraftFor(removed)
	return removed, nil
}

// Remove deletes the field with the given uid wherever it sits.
func (t *Tree) Remove(uid string) (*model.Field, error) {
	loc, index, err := t.Locate(uid)
	if err != nil {
		return nil, err
	}
	return t.RemoveAt(loc, index)
}

// Locate returns the list and position holding uid.
func (t *Tree) Locate(uid string) (Location, int, error) {
	if loc, index, ok := locateIn(t.Fields, Root(), uid); ok {
		return loc, index, nil
	}
	return Location{}, -1, fmt.Errorf("%w: %s", ErrFieldNotFound, uid)
}

func locateIn(fields []*model.Field, loc Location, uid string) (Location, int, bool) {
	for i, field := range fields {
		if field == nil {
			continue
		}
		if field.UID == uid {
			return loc, i, true
		}
		if field.Container != nil {
			for c, column := range field.Container.Columns {
				if found, idx, ok := locateIn(column.Fields, InColumn(field.UID, c), uid); ok {
					return found, idx, true
				}
			}
		}
		if field.Table != nil {
			for r, row := range field.Table.Rows {
				for c, cell := range row {
					if found, idx, ok := locateIn(cell.Fields, InCell(field.UID, r, c), uid); ok {
						return found, idx, true
					}
				}
			}
		}
	}
	return Location{}, -1, false
}

// Move relocates the field with the given uid to index in the list addressed by
// to. index is interpreted after the field has left its current list, which
// matches drag-and-drop semantics for reordering within one list.
func (t *Tree) Move(uid string, to Location, index int) error {
	from, fromIndex, err := t.Locate(uid)
	if err != nil {
		return err
	}
	source, err := t.list(from)
	if err != nil {
		return err
	}
	moving := (*source)[fromIndex]
	if !to.IsRoot() && moving.Contains(to.Owner) {
		return fmt.Errorf("%w: %s into %s", ErrCyclicMove, uid, to)
	}
	target, err := t.list(to)
	if err != nil {
		return err
	}

	limit := len(*target)
	if target == source {
		limit--
	}
	if index < 0 || index > limit {
		return fmt.Errorf("%w: move %s to %d in %s (len %d)", ErrIndexOutOfRange, uid, index, to, limit)
	}

	*source = remove(*source, fromIndex)
	*target = insert(*target, index, moving)
	return nil
}

// Find returns the field with the given uid.
func (t *Tree) Find(uid string) (*model.Field, error) {
	field, ok := model.Find(t.Fields, uid)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFieldNotFound, uid)
	}
	return field, nil
}

// HasChildren reports whether the container or table named by uid holds any
// nested field. Interaction layers use it to pick a stronger confirmation.
func (t *Tree) HasChildren(uid string) (bool, error) {
	field, err := t.Find(uid)
	if err != nil {
		return false, err
	}
	return field.HasChildren(), nil
}

// Walk visits every field depth-first in document order until fn returns
// false.
func (t *Tree) Walk(fn func(field *model.Field, depth int) bool) {
	model.Walk(t.Fields, fn)
}

// Len returns the number of fields in the tree, nested ones included.
func (t *Tree) Len() int {
	return model.Count(t.Fields)
}

// Snapshot returns a deep copy of the root list.
func (t *Tree) Snapshot() []*model.Field {
	return model.CloneFields(t.Fields)
}

// Replace swaps the whole tree for fields, discarding any open draft.
func (t *Tree) Replace(fields []*model.Field) {
	if fields == nil {
		fields = []*model.Field{}
	}
	t.Fields = fields
	t.editing = nil
	t.logger.Debug("form tree replaced", zap.Int("fields", model.Count(fields)))
}

// Clear empties the tree. Callers are expected to have obtained confirmation
// beforehand.
func (t *Tree) Clear() {
	t.Replace(nil)
}

// Export serialises the root list as indented JSON.
func (t *Tree) Export() ([]byte, error) {
	return codec.Serialize(t.Fields)
}

// DuplicateNames maps every name used by more than one field to the uids that
// share it. Deserialised documents are not rejected for collisions; this query
// lets callers surface them.
func (t *Tree) DuplicateNames() map[string][]string {
	byName := make(map[string][]string)
	t.Walk(func(field *model.Field, _ int) bool {
		byName[field.Name] = append(byName[field.Name], field.UID)
		return true
	})
	for name, uids := range byName {
		if len(uids) < 2 {
			delete(byName, name)
		}
	}
	if len(byName) == 0 {
		return nil
	}
	return byName
}

// nameOwner returns the uid of a field other than except that uses name.
func (t *Tree) nameOwner(name, except string) (string, bool) {
	var owner string
	t.Walk(func(field *model.Field, _ int) bool {
		if field.Name == name && field.UID != except {
			owner = field.UID
			return false
		}
		return true
	})
	return owner, owner != ""
}

func (t *Tree) names() map[string]struct{} {
	out := make(map[string]struct{})
	t.Walk(func(field *model.Field, _ int) bool {
		out[field.Name] = struct{}{}
		return true
	})
	return out
}

func insert(list []*model.Field, index int, field *model.Field) []*model.Field {
	list = append(list, nil)
	copy(list[index+1:], list[index:])
	list[index] = field
	return list
}

func remove(list []*model.Field, index int) []*model.Field {
	out := make([]*model.Field, 0, len(list)-1)
	out = append(out, list[:index]...)
	return append(out, list[index+1:]...)
}
