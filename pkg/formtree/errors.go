package formtree

import (
	"errors"
	"fmt"
)

var (
	// ErrFieldNotFound is returned when a uid does not name a field in the tree.
	ErrFieldNotFound = errors.New("formtree: field not found")
	// ErrIndexOutOfRange is returned for positions outside the addressed list.
	ErrIndexOutOfRange = errors.New("formtree: index out of range")
	// ErrNotContainer is returned when a container operation targets another type.
	ErrNotContainer = errors.New("formtree: field is not a container")
	// ErrNotTable is returned when a table operation targets another type.
	ErrNotTable = errors.New("formtree: field is not a table")
	// ErrNotPhoto is returned when a photo operation targets another type.
	ErrNotPhoto = errors.New("formtree: field is not a photo field")
	// ErrLastTableRow is returned when removing the only row of a table.
	ErrLastTableRow = errors.New("formtree: a table must keep at least one row")
	// ErrLastTableColumn is returned when removing the only column of a table.
	ErrLastTableColumn = errors.New("formtree: a table must keep at least one column")
	// ErrCyclicMove is returned when a field would be moved into its own subtree.
	ErrCyclicMove = errors.New("formtree: cannot move a field into itself")
	// ErrNilField is returned when inserting a nil field.
	ErrNilField = errors.New("formtree: field is nil")
	// ErrNotEditing is returned by Save when no draft is open.
	ErrNotEditing = errors.New("formtree: no field is being edited")
	// ErrDuplicateName is returned by Save when another field already uses the
	// draft's name.
	ErrDuplicateName = errors.New("formtree: field name already in use")
	// ErrEmptyName is returned by Save when the draft's name is blank.
	ErrEmptyName = errors.New("formtree: field name is required")
)

// PhotoErrorKind classifies rejected uploads.
type PhotoErrorKind string

const (
	PhotoTooLarge     PhotoErrorKind = "too_large"
	PhotoTypeRejected PhotoErrorKind = "type_rejected"
	PhotoUnreadable   PhotoErrorKind = "unreadable"
)

// PhotoError reports an upload that failed validation. The field is left
// untouched.
type PhotoError struct {
	Kind    PhotoErrorKind
	File    string
	Message string
	Err     error
}

func (e *PhotoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("formtree: photo %q: %s: %v", e.File, e.Message, e.Err)
	}
	return fmt.Sprintf("formtree: photo %q: %s", e.File, e.Message)
}

func (e *PhotoError) Unwrap() error {
	return e.Err
}
