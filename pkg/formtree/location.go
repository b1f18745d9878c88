package formtree

import (
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Location addresses one ordered field list in the tree. The zero value is the
// root list. When Owner names a container, Column selects the column; when it
// names a table, Row and Column select the cell.
type Location struct {
	Owner  string `json:"owner,omitempty"`
	Row    int    `json:"row,omitempty"`
	Column int    `json:"column,omitempty"`
}

// Root addresses the top-level field list.
func Root() Location {
	return Location{}
}

// InColumn addresses a container column.
func InColumn(containerUID string, column int) Location {
	return Location{Owner: containerUID, Column: column}
}

// InCell addresses a table cell.
func InCell(tableUID string, row, column int) Location {
	return Location{Owner: tableUID, Row: row, Column: column}
}

// IsRoot reports whether the location addresses the top-level list.
func (l Location) IsRoot() bool {
	return l.Owner == ""
}

func (l Location) String() string {
	if l.IsRoot() {
		return "root"
	}
	return fmt.Sprintf("%s[%d,%d]", l.Owner, l.Row, l.Column)
}

// list resolves the location to a pointer at the addressed slice so callers can
// splice it in place.
func (t *Tree) list(loc Location) (*[]*model.Field, error) {
	if loc.IsRoot() {
		return &t.Fields, nil
	}
	owner, ok := model.Find(t.Fields, loc.Owner)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFieldNotFound, loc.Owner)
	}
	switch {
	case owner.Container != nil:
		columns := owner.Container.Columns
		if loc.Column < 0 || loc.Column >= len(columns) {
			return nil, fmt.Errorf("%w: column %d of %s", ErrIndexOutOfRange, loc.Column, loc.Owner)
		}
		return &columns[loc.Column].Fields, nil
	case owner.Table != nil:
		rows := owner.Table.Rows
		if loc.Row < 0 || loc.Row >= len(rows) {
			return nil, fmt.Errorf("%w: row %d of %s", ErrIndexOutOfRange, loc.Row, loc.Owner)
		}
		if loc.Column < 0 || loc.Column >= len(rows[loc.Row]) {
			return nil, fmt.Errorf("%w: cell %d,%d of %s", ErrIndexOutOfRange, loc.Row, loc.Column, loc.Owner)
		}
		return &rows[loc.Row][loc.Column].Fields, nil
	default:
		return nil, fmt.Errorf("formtree: field %s holds no nested fields", loc.Owner)
	}
}
