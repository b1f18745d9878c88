package formtree

import (
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// AddColumn appends an empty column to the container named by uid.
func (t *Tree) AddColumn(uid string) error {
	field, err := t.container(uid)
	if err != nil {
		return err
	}
	if field.Container == nil {
		field.Container = &model.Container{}
	}
	field.Container.Columns = append(field.Container.Columns, model.Column{Fields: []*model.Field{}})
	return nil
}

// ColumnHasFields reports whether a container column holds any field.
func (t *Tree) ColumnHasFields(uid string, column int) (bool, error) {
	field, err := t.container(uid)
	if err != nil {
		return false, err
	}
	columns := columnsOf(field)
	if column < 0 || column >= len(columns) {
		return false, fmt.Errorf("%w: column %d of %s", ErrIndexOutOfRange, column, uid)
	}
	return len(columns[column].Fields) > 0, nil
}

// RemoveColumn removes a container column together with its fields. Callers
// are expected to confirm first when ColumnHasFields reports true.
func (t *Tree) RemoveColumn(uid string, column int) (model.Column, error) {
	field, err := t.container(uid)
	if err != nil {
		return model.Column{}, err
	}
	columns := columnsOf(field)
	if column < 0 || column >= len(columns) {
		return model.Column{}, fmt.Errorf("%w: column %d of %s", ErrIndexOutOfRange, column, uid)
	}
	removed := columns[column]
	next := make([]model.Column, 0, len(columns)-1)
	next = append(next, columns[:column]...)
	next = append(next, columns[column+1:]...)
	field.Container.Columns = next
	for _, nested := range removed.Fields {
		t.dropDraftFor(nested)
	}
	return removed, nil
}

// AddTableRow appends a row of empty cells sized to the header count.
func (t *Tree) AddTableRow(uid string) error {
	field, err := t.table(uid)
	if err != nil {
		return err
	}
	table := field.Table
	table.Rows = append(table.Rows, model.EmptyRow(len(table.Headers)))
	return nil
}

// RowHasFields reports whether any cell of a table row holds a field.
func (t *Tree) RowHasFields(uid string, row int) (bool, error) {
	field, err := t.table(uid)
	if err != nil {
		return false, err
	}
	if row < 0 || row >= len(field.Table.Rows) {
		return false, fmt.Errorf("%w: row %d of %s", ErrIndexOutOfRange, row, uid)
	}
	for _, cell := range field.Table.Rows[row] {
		if len(cell.Fields) > 0 {
			return true, nil
		}
	}
	return false, nil
}

// RemoveTableRow removes a row. The last remaining row cannot be removed.
func (t *Tree) RemoveTableRow(uid string, row int) error {
	field, err := t.table(uid)
	if err != nil {
		return err
	}
	table := field.Table
	if len(table.Rows) <= 1 {
		return ErrLastTableRow
	}
	if row < 0 || row >= len(table.Rows) {
		return fmt.Errorf("%w: row %d of %s", ErrIndexOutOfRange, row, uid)
	}
	removed := table.Rows[row]
	rows := make([][]model.Cell, 0, len(table.Rows)-1)
	rows = append(rows, table.Rows[:row]...)
	rows = append(rows, table.Rows[row+1:]...)
	table.Rows = rows
	for _, cell := range removed {
		for _, nested := range cell.Fields {
			t.dropDraftFor(nested)
		}
	}
	return nil
}

// AddTableColumn appends a "Column N" header and one empty cell to every row.
func (t *Tree) AddTableColumn(uid string) error {
	field, err := t.table(uid)
	if err != nil {
		return err
	}
	table := field.Table
	width := len(table.Headers)

	headers := make([]string, 0, width+1)
	headers = append(headers, table.Headers...)
	headers = append(headers, model.ColumnHeader(width+1))

	rows := make([][]model.Cell, len(table.Rows))
	for i, row := range table.Rows {
		next := make([]model.Cell, 0, width+1)
		next = append(next, row...)
		for len(next) < width {
			next = append(next, model.Cell{Fields: []*model.Field{}})
		}
		rows[i] = append(next, model.Cell{Fields: []*model.Field{}})
	}

	table.Headers = headers
	table.Rows = rows
	return nil
}

// TableColumnHasFields reports whether any cell of a table column holds a
// field.
func (t *Tree) TableColumnHasFields(uid string, column int) (bool, error) {
	field, err := t.table(uid)
	if err != nil {
		return false, err
	}
	if column < 0 || column >= len(field.Table.Headers) {
		return false, fmt.Errorf("%w: column %d of %s", ErrIndexOutOfRange, column, uid)
	}
	for _, row := range field.Table.Rows {
		if column < len(row) && len(row[column].Fields) > 0 {
			return true, nil
		}
	}
	return false, nil
}

// RemoveTableColumn removes the header and the matching cell of every row. The
// last remaining column cannot be removed.
func (t *Tree) RemoveTableColumn(uid string, column int) error {
	field, err := t.table(uid)
	if err != nil {
		return err
	}
	table := field.Table
	if len(table.Headers) <= 1 {
		return ErrLastTableColumn
	}
	if column < 0 || column >= len(table.Headers) {
		return fmt.Errorf("%w: column %d of %s", ErrIndexOutOfRange, column, uid)
	}

	headers := make([]string, 0, len(table.Headers)-1)
	headers = append(headers, table.Headers[:column]...)
	headers = append(headers, table.Headers[column+1:]...)

	var dropped []*model.Field
	rows := make([][]model.Cell, len(table.Rows))
	for i, row := range table.Rows {
		next := make([]model.Cell, 0, len(row))
		for c, cell := range row {
			if c == column {
				dropped = append(dropped, cell.Fields...)
				continue
			}
			next = append(next, cell)
		}
		rows[i] = next
	}

	table.Headers = headers
	table.Rows = rows
	for _, nested := range dropped {
		t.dropDraftFor(nested)
	}
	return nil
}

// SetTableHeader renames a table column.
func (t *Tree) SetTableHeader(uid string, column int, header string) error {
	field, err := t.table(uid)
	if err != nil {
		return err
	}
	if column < 0 || column >= len(field.Table.Headers) {
		return fmt.Errorf("%w: column %d of %s", ErrIndexOutOfRange, column, uid)
	}
	field.Table.Headers[column] = header
	return nil
}

func (t *Tree) container(uid string) (*model.Field, error) {
	field, err := t.Find(uid)
	if err != nil {
		return nil, err
	}
	if field.Type != model.FieldTypeContainer {
		return nil, fmt.Errorf("%w: %s is %q", ErrNotContainer, uid, field.Type)
	}
	return field, nil
}

func (t *Tree) table(uid string) (*model.Field, error) {
	field, err := t.Find(uid)
	if err != nil {
		return nil, err
	}
	if field.Type != model.FieldTypeTable {
		return nil, fmt.Errorf("%w: %s is %q", ErrNotTable, uid, field.Type)
	}
	if field.Table == nil {
		field.Table = model.NewTable(1, 1)
	}
	return field, nil
}

func columnsOf(field *model.Field) []model.Column {
	if field.Container == nil {
		return nil
	}
	return field.Container.Columns
}
