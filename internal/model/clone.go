package model

// Clone returns a deep copy of the field. The copy shares no slices or
// pointers with the receiver.
func (f *Field) Clone() *Field {
	if f == nil {
		return nil
	}
	out := *f
	if f.Choice != nil {
		out.Choice = &Choice{Options: cloneStrings(f.Choice.Options)}
	}
	if f.Container != nil {
		out.Container = &Container{Columns: cloneColumns(f.Container.Columns)}
	}
	if f.Table != nil {
		out.Table = f.Table.Clone()
	}
	if f.Photo != nil {
		photo := *f.Photo
		out.Photo = &photo
	}
	return &out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := &Table{Headers: cloneStrings(t.Headers)}
	if t.Rows != nil {
		out.Rows = make([][]Cell, len(t.Rows))
		for i, row := range t.Rows {
			out.Rows[i] = cloneCells(row)
		}
	}
	return out
}

// CloneFields deep copies a field list.
func CloneFields(fields []*Field) []*Field {
	if fields == nil {
		return nil
	}
	out := make([]*Field, len(fields))
	for i, field := range fields {
		out[i] = field.Clone()
	}
	return out
}

func cloneColumns(columns []Column) []Column {
	if columns == nil {
		return nil
	}
	out := make([]Column, len(columns))
	for i, column := range columns {
		out[i] = Column{Fields: CloneFields(column.Fields)}
	}
	return out
}

func cloneCells(cells []Cell) []Cell {
	if cells == nil {
		return nil
	}
	out := make([]Cell, len(cells))
	for i, cell := range cells {
		out[i] = Cell{Fields: CloneFields(cell.Fields)}
	}
	return out
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
