package model

// WalkFunc is invoked for every field reached by Walk. Returning false stops
// the traversal.
type WalkFunc func(field *Field, depth int) bool

// Walk visits fields depth-first in document order: a container's columns
// left to right, a table's cells row by row.
func Walk(fields []*Field, fn WalkFunc) {
	walk(fields, 0, fn)
}

func walk(fields []*Field, depth int, fn WalkFunc) bool {
	for _, field := range fields {
		if field == nil {
			continue
		}
		if !fn(field, depth) {
			return false
		}
		for _, children := range field.ChildLists() {
			if !walk(children, depth+1, fn) {
				return false
			}
		}
	}
	return true
}

// ChildLists returns the nested field lists owned directly by the field.
func (f *Field) ChildLists() [][]*Field {
	if f == nil {
		return nil
	}
	var lists [][]*Field
	if f.Container != nil {
		for _, column := range f.Container.Columns {
			lists = append(lists, column.Fields)
		}
	}
	if f.Table != nil {
		for _, row := range f.Table.Rows {
			for _, cell := range row {
				lists = append(lists, cell.Fields)
			}
		}
	}
	return lists
}

// HasChildren reports whether a container or table holds any nested field.
func (f *Field) HasChildren() bool {
	for _, list := range f.ChildLists() {
		if len(list) > 0 {
			return true
		}
	}
	return false
}

// Find locates the field with the given uid.
func Find(fields []*Field, uid string) (*Field, bool) {
	var found *Field
	Walk(fields, func(field *Field, _ int) bool {
		if field.UID == uid {
			found = field
			return false
		}
		return true
	})
	return found, found != nil
}

// Contains reports whether uid names the field itself or one of its
// descendants.
func (f *Field) Contains(uid string) bool {
	if f == nil {
		return false
	}
	if f.UID == uid {
		return true
	}
	_, ok := Find(flatten(f.ChildLists()), uid)
	return ok
}

// Count returns the number of fields in the tree, nested ones included.
func Count(fields []*Field) int {
	total := 0
	Walk(fields, func(*Field, int) bool {
		total++
		return true
	})
	return total
}

func flatten(lists [][]*Field) []*Field {
	var out []*Field
	for _, list := range lists {
		out = append(out, list...)
	}
	return out
}
