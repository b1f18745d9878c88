package model

import (
	json "github.com/goccy/go-json"
)

// WireField is the flat document shape of a Field: variant attributes sit next
// to the common ones and only appear for the variant that owns them. Key order
// follows declaration order.
type WireField struct {
	UID           string        `json:"uid"`
	Type          FieldType     `json:"type"`
	Name          string        `json:"name"`
	Label         string        `json:"label"`
	Required      bool          `json:"required"`
	Placeholder   string        `json:"placeholder,omitempty"`
	Options       *[]string     `json:"options,omitempty"`
	Columns       *[]WireColumn `json:"columns,omitempty"`
	Table         *WireTable    `json:"table,omitempty"`
	UploadedPhoto string        `json:"uploadedPhoto,omitempty"`
	PhotoName     string        `json:"photoName,omitempty"`
	PhotoSize     string        `json:"photoSize,omitempty"`
	AcceptedTypes *string       `json:"acceptedTypes,omitempty"`
	MaxSize       *float64      `json:"maxSize,omitempty"`
}

// WireColumn is the document shape of a container column.
type WireColumn struct {
	Fields []WireField `json:"fields"`
}

// WireTable is the document shape of a table.
type WireTable struct {
	Headers []string     `json:"headers"`
	Rows    [][]WireCell `json:"rows"`
}

// WireCell is the document shape of a table cell.
type WireCell struct {
	Fields []WireField `json:"fields"`
}

// ToWire converts a field list into its document shape.
func ToWire(fields []*Field) []WireField {
	out := make([]WireField, 0, len(fields))
	for _, field := range fields {
		if field == nil {
			continue
		}
		out = append(out, field.toWire())
	}
	return out
}

// FromWire converts a decoded document back into fields. The shape is trusted
// as-is: a container without columns yields a field without a Container
// variant.
func FromWire(wire []WireField) []*Field {
	out := make([]*Field, len(wire))
	for i := range wire {
		out[i] = fromWire(wire[i])
	}
	return out
}

func (f *Field) toWire() WireField {
	w := WireField{
		UID:         f.UID,
		Type:        f.Type,
		Name:        f.Name,
		Label:       f.Label,
		Required:    f.Required,
		Placeholder: f.Placeholder,
	}
	if f.Choice != nil {
		options := f.Choice.Options
		if options == nil {
			options = []string{}
		}
		w.Options = &options
	}
	if f.Container != nil {
		columns := make([]WireColumn, len(f.Container.Columns))
		for i, column := range f.Container.Columns {
			columns[i] = WireColumn{Fields: ToWire(column.Fields)}
		}
		w.Columns = &columns
	}
	if f.Table != nil {
		table := WireTable{Headers: f.Table.Headers, Rows: make([][]WireCell, len(f.Table.Rows))}
		if table.Headers == nil {
			table.Headers = []string{}
		}
		for i, row := range f.Table.Rows {
			cells := make([]WireCell, len(row))
			for j, cell := range row {
				cells[j] = WireCell{Fields: ToWire(cell.Fields)}
			}
			table.Rows[i] = cells
		}
		w.Table = &table
	}
	if f.Photo != nil {
		w.UploadedPhoto = f.Photo.UploadedPhoto
		w.PhotoName = f.Photo.PhotoName
		w.PhotoSize = f.Photo.PhotoSize
		accepted := f.Photo.AcceptedTypes
		maxSize := f.Photo.MaxSize
		w.AcceptedTypes = &accepted
		w.MaxSize = &maxSize
	}
	return w
}

func fromWire(w WireField) *Field {
	field := &Field{
		UID:         w.UID,
		Type:        w.Type,
		Name:        w.Name,
		Label:       w.Label,
		Required:    w.Required,
		Placeholder: w.Placeholder,
	}
	if w.Options != nil {
		field.Choice = &Choice{Options: *w.Options}
	}
	if w.Columns != nil {
		columns := make([]Column, len(*w.Columns))
		for i, column := range *w.Columns {
			columns[i] = Column{Fields: fromWireList(column.Fields)}
		}
		field.Container = &Container{Columns: columns}
	}
	if w.Table != nil {
		table := &Table{Headers: w.Table.Headers, Rows: make([][]Cell, len(w.Table.Rows))}
		for i, row := range w.Table.Rows {
			cells := make([]Cell, len(row))
			for j, cell := range row {
				cells[j] = Cell{Fields: fromWireList(cell.Fields)}
			}
			table.Rows[i] = cells
		}
		field.Table = table
	}
	if w.UploadedPhoto != "" || w.PhotoName != "" || w.PhotoSize != "" || w.AcceptedTypes != nil || w.MaxSize != nil {
		photo := &Photo{
			UploadedPhoto: w.UploadedPhoto,
			PhotoName:     w.PhotoName,
			PhotoSize:     w.PhotoSize,
		}
		if w.AcceptedTypes != nil {
			photo.AcceptedTypes = *w.AcceptedTypes
		}
		if w.MaxSize != nil {
			photo.MaxSize = *w.MaxSize
		}
		field.Photo = photo
	}
	return field
}

func fromWireList(wire []WireField) []*Field {
	if wire == nil {
		return []*Field{}
	}
	return FromWire(wire)
}

// MarshalJSON encodes the field in its document shape.
func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.toWire())
}

// UnmarshalJSON decodes a field from its document shape.
func (f *Field) UnmarshalJSON(data []byte) error {
	var w WireField
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*f = *fromWire(w)
	return nil
}
