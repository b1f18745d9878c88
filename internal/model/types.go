package model

import "github.com/goliatone/go-formbuilder/pkg/palette"

// FieldType identifies the palette entry a field was created from.
type FieldType string

const (
	FieldTypeText      FieldType = palette.TypeText
	FieldTypeEmail     FieldType = palette.TypeEmail
	FieldTypePhoto     FieldType = palette.TypePhoto
	FieldTypeNumber    FieldType = palette.TypeNumber
	FieldTypeTextarea  FieldType = palette.TypeTextarea
	FieldTypeSelect    FieldType = palette.TypeSelect
	FieldTypeRadio     FieldType = palette.TypeRadio
	FieldTypeCheckbox  FieldType = palette.TypeCheckbox
	FieldTypeHeading   FieldType = palette.TypeHeading
	FieldTypeParagraph FieldType = palette.TypeParagraph
	FieldTypeContainer FieldType = palette.TypeContainer
	FieldTypeTable     FieldType = palette.TypeTable
)

// IsChoice reports whether fields of this type carry an option list.
func (t FieldType) IsChoice() bool {
	switch t {
	case FieldTypeSelect, FieldTypeRadio, FieldTypeCheckbox:
		return true
	default:
		return false
	}
}

// IsStatic reports whether the type only decorates the form (no submitted
// value).
func (t FieldType) IsStatic() bool {
	switch t {
	case FieldTypeHeading, FieldTypeParagraph:
		return true
	default:
		return false
	}
}

// Field is one node of the form tree. The common attributes are always
// present; exactly one of the variant pointers is expected to be set for
// choice, container, table and photo fields, and none for the rest.
type Field struct {
	UID         string
	Type        FieldType
	Name        string
	Label       string
	Required    bool
	Placeholder string

	Choice    *Choice
	Container *Container
	Table     *Table
	Photo     *Photo
}

// Choice holds the option list of select, radio and checkbox fields.
type Choice struct {
	Options []string
}

// Container holds the independent columns of a container field.
type Container struct {
	Columns []Column
}

// Column is one ordered field list inside a container.
type Column struct {
	Fields []*Field
}

// Table is a header row plus a grid of cells. Every row holds exactly
// len(Headers) cells once an operation completes.
type Table struct {
	Headers []string
	Rows    [][]Cell
}

// Cell is one ordered field list inside a table.
type Cell struct {
	Fields []*Field
}

// Photo carries upload constraints and, after a successful upload, the stored
// image.
type Photo struct {
	UploadedPhoto string
	PhotoName     string
	PhotoSize     string
	AcceptedTypes string
	// MaxSize is expressed in megabytes.
	MaxSize float64
}

// HasUpload reports whether an image is attached.
func (p *Photo) HasUpload() bool {
	return p != nil && p.UploadedPhoto != ""
}
