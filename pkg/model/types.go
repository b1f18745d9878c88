package model

import internalmodel "github.com/goliatone/go-formbuilder/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeText      = internalmodel.FieldTypeText
	FieldTypeEmail     = internalmodel.FieldTypeEmail
	FieldTypePhoto     = internalmodel.FieldTypePhoto
	FieldTypeNumber    = internalmodel.FieldTypeNumber
	FieldTypeTextarea  = internalmodel.FieldTypeTextarea
	FieldTypeSelect    = internalmodel.FieldTypeSelect
	FieldTypeRadio     = internalmodel.FieldTypeRadio
	FieldTypeCheckbox  = internalmodel.FieldTypeCheckbox
	FieldTypeHeading   = internalmodel.FieldTypeHeading
	FieldTypeParagraph = internalmodel.FieldTypeParagraph
	FieldTypeContainer = internalmodel.FieldTypeContainer
	FieldTypeTable     = internalmodel.FieldTypeTable
)

const (
	DefaultPhotoMaxSize       = internalmodel.DefaultPhotoMaxSize
	DefaultPhotoAcceptedTypes = internalmodel.DefaultPhotoAcceptedTypes
)

type Field = internalmodel.Field
type Choice = internalmodel.Choice
type Container = internalmodel.Container
type Column = internalmodel.Column
type Table = internalmodel.Table
type Cell = internalmodel.Cell
type Photo = internalmodel.Photo
type WireField = internalmodel.WireField

var (
	UIDPattern  = internalmodel.UIDPattern
	NamePattern = internalmodel.NamePattern
)

// Walk visits every field depth-first in document order.
func Walk(fields []*Field, fn func(field *Field, depth int) bool) {
	internalmodel.Walk(fields, fn)
}

// Find locates the field with the given uid anywhere in the tree.
func Find(fields []*Field, uid string) (*Field, bool) {
	return internalmodel.Find(fields, uid)
}

// Count returns the number of fields in the tree, nested ones included.
func Count(fields []*Field) int {
	return internalmodel.Count(fields)
}

// CloneFields deep copies a field list.
func CloneFields(fields []*Field) []*Field {
	return internalmodel.CloneFields(fields)
}

// ToWire converts fields into their flat document shape.
func ToWire(fields []*Field) []WireField {
	return internalmodel.ToWire(fields)
}

// FromWire converts a decoded document into fields.
func FromWire(wire []WireField) []*Field {
	return internalmodel.FromWire(wire)
}

// NewTable builds an empty table with default headers.
func NewTable(columns, rows int) *Table {
	return internalmodel.NewTable(columns, rows)
}

// EmptyRow returns a table row of width empty cells.
func EmptyRow(width int) []Cell {
	return internalmodel.EmptyRow(width)
}

// ColumnHeader returns the default header of the n-th (1-based) table column.
func ColumnHeader(n int) string {
	return internalmodel.ColumnHeader(n)
}

// PlaceholderFor derives the default hint text of a field type.
func PlaceholderFor(kind FieldType) string {
	return internalmodel.PlaceholderFor(kind)
}
