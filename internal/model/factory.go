package model

import (
	"encoding/binary"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// DefaultPhotoMaxSize is the upload limit, in megabytes, given to new photo
	// fields.
	DefaultPhotoMaxSize = 5
	// DefaultPhotoAcceptedTypes is the media type allow-list given to new photo
	// fields.
	DefaultPhotoAcceptedTypes = "image/*"

	uidSuffixSpace = 36 * 36 * 36 * 36 * 36
	nameSpace      = 10_000_000_000_000
)

var (
	// UIDPattern matches identifiers generated by the Factory.
	UIDPattern = regexp.MustCompile(`^field-[0-9]+-[0-9a-z]{5}$`)
	// NamePattern matches names generated by the Factory.
	NamePattern = regexp.MustCompile(`^field_[0-9]{13}$`)
)

// Factory instantiates fields with the defaults of their palette type.
type Factory struct {
	opts Options
}

// NewFactory creates a Factory with the supplied options. Zero-valued options
// fall back to the built-in palette, wall clock and random UUIDs.
func NewFactory(options Options) *Factory {
	opts := defaultOptions()
	if options.Palette != nil {
		opts.Palette = options.Palette
	}
	if options.Clock != nil {
		opts.Clock = options.Clock
	}
	if options.Entropy != nil {
		opts.Entropy = options.Entropy
	}
	return &Factory{opts: opts}
}

// Create allocates a field of the given type. Unknown types are accepted and
// labelled with the raw type id.
func (f *Factory) Create(typeID string) *Field {
	kind := FieldType(strings.TrimSpace(typeID))
	field := &Field{
		UID:         f.NewUID(),
		Type:        kind,
		Name:        f.NewName(),
		Label:       f.opts.Palette.Label(string(kind)),
		Placeholder: PlaceholderFor(kind),
	}

	switch {
	case kind.IsChoice():
		field.Choice = &Choice{Options: []string{"Option 1", "Option 2"}}
	case kind == FieldTypeContainer:
		field.Container = &Container{Columns: []Column{{Fields: []*Field{}}, {Fields: []*Field{}}}}
	case kind == FieldTypeTable:
		field.Table = NewTable(2, 1)
	case kind == FieldTypePhoto:
		field.Photo = &Photo{
			AcceptedTypes: DefaultPhotoAcceptedTypes,
			MaxSize:       DefaultPhotoMaxSize,
		}
	}
	return field
}

// NewUID returns a fresh identifier of the form field-<unix millis>-<suffix>.
func (f *Factory) NewUID() string {
	id := f.opts.Entropy()
	n := binary.BigEndian.Uint64(id[8:]) % uidSuffixSpace
	suffix := strconv.FormatUint(n, 36)
	if pad := 5 - len(suffix); pad > 0 {
		suffix = strings.Repeat("0", pad) + suffix
	}
	return fmt.Sprintf("field-%d-%s", f.opts.Clock().UnixMilli(), suffix)
}

// NewName returns a fresh machine name of the form field_<13 digits>.
func (f *Factory) NewName() string {
	id := f.opts.Entropy()
	return fmt.Sprintf("field_%013d", binary.BigEndian.Uint64(id[:8])%nameSpace)
}

// PlaceholderFor derives the default hint text for a field type.
func PlaceholderFor(kind FieldType) string {
	if kind.IsChoice() {
		return "Select " + string(kind)
	}
	return "Enter " + string(kind)
}

// NewTable builds a table with the given number of columns and rows. Headers
// are named "Column N"; every cell starts empty.
func NewTable(columns, rows int) *Table {
	table := &Table{Headers: make([]string, columns), Rows: make([][]Cell, 0, rows)}
	for i := range table.Headers {
		table.Headers[i] = ColumnHeader(i + 1)
	}
	for i := 0; i < rows; i++ {
		table.Rows = append(table.Rows, EmptyRow(columns))
	}
	return table
}

// EmptyRow returns a row of width empty cells.
func EmptyRow(width int) []Cell {
	row := make([]Cell, width)
	for i := range row {
		row[i] = Cell{Fields: []*Field{}}
	}
	return row
}

// ColumnHeader returns the default header for the n-th (1-based) column.
func ColumnHeader(n int) string {
	return "Column " + strconv.Itoa(n)
}
