package builder

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/palette"
)

// Outline writes a human readable, indented listing of a field tree.
type Outline struct {
	palette *palette.Registry
	label   *color.Color
	meta    *color.Color
	group   *color.Color
}

// NewOutline returns an outline writer. Colour follows fatih/color's terminal
// detection unless plain is set.
func NewOutline(registry *palette.Registry, plain bool) *Outline {
	if registry == nil {
		registry = palette.Default()
	}
	o := &Outline{
		palette: registry,
		label:   color.New(color.Bold),
		meta:    color.New(color.Faint),
		group:   color.New(color.FgMagenta),
	}
	if plain {
		o.label.DisableColor()
		o.meta.DisableColor()
		o.group.DisableColor()
	}
	return o
}

// Write renders fields to w.
func (o *Outline) Write(w io.Writer, fields []*model.Field) error {
	if len(fields) == 0 {
		_, err := fmt.Fprintln(w, o.meta.Sprint("(no fields)"))
		return err
	}
	ow := &outlineWriter{w: w}
	o.fields(ow, fields, 0)
	return ow.err
}

func (o *Outline) fields(ow *outlineWriter, fields []*model.Field, depth int) {
	for _, field := range fields {
		if field == nil {
			continue
		}
		o.field(ow, field, depth)
	}
}

func (o *Outline) field(ow *outlineWriter, field *model.Field, depth int) {
	indent := strings.Repeat("  ", depth)
	required := ""
	if field.Required {
		required = " *"
	}
	ow.printf("%s%s%s %s\n", indent,
		o.label.Sprint(field.Label),
		required,
		o.meta.Sprintf("[%s %s %s]", o.palette.Label(string(field.Type)), field.Name, field.UID),
	)
	if field.Choice != nil && len(field.Choice.Options) > 0 {
		ow.printf("%s  %s\n", indent, o.meta.Sprint("options: "+strings.Join(field.Choice.Options, ", ")))
	}
	if field.Photo.HasUpload() {
		ow.printf("%s  %s\n", indent, o.meta.Sprintf("photo: %s (%s)", field.Photo.PhotoName, field.Photo.PhotoSize))
	}
	if field.Container != nil {
		for i, column := range field.Container.Columns {
			ow.printf("%s  %s\n", indent, o.group.Sprintf("column %d", i+1))
			o.fields(ow, column.Fields, depth+2)
		}
	}
	if field.Table != nil {
		for r, row := range field.Table.Rows {
			for c, cell := range row {
				header := ""
				if c < len(field.Table.Headers) {
					header = field.Table.Headers[c]
				}
				ow.printf("%s  %s\n", indent, o.group.Sprintf("row %d / %s", r+1, header))
				o.fields(ow, cell.Fields, depth+2)
			}
		}
	}
}

type outlineWriter struct {
	w   io.Writer
	err error
}

func (ow *outlineWriter) printf(format string, args ...any) {
	if ow.err != nil {
		return
	}
	_, ow.err = fmt.Fprintf(ow.w, format, args...)
}
