// Package codec converts form trees to and from their document form. JSON is
// the canonical shape (four-space indentation, keys in declaration order);
// YAML carries the same tree for hand-edited definitions.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Indent is the indentation used by Serialize.
const Indent = "    "

// ExportFileName is the conventional name of an exported definition.
const ExportFileName = "form-structure.json"

// Format names a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	// ErrNotArray is returned when a document root is not a field array.
	ErrNotArray = errors.New("codec: document root must be an array")
	// ErrUnknownFormat is returned for unsupported formats.
	ErrUnknownFormat = errors.New("codec: unknown format")
)

// Serialize renders fields as an indented JSON array.
func Serialize(fields []*model.Field) ([]byte, error) {
	payload, err := json.MarshalIndent(model.ToWire(fields), "", Indent)
	if err != nil {
		return nil, fmt.Errorf("codec: marshal json: %w", err)
	}
	return payload, nil
}

// Deserialize parses a JSON array of fields. Shapes are trusted as-is: missing
// attributes stay empty and nothing is checked against the palette.
func Deserialize(data []byte) ([]*model.Field, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotArray
	}
	var wire []model.WireField
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return nil, fmt.Errorf("codec: unmarshal json: %w", err)
	}
	return model.FromWire(wire), nil
}

// Encode renders fields in the requested format.
func Encode(format Format, fields []*model.Field) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return Serialize(fields)
	case FormatYAML:
		return SerializeYAML(fields)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Decode parses fields from the requested format.
func Decode(format Format, data []byte) ([]*model.Field, error) {
	switch format {
	case FormatJSON, "":
		return Deserialize(data)
	case FormatYAML:
		return DeserializeYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ParseFormat validates a user supplied format name.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, raw)
	}
}

// FormatFromPath infers the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}
