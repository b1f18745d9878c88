package palette

import (
	"errors"
	"fmt"
	"strings"
)

// Built-in field type identifiers.
const (
	TypeText      = "text"
	TypeEmail     = "email"
	TypePhoto     = "photo"
	TypeNumber    = "number"
	TypeTextarea  = "textarea"
	TypeSelect    = "select"
	TypeRadio     = "radio"
	TypeCheckbox  = "checkbox"
	TypeHeading   = "heading"
	TypeParagraph = "paragraph"
	TypeContainer = "container"
	TypeTable     = "table"
)

// Descriptor describes one instantiable field type.
type Descriptor struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
	Icon  string `json:"icon" yaml:"icon"`
}

// ErrInvalidDescriptor is returned by New when a descriptor cannot be
// registered.
var ErrInvalidDescriptor = errors.New("palette: invalid descriptor")

var builtins = []Descriptor{
	{ID: TypeText, Label: "Text Input", Icon: "fas fa-font"},
	{ID: TypeEmail, Label: "Email Input", Icon: "fas fa-envelope"},
	{ID: TypePhoto, Label: "Photo", Icon: "fas fa-camera"},
	{ID: TypeNumber, Label: "Number Input", Icon: "fas fa-hashtag"},
	{ID: TypeTextarea, Label: "Text Area", Icon: "fas fa-align-left"},
	{ID: TypeSelect, Label: "Select Dropdown", Icon: "fas fa-caret-square-down"},
	{ID: TypeRadio, Label: "Radio Button", Icon: "fas fa-dot-circle"},
	{ID: TypeCheckbox, Label: "Checkbox", Icon: "fas fa-check-square"},
	{ID: TypeHeading, Label: "Heading", Icon: "fas fa-heading"},
	{ID: TypeParagraph, Label: "Paragraph", Icon: "fas fa-paragraph"},
	{ID: TypeContainer, Label: "Container", Icon: "fas fa-layer-group"},
	{ID: TypeTable, Label: "Table", Icon: "fas fa-table"},
}

// Registry is an ordered, read-only list of descriptors. Lookups scan the list;
// palettes stay small enough that an index would not pay for itself.
type Registry struct {
	entries []Descriptor
}

var defaultRegistry = &Registry{entries: builtins}

// Default returns the built-in palette.
func Default() *Registry {
	return defaultRegistry
}

// New builds a registry from the supplied descriptors, preserving their order.
// Identifiers must be non-empty and unique.
func New(descriptors ...Descriptor) (*Registry, error) {
	seen := make(map[string]struct{}, len(descriptors))
	entries := make([]Descriptor, 0, len(descriptors))
	for idx, desc := range descriptors {
		id := strings.TrimSpace(desc.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: entry %d has an empty id", ErrInvalidDescriptor, idx)
		}
		if _, exists := seen[id]; exists {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidDescriptor, id)
		}
		seen[id] = struct{}{}
		desc.ID = id
		entries = append(entries, desc)
	}
	return &Registry{entries: entries}, nil
}

// List returns a copy of the descriptors in palette order.
func (r *Registry) List() []Descriptor {
	if r == nil {
		return nil
	}
	out := make([]Descriptor, len(r.entries))
	copy(out, r.entries)
	return out
}

// Lookup finds the descriptor registered under id.
func (r *Registry) Lookup(id string) (Descriptor, bool) {
	if r == nil {
		return Descriptor{}, false
	}
	for _, desc := range r.entries {
		if desc.ID == id {
			return desc, true
		}
	}
	return Descriptor{}, false
}

// Label returns the display label for id, or id itself when the type is not
// registered.
func (r *Registry) Label(id string) string {
	if desc, ok := r.Lookup(id); ok && desc.Label != "" {
		return desc.Label
	}
	return id
}

// IDs returns the registered identifiers in palette order.
func (r *Registry) IDs() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.entries))
	for i, desc := range r.entries {
		out[i] = desc.ID
	}
	return out
}
