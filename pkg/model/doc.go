// Package model defines the form tree consumed by the builder, serializers and
// renderers. A Field is a tagged union: Type selects which of the Choice,
// Container, Table or Photo variants carries the type-specific attributes, and
// the flat JSON document shape (WireField) only emits the keys of the variant
// that is set. The factory returned by NewFactory assigns uids of the form
// field-<unix millis>-<5 base36 chars> and names of the form field_<13 digits>.
package model
