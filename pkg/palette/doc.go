// Package palette exposes the fixed catalogue of field types a form tree can be
// built from. Each Descriptor carries the identifier stored in the tree, the
// default caption given to new fields and an icon reference (a CSS class list or
// inline SVG markup) surfaced by interactive front ends.
package palette
