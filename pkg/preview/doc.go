// Package preview renders a field tree as a standalone HTML page so a form
// definition can be inspected the way end users would see it.
package preview
