// Package validation reports structural problems in form definitions, such as
// those loaded from hand-edited or third-party documents.
package validation
