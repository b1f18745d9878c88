// Package schema derives an OpenAPI description of the data a rendered form
// submits: one property per input field, nested layout flattened, with enums
// for choice fields and formats for email and photo fields.
package schema
