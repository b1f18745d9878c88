// Package formtree owns the form tree: the ordered root field list, every
// structural and attribute mutation applied to it, and the single editing slot.
//
// A Tree is not safe for concurrent use. It is meant to be driven by one
// interaction layer at a time; surfaces that are concurrent by nature must
// serialise access themselves.
//
// Mutations either apply completely or not at all. Multi-row table changes are
// computed on copies and swapped in once every row has been rebuilt, and a
// failed photo validation leaves the field untouched.
package formtree
