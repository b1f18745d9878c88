// Package server exposes a form tree over a JSON HTTP API, together with the
// generated submission schema and an HTML preview.
//
// Operations that discard fields only proceed when the request carries
// confirm=true; otherwise they answer 409 with the question that would have
// been asked.
package server
