// Package backend builds server-side validators for the parts of an HTTP
// exchange: request and response headers, query parameters, URL path
// parameters, and JSON request and response bodies.
//
// Transport is left to the caller. Validators take raw values (strings or
// dsl.Undefined for fields, an io.Reader for bodies) and return
// skema.ValidationResult values.
package backend
