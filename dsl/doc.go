// Package dsl provides the structural validators that endpoint definitions are
// written with.
//
// A validator is a dsl.Type. Every shape is a concrete struct in this package
// (StringType, InterfaceType, UnionType, ...), so consumers such as schema
// generators can switch on the dynamic type. Validators decode JSON-shaped
// values (nil, Undefined, string, numbers, bool, []any, map[string]any), check
// already-decoded values with Is, and convert decoded values back with Encode.
//
//	User := dsl.Interface(
//		dsl.F("id", dsl.Number()),
//		dsl.F("name", dsl.String()),
//	)
//	out, errs := dsl.Decode(User, map[string]any{"id": 1, "name": "a"})
//
// Failures are Errors: one ValidationError per mismatch, each carrying the
// Context path from the root value down to the failing position.
package dsl
