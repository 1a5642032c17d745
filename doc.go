// Package skema adapts dsl validators to a uniform result contract.
//
// Every validator built by this module returns a ValidationResult whose Kind
// is one of Success, StructuralError, UnsupportedContentType or
// ExceptionError. Structural errors keep the validator's native dsl.Errors and
// render them lazily through HumanReadableMessage.
//
// Layout:
//
//   - dsl: the structural validators
//   - codec: string-to-value codecs (dates, numbers, booleans) and Go type checks
//   - rules: refinements (conditionals, collection rules, validator tags)
//   - backend: header, query, URL parameter and body validators
//   - jsonschema: JSON Schema projection of validators
//   - state: validators over named state properties
//
// Typical usage:
//
//	v := skema.FromDecoder(dsl.Interface(dsl.F("id", dsl.Number())))
//	r := v(map[string]any{"id": "x"})
//	if !r.OK() {
//		log.Println(r.HumanReadableMessage())
//	}
package skema
