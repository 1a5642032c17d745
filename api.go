package skema

import (
	"github.com/reoring/skema/dsl"
	"github.com/reoring/skema/i18n"
)

// DataValidator validates an input and reports a uniform result.
type DataValidator[In, Out any] func(input In) ValidationResult[Out]

// EncodeMode selects whether FromEncoder checks its input before encoding.
type EncodeMode int

const (
	// EncodeChecked runs the validator's Is guard before Encode and reports a
	// structural error when it rejects the input.
	EncodeChecked EncodeMode = iota
	// EncodeTrusted skips the guard. Inputs that do not have the decoded shape
	// are encoded anyway, which may produce garbage.
	EncodeTrusted
)

// FromDecoder adapts t into a DataValidator. Successful decodes return the
// decoded value; failures carry t's native errors verbatim.
func FromDecoder(t dsl.Type) DataValidator[any, any] {
	return func(input any) ValidationResult[any] {
		out, errs := dsl.Decode(t, input)
		if len(errs) > 0 {
			return Fail[any](errs)
		}
		return Succeed(out)
	}
}

// FromEncoder adapts t into a DataValidator that converts decoded values into
// their wire form. An Encode error becomes an ExceptionError.
func FromEncoder(t dsl.Type, mode EncodeMode) DataValidator[any, any] {
	return func(input any) ValidationResult[any] {
		if mode == EncodeChecked && !t.Is(input) {
			return Fail[any](dsl.Errors{{
				Value:   input,
				Context: dsl.Context{{Key: "", Type: t, Actual: input}},
				Message: i18n.T(i18n.CodeEncoderPrecondition, nil),
			}})
		}
		out, err := t.Encode(input)
		if err != nil {
			return Exception[any](err)
		}
		return Succeed(out)
	}
}
