package backend

import (
	skema "github.com/reoring/skema"
	"github.com/reoring/skema/dsl"
	"github.com/reoring/skema/i18n"
)

// FieldValidator validates one raw header, query or URL parameter value.
// dsl.Undefined stands for an absent value.
type FieldValidator = skema.DataValidator[any, any]

// FieldMetadata describes one named field.
type FieldMetadata struct {
	// Required is derived once, when the spec is built.
	Required  bool
	Validator dsl.Type
}

// StringValidatorSpec holds the validators and metadata of a set of named
// string fields.
type StringValidatorSpec struct {
	Validators map[string]FieldValidator
	Metadata   map[string]FieldMetadata
}

// StringDecoder builds validators for named incoming string values. A decoder
// is required when it rejects dsl.Undefined. A required field that is absent
// fails with `<itemKind> "<name>" is mandatory.` without invoking the decoder.
func StringDecoder(validation map[string]dsl.Type, itemKind string) StringValidatorSpec {
	spec := StringValidatorSpec{
		Validators: make(map[string]FieldValidator, len(validation)),
		Metadata:   make(map[string]FieldMetadata, len(validation)),
	}
	for name, t := range validation {
		_, errs := dsl.Decode(t, dsl.Undefined)
		required := len(errs) > 0
		spec.Metadata[name] = FieldMetadata{Required: required, Validator: t}
		spec.Validators[name] = mandatory(skema.FromDecoder(t), t, required, itemKind, name)
	}
	return spec
}

// StringEncoder builds validators for named outgoing string values. An encoder
// is optional only when dsl.Undefined passes its Is guard and encodes without
// error.
func StringEncoder(validation map[string]dsl.Type, itemKind string) StringValidatorSpec {
	spec := StringValidatorSpec{
		Validators: make(map[string]FieldValidator, len(validation)),
		Metadata:   make(map[string]FieldMetadata, len(validation)),
	}
	for name, t := range validation {
		required := !acceptsUndefined(t)
		spec.Metadata[name] = FieldMetadata{Required: required, Validator: t}
		spec.Validators[name] = mandatory(skema.FromEncoder(t, skema.EncodeChecked), t, required, itemKind, name)
	}
	return spec
}

func acceptsUndefined(t dsl.Type) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	if !t.Is(dsl.Undefined) {
		return false
	}
	_, err := t.Encode(dsl.Undefined)
	return err == nil
}

// Headers builds validators for request headers.
func Headers(validation map[string]dsl.Type) StringValidatorSpec {
	return StringDecoder(validation, i18n.T(i18n.CodeLabelHeader, nil))
}

// Query builds validators for URL query parameters.
func Query(validation map[string]dsl.Type) StringValidatorSpec {
	return StringDecoder(validation, i18n.T(i18n.CodeLabelQuery, nil))
}

// ResponseHeaders builds validators for response headers.
func ResponseHeaders(validation map[string]dsl.Type) StringValidatorSpec {
	return StringEncoder(validation, i18n.T(i18n.CodeLabelHeader, nil))
}

func mandatory(v FieldValidator, t dsl.Type, required bool, itemKind, name string) FieldValidator {
	if !required {
		return v
	}
	return func(raw any) skema.ValidationResult[any] {
		if dsl.IsUndefined(raw) {
			return MandatoryError(t, itemKind, name)
		}
		return v(raw)
	}
}

// MandatoryError is the structural error reported for an absent required field.
func MandatoryError(t dsl.Type, itemKind, name string) skema.ValidationResult[any] {
	return skema.Fail[any](dsl.Errors{{
		Value:   dsl.Undefined,
		Context: dsl.Context{{Key: "", Type: t, Actual: dsl.Undefined}},
		Message: i18n.T(i18n.CodeMandatory, map[string]string{"label": itemKind, "name": name}),
	}})
}

// Validate runs every validator of s against raw, where a missing key means an
// absent value. It returns the validated values of the successful fields and
// the results of the failed ones; failed is nil when every field passed.
// Absent optional fields are left out of values.
func (s StringValidatorSpec) Validate(raw map[string]any) (values map[string]any, failed map[string]skema.ValidationResult[any]) {
	values = make(map[string]any, len(s.Validators))
	for name, v := range s.Validators {
		in, ok := raw[name]
		if !ok {
			in = dsl.Undefined
		}
		r := v(in)
		if !r.OK() {
			if failed == nil {
				failed = map[string]skema.ValidationResult[any]{}
			}
			failed[name] = r
			continue
		}
		if dsl.IsUndefined(r.Data) {
			continue
		}
		values[name] = r.Data
	}
	return values, failed
}
