package rules

import (
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/reoring/skema/dsl"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Tag narrows t with a go-playground/validator tag such as "email" or
// "min=1,max=64". The tag is checked against the decoded value.
func Tag(t dsl.Type, tag string) *dsl.RefinementType {
	return dsl.Refinement(t, "("+t.Name()+" | "+tag+")", func(v any) bool {
		return validate.Var(v, tag) == nil
	})
}

// Struct narrows t to values whose struct `validate` tags hold. Non-struct
// values pass through to t alone.
func Struct(t dsl.Type) *dsl.RefinementType {
	return dsl.Refinement(t, t.Name(), func(v any) bool {
		rv := reflect.ValueOf(v)
		for rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				return true
			}
			rv = rv.Elem()
		}
		if rv.Kind() != reflect.Struct {
			return true
		}
		return validate.Struct(v) == nil
	})
}
