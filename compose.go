package skema

import (
	"fmt"

	"github.com/reoring/skema/dsl"
)

// Then feeds the output of first into second. The first non-successful result
// is returned as is.
func Then[A, B, C any](first DataValidator[A, B], second DataValidator[B, C]) DataValidator[A, C] {
	return func(input A) ValidationResult[C] {
		r := first(input)
		if !r.OK() {
			return Recast[C](r)
		}
		return second(r.Data)
	}
}

// As narrows the output of v to T. A successful result holding a value of
// another type becomes an ExceptionError.
func As[T, In any](v DataValidator[In, any]) DataValidator[In, T] {
	return func(input In) ValidationResult[T] {
		r := v(input)
		if !r.OK() {
			return Recast[T](r)
		}
		data, ok := r.Data.(T)
		if !ok {
			var zero T
			return Exception[T](fmt.Errorf("skema: validated value has type %T, want %T", r.Data, zero))
		}
		return Succeed(data)
	}
}

// ErrorResult builds a structural error carrying only a message.
func ErrorResult[T any](message string) ValidationResult[T] {
	return Fail[T](dsl.Errors{{Value: dsl.Undefined, Message: message}})
}

// ExceptionAsValidationError turns an error raised while handling input into a
// structural error about that input. Its message is err's text.
func ExceptionAsValidationError[T any](input any, err error) ValidationResult[T] {
	return Fail[T](dsl.Errors{{Value: input, Message: err.Error()}})
}
