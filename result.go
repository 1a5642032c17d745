package skema

import (
	"sync"

	"github.com/reoring/skema/dsl"
)

// ValidationResult is the uniform outcome of every validator in this module.
// Exactly one payload is populated, selected by Kind.
type ValidationResult[T any] struct {
	Kind Kind
	// Data is set for Success.
	Data T
	// ErrorInfo is set for StructuralError, verbatim from the validator.
	ErrorInfo dsl.Errors
	// SupportedContentTypes is set for UnsupportedContentType.
	SupportedContentTypes []string
	// Exception is set for ExceptionError.
	Exception error

	message func() string
}

// Succeed wraps data in a successful result.
func Succeed[T any](data T) ValidationResult[T] {
	return ValidationResult[T]{Kind: Success, Data: data}
}

// Fail builds a structural error. The human-readable message is rendered on
// first request and then reused.
func Fail[T any](errs dsl.Errors) ValidationResult[T] {
	return ValidationResult[T]{
		Kind:      StructuralError,
		ErrorInfo: errs,
		message:   sync.OnceValue(func() string { return HumanReadableMessage(errs) }),
	}
}

// Unsupported builds an UnsupportedContentType result.
func Unsupported[T any](contentTypes ...string) ValidationResult[T] {
	return ValidationResult[T]{Kind: UnsupportedContentType, SupportedContentTypes: contentTypes}
}

// Exception builds an ExceptionError result.
func Exception[T any](err error) ValidationResult[T] {
	return ValidationResult[T]{Kind: ExceptionError, Exception: err}
}

// OK reports whether the result is a success.
func (r ValidationResult[T]) OK() bool { return r.Kind == Success }

// HumanReadableMessage renders the error list of a structural error. It is
// empty for every other kind.
func (r ValidationResult[T]) HumanReadableMessage() string {
	if r.Kind != StructuralError {
		return ""
	}
	if r.message == nil {
		return HumanReadableMessage(r.ErrorInfo)
	}
	return r.message()
}

// Err returns nil for successes and a *ResultError otherwise.
func (r ValidationResult[T]) Err() error {
	switch r.Kind {
	case Success:
		return nil
	case StructuralError:
		return &ResultError{Kind: r.Kind, Errors: r.ErrorInfo, message: r.HumanReadableMessage()}
	case UnsupportedContentType:
		return &ResultError{Kind: r.Kind, SupportedContentTypes: r.SupportedContentTypes}
	default:
		return &ResultError{Kind: r.Kind, Cause: r.Exception}
	}
}

// Recast carries a non-successful result over to another data type.
// Successful results lose their data, so callers convert those themselves.
func Recast[U, T any](r ValidationResult[T]) ValidationResult[U] {
	return ValidationResult[U]{
		Kind:                  r.Kind,
		ErrorInfo:             r.ErrorInfo,
		SupportedContentTypes: r.SupportedContentTypes,
		Exception:             r.Exception,
		message:               r.message,
	}
}
