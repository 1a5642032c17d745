package skema

import (
	"errors"
	"strings"

	"github.com/reoring/skema/dsl"
	"github.com/reoring/skema/i18n"
)

// Kind classifies a ValidationResult.
type Kind int

const (
	// Success carries the validated data.
	Success Kind = iota
	// StructuralError carries the validator's native error list.
	StructuralError
	// UnsupportedContentType lists the content types the validator accepts.
	UnsupportedContentType
	// ExceptionError carries an error raised while parsing or serializing.
	ExceptionError
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "none"
	case StructuralError:
		return "error"
	case UnsupportedContentType:
		return "unsupported-content-type"
	case ExceptionError:
		return "exception"
	}
	return "unknown"
}

// ResultError is the error form of a non-successful ValidationResult.
type ResultError struct {
	Kind                  Kind
	Errors                dsl.Errors
	SupportedContentTypes []string
	Cause                 error
	message               string
}

func (e *ResultError) Error() string {
	switch e.Kind {
	case StructuralError:
		return e.message
	case UnsupportedContentType:
		return i18n.T(i18n.CodeUnsupportedMediaType, map[string]string{
			"supported": strings.Join(e.SupportedContentTypes, ", "),
		})
	case ExceptionError:
		if e.Cause != nil {
			return e.Cause.Error()
		}
	}
	return e.Kind.String()
}

// Unwrap exposes the native error list or the exception.
func (e *ResultError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	if len(e.Errors) > 0 {
		return e.Errors
	}
	return nil
}

// AsResultError extracts a *ResultError from err using errors.As.
func AsResultError(err error) (*ResultError, bool) {
	var re *ResultError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
