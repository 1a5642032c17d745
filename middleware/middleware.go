// Package middleware connects endpoint validators to net/http handlers.
package middleware

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"github.com/chainguard-dev/clog"

	skema "github.com/reoring/skema"
	"github.com/reoring/skema/backend"
)

// Sources of a Failure.
const (
	SourceHeader = "header"
	SourceQuery  = "query"
	SourceURL    = "url"
	SourceBody   = "body"
)

// Endpoint groups the validators of one route. Nil parts are skipped.
type Endpoint struct {
	Headers *backend.StringValidatorSpec
	Query   *backend.StringValidatorSpec
	URL     *backend.URLParametersSpec
	Body    *backend.RequestBodySpec
}

// Failure is one part of the request that did not validate.
type Failure struct {
	Source string
	// Name is the header, query or path parameter name; empty for the body.
	Name   string
	Result skema.ValidationResult[any]
}

// Validated holds the outcome of validating one request.
type Validated struct {
	Headers map[string]any
	Query   map[string]any
	URL     map[string]any
	Body    any
	// Failures are ordered by source, then by name.
	Failures []Failure
	// Err is set when the body could not be read.
	Err error
}

// OK reports whether every part validated.
func (v *Validated) OK() bool { return v.Err == nil && len(v.Failures) == 0 }

type ctxKeyValidated struct{}

// ContextWithValidated attaches v to ctx.
func ContextWithValidated(ctx context.Context, v *Validated) context.Context {
	return context.WithValue(ctx, ctxKeyValidated{}, v)
}

// ValidatedFromContext retrieves the Validated stored by Validate.
func ValidatedFromContext(ctx context.Context) (*Validated, bool) {
	v, ok := ctx.Value(ctxKeyValidated{}).(*Validated)
	return v, ok
}

// FailureHandler answers a request that failed validation.
type FailureHandler func(w http.ResponseWriter, r *http.Request, v *Validated)

// Option configures Validate.
type Option func(*options)

type options struct {
	onFailure FailureHandler
}

// WithFailureHandler stops failed requests at h instead of passing them on.
func WithFailureHandler(h FailureHandler) Option {
	return func(o *options) { o.onFailure = h }
}

// Validate checks every request against ep and stores the outcome in the
// request context. Without a failure handler the next handler always runs and
// decides what to do with failures.
func Validate(ep Endpoint, opts ...Option) func(http.Handler) http.Handler {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v := Check(r, ep)
			ctx := ContextWithValidated(r.Context(), v)
			r = r.WithContext(ctx)
			if !v.OK() {
				clog.FromContext(ctx).Debug("request failed validation",
					"method", r.Method, "path", r.URL.Path, "failures", len(v.Failures), "error", v.Err)
				if o.onFailure != nil {
					o.onFailure(w, r, v)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Check validates r against ep. The body, when declared, is read to the end.
func Check(r *http.Request, ep Endpoint) *Validated {
	v := &Validated{}
	if ep.Headers != nil {
		values, failed := ep.Headers.Validate(RawHeaders(r.Header, ep.Headers.Validators))
		v.Headers = values
		v.addFailures(SourceHeader, failed)
	}
	if ep.Query != nil {
		values, failed := ep.Query.Validate(RawQuery(r, ep.Query.Validators))
		v.Query = values
		v.addFailures(SourceQuery, failed)
	}
	if ep.URL != nil {
		values, failed := ep.URL.Validate(RawPathValues(r, ep.URL.Validators))
		v.URL = values
		v.addFailures(SourceURL, failed)
	}
	if ep.Body != nil {
		res, err := ep.Body.Validator(r.Context(), backend.BodyInput{
			ContentType: r.Header.Get("Content-Type"),
			Input:       r.Body,
		})
		switch {
		case err != nil:
			v.Err = err
		case res.OK():
			v.Body = res.Data
		default:
			v.Failures = append(v.Failures, Failure{Source: SourceBody, Result: res})
		}
	}
	return v
}

func (v *Validated) addFailures(source string, failed map[string]skema.ValidationResult[any]) {
	names := make([]string, 0, len(failed))
	for name := range failed {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v.Failures = append(v.Failures, Failure{Source: source, Name: name, Result: failed[name]})
	}
}

// RawHeaders picks the declared headers out of h. Repeated headers are joined
// with ", ". Missing headers are left out, so they validate as absent.
func RawHeaders[V any](h http.Header, declared map[string]V) map[string]any {
	raw := make(map[string]any, len(declared))
	for name := range declared {
		if vals := h.Values(name); len(vals) > 0 {
			raw[name] = strings.Join(vals, ", ")
		}
	}
	return raw
}

// RawQuery picks the declared query parameters out of r. A repeated parameter
// becomes a []any of strings.
func RawQuery[V any](r *http.Request, declared map[string]V) map[string]any {
	q := r.URL.Query()
	raw := make(map[string]any, len(declared))
	for name := range declared {
		switch vals := q[name]; len(vals) {
		case 0:
		case 1:
			raw[name] = vals[0]
		default:
			items := make([]any, len(vals))
			for i, s := range vals {
				items[i] = s
			}
			raw[name] = items
		}
	}
	return raw
}

// RawPathValues picks the declared path parameters matched by the
// http.ServeMux pattern of r. Empty values count as absent.
func RawPathValues[V any](r *http.Request, declared map[string]V) map[string]any {
	raw := make(map[string]any, len(declared))
	for name := range declared {
		if s := r.PathValue(name); s != "" {
			raw[name] = s
		}
	}
	return raw
}

// Issue is the JSON form of a Failure.
type Issue struct {
	Source    string   `json:"source"`
	Name      string   `json:"name,omitempty"`
	Kind      string   `json:"kind"`
	Message   string   `json:"message,omitempty"`
	Supported []string `json:"supported,omitempty"`
}

// ErrorPayload shapes the failures of v for JSON responses.
func ErrorPayload(v *Validated) map[string]any {
	issues := make([]Issue, 0, len(v.Failures)+1)
	for _, f := range v.Failures {
		is := Issue{Source: f.Source, Name: f.Name, Kind: f.Result.Kind.String()}
		switch f.Result.Kind {
		case skema.StructuralError:
			is.Message = f.Result.HumanReadableMessage()
		case skema.UnsupportedContentType:
			is.Supported = f.Result.SupportedContentTypes
		case skema.ExceptionError:
			if f.Result.Exception != nil {
				is.Message = f.Result.Exception.Error()
			}
		}
		issues = append(issues, is)
	}
	if v.Err != nil {
		issues = append(issues, Issue{Source: SourceBody, Kind: skema.ExceptionError.String(), Message: v.Err.Error()})
	}
	return map[string]any{"issues": issues}
}
