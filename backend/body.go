package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/chainguard-dev/clog"
	json "github.com/goccy/go-json"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"golang.org/x/text/encoding/htmlindex"

	skema "github.com/reoring/skema"
	"github.com/reoring/skema/dsl"
)

const tracerName = "github.com/reoring/skema/backend"

// ErrBodyTooLarge is returned when a request body exceeds WithMaxBytes.
var ErrBodyTooLarge = errors.New("backend: request body too large")

// BodyInput is the raw request body together with its declared content type.
type BodyInput struct {
	ContentType string
	Input       io.Reader
}

// RequestBodySpec validates request bodies. Validator returns a Go error only
// when reading the body fails or ctx is done; every data problem, including an
// unknown charset, is a result kind. Alongside a Go error the result is an
// ExceptionError carrying the same error.
type RequestBodySpec struct {
	Validator func(ctx context.Context, in BodyInput) (skema.ValidationResult[any], error)
	// Contents maps the declared content type to the decoder.
	Contents map[string]dsl.Type
}

// ResponseOutput is a serialized response body.
type ResponseOutput struct {
	ContentType string
	Output      string
}

// ResponseBodySpec validates and serializes response bodies.
type ResponseBodySpec struct {
	Validator func(output any) skema.ValidationResult[ResponseOutput]
	// Contents maps the declared content type to the encoder.
	Contents map[string]dsl.Type
}

// RequestBody builds a JSON request-body validator around decoder.
//
// The content type must start with the declared one; an empty content type is
// accepted unless WithStrictContentType is set. An empty body decodes as
// dsl.Undefined. Malformed JSON is an ExceptionError.
func RequestBody(decoder dsl.Type, opts ...BodyOption) RequestBodySpec {
	cfg := newBodyConfig(opts)
	validate := skema.FromDecoder(decoder)
	observe := func(r skema.ValidationResult[any]) skema.ValidationResult[any] {
		if cfg.observer != nil {
			cfg.observer.ObserveResult("body", r.Kind)
		}
		return r
	}
	return RequestBodySpec{
		Contents: map[string]dsl.Type{cfg.contentType: decoder},
		Validator: func(ctx context.Context, in BodyInput) (skema.ValidationResult[any], error) {
			ctx, span := otel.Tracer(tracerName).Start(ctx, "skema/backend.RequestBody",
				oteltrace.WithAttributes(attribute.String("content_type", in.ContentType)))
			defer span.End()
			log := clog.FromContext(ctx)

			if err := ctx.Err(); err != nil {
				return skema.Exception[any](err), err
			}
			if !strings.HasPrefix(in.ContentType, cfg.contentType) && (cfg.strict || in.ContentType != "") {
				log.Debug("rejecting request body content type", "content_type", in.ContentType, "supported", cfg.contentType)
				return observe(skema.Unsupported[any](cfg.contentType)), nil
			}

			raw, err := readBody(in, cfg)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "read failed")
				return skema.Exception[any](err), err
			}
			text, err := decodeCharset(raw, charsetOf(in.ContentType, cfg.encoding))
			if err != nil {
				log.Debug("request body charset rejected", "content_type", in.ContentType, "error", err)
				span.RecordError(err)
				return observe(skema.Exception[any](err)), nil
			}
			if text == "" {
				return observe(validate(dsl.Undefined)), nil
			}
			var parsed any
			if err := json.Unmarshal([]byte(text), &parsed); err != nil {
				log.Debug("request body is not valid JSON", "error", err)
				span.RecordError(err)
				return observe(skema.Exception[any](err)), nil
			}
			return observe(validate(parsed)), nil
		},
	}
}

// readBody reads the whole body, bounded by the configured limit.
func readBody(in BodyInput, cfg bodyConfig) ([]byte, error) {
	if in.Input == nil {
		return nil, nil
	}
	r := in.Input
	if cfg.maxBytes > 0 {
		r = io.LimitReader(r, cfg.maxBytes+1)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("backend: reading request body: %w", err)
	}
	if cfg.maxBytes > 0 && int64(len(b)) > cfg.maxBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, cfg.maxBytes)
	}
	return b, nil
}

// charsetOf returns the charset parameter of contentType, or def.
func charsetOf(contentType, def string) string {
	if _, params, err := mime.ParseMediaType(contentType); err == nil && params["charset"] != "" {
		return params["charset"]
	}
	return def
}

func decodeCharset(b []byte, charset string) (string, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
		return string(b), nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", fmt.Errorf("backend: unsupported body encoding %q: %w", charset, err)
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("backend: decoding %s body: %w", charset, err)
	}
	return string(out), nil
}

// ResponseBody builds a JSON response-body validator around encoder. The
// encoded value is serialized with dsl.Undefined members dropped; an Undefined
// result serializes to empty output. Serialization failures are
// ExceptionErrors.
func ResponseBody(encoder dsl.Type, opts ...BodyOption) ResponseBodySpec {
	cfg := newBodyConfig(opts)
	encode := skema.FromEncoder(encoder, cfg.encodeMode)
	return ResponseBodySpec{
		Contents: map[string]dsl.Type{cfg.contentType: encoder},
		Validator: func(output any) skema.ValidationResult[ResponseOutput] {
			r := serialize(encode(output), cfg.contentType)
			if cfg.observer != nil {
				cfg.observer.ObserveResult("response", r.Kind)
			}
			return r
		},
	}
}

func serialize(r skema.ValidationResult[any], contentType string) (out skema.ValidationResult[ResponseOutput]) {
	if !r.OK() {
		return skema.Recast[ResponseOutput](r)
	}
	if dsl.IsUndefined(r.Data) {
		return skema.Succeed(ResponseOutput{ContentType: contentType})
	}
	defer func() {
		if p := recover(); p != nil {
			out = skema.Exception[ResponseOutput](fmt.Errorf("backend: serializing response body: %v", p))
		}
	}()
	data, err := dsl.StripUndefined(r.Data)
	if err != nil {
		return skema.Exception[ResponseOutput](fmt.Errorf("backend: serializing response body: %w", err))
	}
	b, err := json.Marshal(data)
	if err != nil {
		return skema.Exception[ResponseOutput](err)
	}
	return skema.Succeed(ResponseOutput{ContentType: contentType, Output: string(b)})
}
