package backend

import skema "github.com/reoring/skema"

// ContentTypeJSON is the default declared content type of body validators.
const ContentTypeJSON = "application/json"

type bodyConfig struct {
	contentType string
	strict      bool
	encoding    string
	maxBytes    int64
	encodeMode  skema.EncodeMode
	observer    skema.Observer
}

func newBodyConfig(opts []BodyOption) bodyConfig {
	cfg := bodyConfig{
		contentType: ContentTypeJSON,
		encoding:    "utf-8",
		encodeMode:  skema.EncodeChecked,
	}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// BodyOption configures RequestBody and ResponseBody.
type BodyOption func(*bodyConfig)

// WithContentType sets the declared content type.
func WithContentType(ct string) BodyOption {
	return func(c *bodyConfig) { c.contentType = ct }
}

// WithStrictContentType rejects requests that carry no content type.
func WithStrictContentType() BodyOption {
	return func(c *bodyConfig) { c.strict = true }
}

// WithEncoding sets the text encoding used when the content type names no
// charset. Names follow the WHATWG encoding labels ("utf-8", "latin1", ...).
func WithEncoding(name string) BodyOption {
	return func(c *bodyConfig) { c.encoding = name }
}

// WithMaxBytes bounds the request body size. Zero means unbounded.
func WithMaxBytes(n int64) BodyOption {
	return func(c *bodyConfig) { c.maxBytes = n }
}

// WithEncodeMode selects whether ResponseBody checks outputs before encoding.
func WithEncodeMode(m skema.EncodeMode) BodyOption {
	return func(c *bodyConfig) { c.encodeMode = m }
}

// WithObserver reports the kind of every body validation result to o.
func WithObserver(o skema.Observer) BodyOption {
	return func(c *bodyConfig) { c.observer = o }
}
