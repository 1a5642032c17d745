package jsonschema

import (
	"slices"

	"github.com/reoring/skema/dsl"
)

// Transformation turns one validator into a schema.
type Transformation func(t dsl.Type, topLevel bool) *Schema

// Functionality bundles the transformations a documentation generator needs
// for one endpoint surface: string-valued parameters and one body
// transformation per content type.
type Functionality struct {
	cfg          Config
	contentTypes []string

	Decoders map[string]Transformation
	Encoders map[string]Transformation
}

// NewFunctionality returns the transformations for contentTypes. Every
// transformation shares cfg.
func NewFunctionality(contentTypes []string, cfg Config) *Functionality {
	f := &Functionality{
		cfg:          cfg,
		contentTypes: slices.Clone(contentTypes),
		Decoders:     make(map[string]Transformation, len(contentTypes)),
		Encoders:     make(map[string]Transformation, len(contentTypes)),
	}
	for _, ct := range contentTypes {
		f.Decoders[ct] = f.transform
		f.Encoders[ct] = f.transform
	}
	return f
}

func (f *Functionality) transform(t dsl.Type, topLevel bool) *Schema {
	return Transform(t, topLevel, f.cfg)
}

// ContentTypes returns the content types in the order given.
func (f *Functionality) ContentTypes() []string { return slices.Clone(f.contentTypes) }

// StringDecoder describes a header, query or URL parameter decoder.
func (f *Functionality) StringDecoder(t dsl.Type, topLevel bool) *Schema {
	return f.transform(t, topLevel)
}

// StringEncoder describes a response header encoder.
func (f *Functionality) StringEncoder(t dsl.Type, topLevel bool) *Schema {
	return f.transform(t, topLevel)
}

// UndefinedPossibility tells whether a validator admits the absent value.
type UndefinedPossibility int

const (
	// UndefinedNever means the value must be present.
	UndefinedNever UndefinedPossibility = iota
	// UndefinedMaybe means the value may be present or absent.
	UndefinedMaybe
	// UndefinedAlways means the value is always absent.
	UndefinedAlways
)

// Optional reports whether absence is allowed.
func (p UndefinedPossibility) Optional() bool { return p != UndefinedNever }

func (p UndefinedPossibility) String() string {
	switch p {
	case UndefinedMaybe:
		return "maybe"
	case UndefinedAlways:
		return "always"
	}
	return "never"
}

// UndefinedPossibilityOf classifies t by probing it with dsl.Undefined.
func UndefinedPossibilityOf(t dsl.Type) UndefinedPossibility {
	if !t.Is(dsl.Undefined) {
		return UndefinedNever
	}
	if _, ok := t.(*dsl.UndefinedType); ok {
		return UndefinedAlways
	}
	return UndefinedMaybe
}

// UndefinedPossibility is UndefinedPossibilityOf, exposed next to the
// transformations that use it.
func (f *Functionality) UndefinedPossibility(t dsl.Type) UndefinedPossibility {
	return UndefinedPossibilityOf(t)
}
