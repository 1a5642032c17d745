package jsonschema

import (
	"reflect"

	"github.com/reoring/skema/codec"
	"github.com/reoring/skema/dsl"
)

// Override replaces the schema of selected validators. A nil result means
// "no override" and lets the normal rules run. topLevel is the flag given to
// Transform, passed unchanged at every depth.
type Override func(t dsl.Type, topLevel bool) *Schema

// Fallback produces the schema for validators no rule can describe.
type Fallback func(t dsl.Type) *Schema

// Config carries the caller's hooks through one traversal.
type Config struct {
	Override Override
	// Fallback defaults to DefaultFallback.
	Fallback Fallback
	// Known maps untagged validators (dsl.NewType, codecs) to their schema by
	// identity. Entries win over the built-in table.
	Known map[dsl.Type]*Schema
}

// DefaultFallback describes t by name only, so any value matches.
func DefaultFallback(t dsl.Type) *Schema {
	return &Schema{Description: t.Name()}
}

var builtins = map[dsl.Type]*Schema{
	// TODO: add a pattern once Schema models the keyword.
	codec.DateFromISOString(): {Type: "string", Description: "Timestamp in ISO format."},
	codec.NumberFromString():  {Type: "string", Description: "Number in string format."},
	codec.IntFromString():     {Type: "string", Description: "Integer in string format."},
	codec.BooleanFromString(): {Type: "string", Enum: []any{"true", "false"}, Description: "Boolean in string format."},
}

// Transform describes t as a JSON Schema.
//
// When topLevel is set, an outermost union that contains the undefined
// validator is described without that branch, since optionality is expressed
// by the surrounding document rather than the schema. Transform never fails:
// anything it cannot describe goes to cfg.Fallback.
func Transform(t dsl.Type, topLevel bool, cfg Config) *Schema {
	if cfg.Fallback == nil {
		cfg.Fallback = DefaultFallback
	}
	tr := &transformer{cfg: cfg, topLevel: topLevel}
	return tr.transform(t, true)
}

type transformer struct {
	cfg      Config
	topLevel bool
}

func (tr *transformer) transform(t dsl.Type, outermost bool) *Schema {
	if tr.cfg.Override != nil {
		if s := tr.cfg.Override(t, tr.topLevel); s != nil {
			return s.Clone()
		}
	}
	switch t.(type) {
	case *dsl.CustomType, *dsl.InstanceType:
		if s := tr.known(t); s != nil {
			return s
		}
	default:
		if s := tr.tagged(t, outermost); s != nil {
			if !s.IsBool() && s.Description == "" {
				s.Description = t.Name()
			}
			return s
		}
	}
	if s := tr.cfg.Fallback(t); s != nil {
		return s.Clone()
	}
	return DefaultFallback(t)
}

func (tr *transformer) inner(t dsl.Type) *Schema { return tr.transform(t, false) }

func (tr *transformer) known(t dsl.Type) *Schema {
	if s, ok := tr.cfg.Known[t]; ok && s != nil {
		return s.Clone()
	}
	if s, ok := builtins[t]; ok {
		return s.Clone()
	}
	return nil
}

// tagged dispatches on the validator's shape. Recursive and function shapes
// return nil.
func (tr *transformer) tagged(t dsl.Type, outermost bool) *Schema {
	switch t := t.(type) {
	case *dsl.NullType, *dsl.UndefinedType, *dsl.VoidType:
		return &Schema{Type: "null"}
	case *dsl.StringType:
		return &Schema{Type: "string"}
	case *dsl.NumberType:
		return &Schema{Type: "number"}
	case *dsl.BooleanType:
		return &Schema{Type: "boolean"}
	case *dsl.UnknownArrayType:
		return &Schema{Type: "array"}
	case *dsl.UnknownRecordType, *dsl.ObjectType:
		return &Schema{Type: "object"}
	case *dsl.AnyType, *dsl.UnknownType:
		return True()
	case *dsl.NeverType:
		return False()
	case *dsl.LiteralType:
		return &Schema{Type: literalType(t.Value), Const: t.Value}
	case *dsl.KeyofType:
		return keyof(t.Keys)
	case *dsl.RefinementType:
		return tr.inner(t.Type)
	case *dsl.ReadonlyType:
		return tr.inner(t.Type)
	case *dsl.ArrayType:
		return &Schema{Type: "array", Items: tr.inner(t.Type)}
	case *dsl.ReadonlyArrayType:
		return &Schema{Type: "array", Items: tr.inner(t.Type)}
	case *dsl.InterfaceType:
		return tr.object(t.Fields, true)
	case *dsl.PartialType:
		return tr.object(t.Fields, false)
	case *dsl.DictionaryType:
		return &Schema{
			Type:                 "object",
			PropertyNames:        tr.inner(t.Domain),
			AdditionalProperties: tr.inner(t.Codomain),
		}
	case *dsl.UnionType:
		return tr.union(t, outermost)
	case *dsl.IntersectionType:
		return withCommonType(false, tr.all(t.Types))
	case *dsl.TupleType:
		n := len(t.Types)
		return &Schema{
			Type:       "array",
			MinItems:   intPtr(n),
			MaxItems:   intPtr(n),
			TupleItems: tr.all(t.Types),
		}
	case *dsl.ExactType:
		s := tr.inner(t.Type)
		if !s.IsBool() && s.Type == "object" && s.Properties != nil {
			s.MinProperties = intPtr(len(s.Required))
			s.MaxProperties = intPtr(len(s.Properties))
		}
		return s
	case *dsl.PipeType:
		s := tr.inner(t.Source)
		if !s.IsBool() {
			s.Description = t.Name()
		}
		return s
	}
	return nil
}

func (tr *transformer) all(ts []dsl.Type) []*Schema {
	out := make([]*Schema, len(ts))
	for i, t := range ts {
		out[i] = tr.inner(t)
	}
	return out
}

func (tr *transformer) object(fields []dsl.Field, required bool) *Schema {
	s := &Schema{Type: "object", Properties: make(map[string]*Schema, len(fields))}
	for _, f := range fields {
		s.Properties[f.Key] = tr.inner(f.Type)
		if required {
			s.Required = append(s.Required, f.Key)
		}
	}
	return s
}

func (tr *transformer) union(t *dsl.UnionType, outermost bool) *Schema {
	branches := flatten(t.Types, nil)
	if outermost && tr.topLevel {
		defined := make([]dsl.Type, 0, len(branches))
		for _, b := range branches {
			if _, undef := b.(*dsl.UndefinedType); !undef {
				defined = append(defined, b)
			}
		}
		switch {
		case len(defined) == len(branches) || len(defined) == 0:
		case len(defined) == 1:
			return tr.inner(defined[0])
		default:
			branches = defined
		}
	}
	return compressEnums(withCommonType(true, tr.all(branches)))
}

// flatten expands nested unions depth first.
func flatten(ts []dsl.Type, into []dsl.Type) []dsl.Type {
	for _, t := range ts {
		if u, ok := t.(*dsl.UnionType); ok {
			into = flatten(u.Types, into)
			continue
		}
		into = append(into, t)
	}
	return into
}

// withCommonType builds anyOf (or allOf) over schemas and hoists "type" when
// every branch declares the same one.
func withCommonType(anyOf bool, schemas []*Schema) *Schema {
	s := &Schema{}
	if anyOf {
		s.AnyOf = schemas
	} else {
		s.AllOf = schemas
	}
	common := ""
	for i, b := range schemas {
		typ := ""
		if !b.IsBool() {
			typ = b.Type
		}
		if typ == "" || (i > 0 && typ != common) {
			return s
		}
		common = typ
	}
	s.Type = common
	return s
}

// compressEnums folds a union whose branches are all const/enum values of one
// hoisted type into one enum. Values keep first-seen order and duplicates are
// dropped.
func compressEnums(s *Schema) *Schema {
	if len(s.AnyOf) == 0 || s.Type == "" {
		return s
	}
	var values []any
	for _, b := range s.AnyOf {
		if !onlyValues(b) {
			return s
		}
		if b.Const != nil {
			values = appendUnique(values, b.Const)
		}
		for _, v := range b.Enum {
			values = appendUnique(values, v)
		}
	}
	return &Schema{Type: s.Type, Enum: values}
}

// onlyValues reports whether b lists values and carries nothing but a type
// and description besides.
func onlyValues(b *Schema) bool {
	if b.IsBool() || (b.Const == nil && len(b.Enum) == 0) {
		return false
	}
	rest := *b
	rest.Type, rest.Description, rest.Const, rest.Enum = "", "", nil, nil
	return reflect.DeepEqual(rest, Schema{})
}

func appendUnique(values []any, v any) []any {
	for _, seen := range values {
		if reflect.DeepEqual(seen, v) {
			return values
		}
	}
	return append(values, v)
}

func literalType(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case nil:
		return "null"
	}
	return "number"
}

func keyof(keys []string) *Schema {
	switch len(keys) {
	case 0:
		return False()
	case 1:
		return &Schema{Type: "string", Const: keys[0]}
	}
	values := make([]any, len(keys))
	for i, k := range keys {
		values[i] = k
	}
	return &Schema{Type: "string", Enum: values}
}
