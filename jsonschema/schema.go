package jsonschema

import (
	"bytes"
	"fmt"
	"slices"

	json "github.com/goccy/go-json"
)

// Schema is a JSON Schema document. When Bool is set the schema is the literal
// true (anything matches) or false (nothing matches) and every other field is
// ignored.
type Schema struct {
	Bool *bool

	// Core
	Type        string
	Format      string
	Description string
	Default     any
	// Const is unset when nil.
	Const any
	Enum  []any

	// Object
	Properties           map[string]*Schema
	Required             []string
	PropertyNames        *Schema
	AdditionalProperties *Schema
	MinProperties        *int
	MaxProperties        *int

	// Array. TupleItems takes precedence over Items and is rendered as a
	// positional "items" list.
	Items      *Schema
	TupleItems []*Schema
	MinItems   *int
	MaxItems   *int

	// Composition
	AnyOf []*Schema
	AllOf []*Schema
}

// True returns the schema that accepts every value.
func True() *Schema { b := true; return &Schema{Bool: &b} }

// False returns the schema that rejects every value.
func False() *Schema { b := false; return &Schema{Bool: &b} }

// IsBool reports whether s is in boolean form.
func (s *Schema) IsBool() bool { return s != nil && s.Bool != nil }

// Clone returns a deep copy of s.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	out := *s
	if s.Bool != nil {
		b := *s.Bool
		out.Bool = &b
	}
	out.Enum = slices.Clone(s.Enum)
	out.Required = slices.Clone(s.Required)
	if s.Properties != nil {
		out.Properties = make(map[string]*Schema, len(s.Properties))
		for k, v := range s.Properties {
			out.Properties[k] = v.Clone()
		}
	}
	out.PropertyNames = s.PropertyNames.Clone()
	out.AdditionalProperties = s.AdditionalProperties.Clone()
	out.MinProperties = cloneInt(s.MinProperties)
	out.MaxProperties = cloneInt(s.MaxProperties)
	out.Items = s.Items.Clone()
	out.TupleItems = cloneAll(s.TupleItems)
	out.MinItems = cloneInt(s.MinItems)
	out.MaxItems = cloneInt(s.MaxItems)
	out.AnyOf = cloneAll(s.AnyOf)
	out.AllOf = cloneAll(s.AllOf)
	return &out
}

func cloneAll(in []*Schema) []*Schema {
	if in == nil {
		return nil
	}
	out := make([]*Schema, len(in))
	for i, s := range in {
		out[i] = s.Clone()
	}
	return out
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func intPtr(n int) *int { return &n }

// wire is the JSON layout of the object form. Field order is the output order.
type wire struct {
	Type                 string             `json:"type,omitempty"`
	Format               string             `json:"format,omitempty"`
	Const                json.RawMessage    `json:"const,omitempty"`
	Enum                 []any              `json:"enum,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	PropertyNames        *Schema            `json:"propertyNames,omitempty"`
	AdditionalProperties *Schema            `json:"additionalProperties,omitempty"`
	MinProperties        *int               `json:"minProperties,omitempty"`
	MaxProperties        *int               `json:"maxProperties,omitempty"`
	Items                json.RawMessage    `json:"items,omitempty"`
	MinItems             *int               `json:"minItems,omitempty"`
	MaxItems             *int               `json:"maxItems,omitempty"`
	AnyOf                []*Schema          `json:"anyOf,omitempty"`
	AllOf                []*Schema          `json:"allOf,omitempty"`
	Default              json.RawMessage    `json:"default,omitempty"`
	Description          string             `json:"description,omitempty"`
}

// rawValue marshals v, leaving nil unset. false, 0 and "" are kept.
func rawValue(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

// MarshalJSON renders the boolean form as a bare true/false.
func (s *Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("true"), nil
	}
	if s.Bool != nil {
		return json.Marshal(*s.Bool)
	}
	w := wire{
		Type:                 s.Type,
		Format:               s.Format,
		Enum:                 s.Enum,
		Properties:           s.Properties,
		Required:             s.Required,
		PropertyNames:        s.PropertyNames,
		AdditionalProperties: s.AdditionalProperties,
		MinProperties:        s.MinProperties,
		MaxProperties:        s.MaxProperties,
		MinItems:             s.MinItems,
		MaxItems:             s.MaxItems,
		AnyOf:                s.AnyOf,
		AllOf:                s.AllOf,
		Description:          s.Description,
	}
	var err error
	if w.Const, err = rawValue(s.Const); err != nil {
		return nil, err
	}
	if w.Default, err = rawValue(s.Default); err != nil {
		return nil, err
	}
	switch {
	case s.TupleItems != nil:
		w.Items, err = json.Marshal(s.TupleItems)
	case s.Items != nil:
		w.Items, err = json.Marshal(s.Items)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// UnmarshalJSON accepts both forms. Keywords this type does not model are
// dropped.
func (s *Schema) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "true":
		*s = *True()
		return nil
	case "false":
		*s = *False()
		return nil
	}
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("jsonschema: %w", err)
	}
	*s = Schema{
		Type:                 w.Type,
		Format:               w.Format,
		Description:          w.Description,
		Enum:                 w.Enum,
		Properties:           w.Properties,
		Required:             w.Required,
		PropertyNames:        w.PropertyNames,
		AdditionalProperties: w.AdditionalProperties,
		MinProperties:        w.MinProperties,
		MaxProperties:        w.MaxProperties,
		MinItems:             w.MinItems,
		MaxItems:             w.MaxItems,
		AnyOf:                w.AnyOf,
		AllOf:                w.AllOf,
	}
	if len(w.Const) > 0 {
		if err := json.Unmarshal(w.Const, &s.Const); err != nil {
			return fmt.Errorf("jsonschema: const: %w", err)
		}
	}
	if len(w.Default) > 0 {
		if err := json.Unmarshal(w.Default, &s.Default); err != nil {
			return fmt.Errorf("jsonschema: default: %w", err)
		}
	}
	items := bytes.TrimSpace(w.Items)
	switch {
	case len(items) == 0 || string(items) == "null":
	case items[0] == '[':
		if err := json.Unmarshal(items, &s.TupleItems); err != nil {
			return fmt.Errorf("jsonschema: items: %w", err)
		}
	default:
		s.Items = new(Schema)
		if err := json.Unmarshal(items, s.Items); err != nil {
			return fmt.Errorf("jsonschema: items: %w", err)
		}
	}
	return nil
}
