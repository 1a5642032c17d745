package jsonschema

import (
	"fmt"

	json "github.com/goccy/go-json"
	invopop "github.com/invopop/jsonschema"

	"github.com/reoring/skema/dsl"
)

// ReflectOverride describes dsl.InstanceType validators (codec.InstanceOf)
// from their Go type. Struct fields follow their json tags and definitions
// are inlined. Other validators are left to the normal rules.
func ReflectOverride() Override {
	r := &invopop.Reflector{
		ExpandedStruct:            true,
		DoNotReference:            true,
		AllowAdditionalProperties: true,
	}
	return func(t dsl.Type, _ bool) *Schema {
		it, ok := t.(*dsl.InstanceType)
		if !ok || it.GoType == nil {
			return nil
		}
		s, err := FromReflected(r.ReflectFromType(it.GoType))
		if err != nil {
			return nil
		}
		if s.Description == "" {
			s.Description = it.Name()
		}
		return s
	}
}

// FromReflected converts an invopop schema into a Schema. Keywords Schema does
// not model are dropped.
func FromReflected(in *invopop.Schema) (*Schema, error) {
	b, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: marshal reflected schema: %w", err)
	}
	var s Schema
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
