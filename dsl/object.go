package dsl

import (
	"fmt"
	"strings"
)

// Field is one named property of an object shape.
type Field struct {
	Key  string
	Type Type
}

// F is shorthand for a Field literal.
func F(key string, t Type) Field { return Field{Key: key, Type: t} }

func fieldsName(fields []Field) string {
	if len(fields) == 0 {
		return "{}"
	}
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Key + ": " + f.Type.Name()
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func lookup(m map[string]any, k string) any {
	if v, ok := m[k]; ok {
		return v
	}
	return Undefined
}

// InterfaceType is an object whose fields are all required. Unknown keys are
// kept on decode.
type InterfaceType struct {
	shape
	Fields []Field
}

// Interface returns an object validator with required fields, in order.
func Interface(fields ...Field) *InterfaceType {
	return &InterfaceType{shape: shape{fieldsName(fields)}, Fields: append([]Field(nil), fields...)}
}

func (*InterfaceType) Kind() Kind      { return KindInterface }
func (t *InterfaceType) Is(v any) bool { return t.is(v, 0) }

func (t *InterfaceType) is(v any, depth int) bool {
	m, ok := asRecord(v)
	if !ok {
		return false
	}
	for _, f := range t.Fields {
		if !isAt(f.Type, lookup(m, f.Key), depth+1) {
			return false
		}
	}
	return true
}

func (t *InterfaceType) Validate(v any, c Context) (any, Errors) {
	m, ok := asRecord(v)
	if !ok {
		return nil, Failure(v, c, "")
	}
	return validateFields(t.Fields, m, c, false)
}

func (t *InterfaceType) Encode(v any) (any, error) {
	m, ok := asRecord(v)
	if !ok {
		return nil, &EncodeError{Type: t, Value: v}
	}
	return encodeFields(t.Fields, m)
}

// PartialType is an object whose fields may all be absent.
type PartialType struct {
	shape
	Fields []Field
}

// Partial returns an object validator with optional fields, in order.
func Partial(fields ...Field) *PartialType {
	return &PartialType{shape: shape{"Partial<" + fieldsName(fields) + ">"}, Fields: append([]Field(nil), fields...)}
}

func (*PartialType) Kind() Kind      { return KindPartial }
func (t *PartialType) Is(v any) bool { return t.is(v, 0) }

func (t *PartialType) is(v any, depth int) bool {
	m, ok := asRecord(v)
	if !ok {
		return false
	}
	for _, f := range t.Fields {
		fv := lookup(m, f.Key)
		if IsUndefined(fv) {
			continue
		}
		if !isAt(f.Type, fv, depth+1) {
			return false
		}
	}
	return true
}

func (t *PartialType) Validate(v any, c Context) (any, Errors) {
	m, ok := asRecord(v)
	if !ok {
		return nil, Failure(v, c, "")
	}
	return validateFields(t.Fields, m, c, true)
}

func (t *PartialType) Encode(v any) (any, error) {
	m, ok := asRecord(v)
	if !ok {
		return nil, &EncodeError{Type: t, Value: v}
	}
	return encodeFields(t.Fields, m)
}

func validateFields(fields []Field, m map[string]any, c Context, optional bool) (any, Errors) {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	var errs Errors
	for _, f := range fields {
		fv, present := m[f.Key]
		if !present {
			fv = Undefined
		}
		if optional && IsUndefined(fv) {
			continue
		}
		got, ferrs := f.Type.Validate(fv, c.Append(f.Key, f.Type, fv))
		if len(ferrs) > 0 {
			errs = append(errs, ferrs...)
			continue
		}
		if !present && IsUndefined(got) {
			continue
		}
		out[f.Key] = got
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func encodeFields(fields []Field, m map[string]any) (any, error) {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	for _, f := range fields {
		fv, ok := m[f.Key]
		if !ok || IsUndefined(fv) {
			continue
		}
		enc, err := f.Type.Encode(fv)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Key, err)
		}
		out[f.Key] = enc
	}
	return out, nil
}

// DictionaryType is a string-keyed map whose keys and values are validated by
// Domain and Codomain.
type DictionaryType struct {
	shape
	Domain   Type
	Codomain Type
}

// Record returns a map validator. When domain is a Keyof, every one of its keys
// is required.
func Record(domain, codomain Type) *DictionaryType {
	return &DictionaryType{
		shape:    shape{"{ [K in " + domain.Name() + "]: " + codomain.Name() + " }"},
		Domain:   domain,
		Codomain: codomain,
	}
}

func (*DictionaryType) Kind() Kind      { return KindDictionary }
func (t *DictionaryType) Is(v any) bool { return t.is(v, 0) }

func (t *DictionaryType) enumerated() ([]string, bool) {
	if k, ok := t.Domain.(*KeyofType); ok {
		return k.Keys, true
	}
	return nil, false
}

func (t *DictionaryType) is(v any, depth int) bool {
	m, ok := asRecord(v)
	if !ok {
		return false
	}
	if keys, ok := t.enumerated(); ok {
		for _, k := range keys {
			if !isAt(t.Codomain, lookup(m, k), depth+1) {
				return false
			}
		}
		return true
	}
	for k, val := range m {
		if !isAt(t.Domain, k, depth+1) || !isAt(t.Codomain, val, depth+1) {
			return false
		}
	}
	return true
}

func (t *DictionaryType) Validate(v any, c Context) (any, Errors) {
	m, ok := asRecord(v)
	if !ok {
		return nil, Failure(v, c, "")
	}
	if keys, ok := t.enumerated(); ok {
		fields := make([]Field, len(keys))
		for i, k := range keys {
			fields[i] = Field{Key: k, Type: t.Codomain}
		}
		return validateFields(fields, m, c, false)
	}
	out := make(map[string]any, len(m))
	var errs Errors
	for _, k := range sortedKeys(m) {
		val := m[k]
		dk, kerrs := t.Domain.Validate(k, c.Append(k, t.Domain, k))
		if len(kerrs) > 0 {
			errs = append(errs, kerrs...)
		}
		dv, verrs := t.Codomain.Validate(val, c.Append(k, t.Codomain, val))
		if len(verrs) > 0 {
			errs = append(errs, verrs...)
		}
		if len(kerrs) > 0 || len(verrs) > 0 {
			continue
		}
		key, ok := dk.(string)
		if !ok {
			key = k
		}
		out[key] = dv
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func (t *DictionaryType) Encode(v any) (any, error) {
	m, ok := asRecord(v)
	if !ok {
		return nil, &EncodeError{Type: t, Value: v}
	}
	out := make(map[string]any, len(m))
	for k, val := range m {
		if IsUndefined(val) {
			continue
		}
		enc, err := t.Codomain.Encode(val)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		out[k] = enc
	}
	return out, nil
}

// ExactType strips keys that the wrapped object shape does not declare.
type ExactType struct {
	shape
	Type Type
	keys map[string]struct{}
}

// Exact seals an object shape. t must be an Interface, Partial, or an
// Intersection, Refinement or Readonly built from them; Exact panics otherwise.
func Exact(t Type) *ExactType {
	fields, ok := propsOf(t)
	if !ok {
		panic(fmt.Sprintf("dsl: Exact requires an object shape, got %s", t.Name()))
	}
	keys := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		keys[f.Key] = struct{}{}
	}
	return &ExactType{shape: shape{exactName(t)}, Type: t, keys: keys}
}

// Strict is Exact(Interface(fields...)).
func Strict(fields ...Field) *ExactType { return Exact(Interface(fields...)) }

func exactName(t Type) string {
	inner := func(name string) string {
		return strings.TrimSuffix(strings.TrimPrefix(name, "{ "), " }")
	}
	switch u := t.(type) {
	case *InterfaceType:
		return "{| " + inner(fieldsName(u.Fields)) + " |}"
	case *PartialType:
		return "Partial<{| " + inner(fieldsName(u.Fields)) + " |}>"
	}
	return "Exact<" + t.Name() + ">"
}

func propsOf(t Type) ([]Field, bool) {
	switch u := t.(type) {
	case *InterfaceType:
		return u.Fields, true
	case *PartialType:
		return u.Fields, true
	case *RefinementType:
		return propsOf(u.Type)
	case *ReadonlyType:
		return propsOf(u.Type)
	case *ExactType:
		return propsOf(u.Type)
	case *IntersectionType:
		var all []Field
		for _, b := range u.Types {
			fs, ok := propsOf(b)
			if !ok {
				return nil, false
			}
			all = append(all, fs...)
		}
		return all, true
	}
	return nil, false
}

func (*ExactType) Kind() Kind      { return KindExact }
func (t *ExactType) Is(v any) bool { return t.is(v, 0) }

func (t *ExactType) is(v any, depth int) bool { return isAt(t.Type, v, depth+1) }

func (t *ExactType) strip(m map[string]any) map[string]any {
	out := make(map[string]any, len(t.keys))
	for k, v := range m {
		if _, ok := t.keys[k]; ok {
			out[k] = v
		}
	}
	return out
}

func (t *ExactType) Validate(v any, c Context) (any, Errors) {
	m, ok := asRecord(v)
	if !ok {
		return nil, Failure(v, c, "")
	}
	got, errs := t.Type.Validate(m, c)
	if len(errs) > 0 {
		return nil, errs
	}
	if gm, ok := got.(map[string]any); ok {
		return t.strip(gm), nil
	}
	return got, nil
}

func (t *ExactType) Encode(v any) (any, error) {
	m, ok := asRecord(v)
	if !ok {
		return nil, &EncodeError{Type: t, Value: v}
	}
	return t.Type.Encode(t.strip(m))
}
