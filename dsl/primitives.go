package dsl

import (
	"reflect"
	"slices"
	"strings"
)

// checkScalar is the Validate body shared by predicate-only shapes.
func checkScalar(t Type, v any, c Context) (any, Errors) {
	if t.Is(v) {
		return v, nil
	}
	return nil, Failure(v, c, "")
}

func identity(v any) (any, error) { return v, nil }

// NullType accepts JSON null.
type NullType struct{ shape }

var nullType = &NullType{shape{"null"}}

// Null returns the validator for JSON null.
func Null() *NullType { return nullType }

func (*NullType) Kind() Kind                                 { return KindNull }
func (*NullType) Is(v any) bool                              { return v == nil }
func (t *NullType) is(v any, _ int) bool                     { return t.Is(v) }
func (t *NullType) Validate(v any, c Context) (any, Errors) { return checkScalar(t, v, c) }
func (*NullType) Encode(v any) (any, error)                  { return identity(v) }

// UndefinedType accepts only the Undefined marker.
type UndefinedType struct{ shape }

var undefinedType = &UndefinedType{shape{"undefined"}}

// UndefinedT returns the validator for absent values.
func UndefinedT() *UndefinedType { return undefinedType }

func (*UndefinedType) Kind() Kind                                 { return KindUndefined }
func (*UndefinedType) Is(v any) bool                              { return IsUndefined(v) }
func (t *UndefinedType) is(v any, _ int) bool                     { return t.Is(v) }
func (t *UndefinedType) Validate(v any, c Context) (any, Errors) { return checkScalar(t, v, c) }
func (*UndefinedType) Encode(v any) (any, error)                  { return identity(v) }

// VoidType behaves like UndefinedType under a different name.
type VoidType struct{ shape }

var voidType = &VoidType{shape{"void"}}

// Void returns the validator for values that must be absent.
func Void() *VoidType { return voidType }

func (*VoidType) Kind() Kind                                 { return KindVoid }
func (*VoidType) Is(v any) bool                              { return IsUndefined(v) }
func (t *VoidType) is(v any, _ int) bool                     { return t.Is(v) }
func (t *VoidType) Validate(v any, c Context) (any, Errors) { return checkScalar(t, v, c) }
func (*VoidType) Encode(v any) (any, error)                  { return identity(v) }

// UnknownType accepts everything.
type UnknownType struct{ shape }

var unknownType = &UnknownType{shape{"unknown"}}

// Unknown returns the validator that accepts every value.
func Unknown() *UnknownType { return unknownType }

func (*UnknownType) Kind() Kind                               { return KindUnknown }
func (*UnknownType) Is(any) bool                              { return true }
func (*UnknownType) is(any, int) bool                         { return true }
func (*UnknownType) Validate(v any, _ Context) (any, Errors) { return v, nil }
func (*UnknownType) Encode(v any) (any, error)                { return identity(v) }

// AnyType accepts everything.
type AnyType struct{ shape }

var anyType = &AnyType{shape{"any"}}

// Any returns the validator that accepts every value.
func Any() *AnyType { return anyType }

func (*AnyType) Kind() Kind                               { return KindAny }
func (*AnyType) Is(any) bool                              { return true }
func (*AnyType) is(any, int) bool                         { return true }
func (*AnyType) Validate(v any, _ Context) (any, Errors) { return v, nil }
func (*AnyType) Encode(v any) (any, error)                { return identity(v) }

// NeverType rejects everything.
type NeverType struct{ shape }

var neverType = &NeverType{shape{"never"}}

// Never returns the validator that rejects every value.
func Never() *NeverType { return neverType }

func (*NeverType) Kind() Kind                                 { return KindNever }
func (*NeverType) Is(any) bool                                { return false }
func (*NeverType) is(any, int) bool                           { return false }
func (t *NeverType) Validate(v any, c Context) (any, Errors) { return nil, Failure(v, c, "") }
func (t *NeverType) Encode(v any) (any, error) {
	return nil, &EncodeError{Type: t, Value: v}
}

// StringType accepts strings.
type StringType struct{ shape }

var stringType = &StringType{shape{"string"}}

// String returns the string validator.
func String() *StringType { return stringType }

func (*StringType) Kind() Kind { return KindString }
func (*StringType) Is(v any) bool {
	_, ok := v.(string)
	return ok
}
func (t *StringType) is(v any, _ int) bool                     { return t.Is(v) }
func (t *StringType) Validate(v any, c Context) (any, Errors) { return checkScalar(t, v, c) }
func (*StringType) Encode(v any) (any, error)                  { return identity(v) }

// NumberType accepts every Go numeric kind.
type NumberType struct{ shape }

var numberType = &NumberType{shape{"number"}}

// Number returns the number validator.
func Number() *NumberType { return numberType }

func (*NumberType) Kind() Kind                                 { return KindNumber }
func (*NumberType) Is(v any) bool                              { return isNumber(v) }
func (t *NumberType) is(v any, _ int) bool                     { return t.Is(v) }
func (t *NumberType) Validate(v any, c Context) (any, Errors) { return checkScalar(t, v, c) }
func (*NumberType) Encode(v any) (any, error)                  { return identity(v) }

// BooleanType accepts booleans.
type BooleanType struct{ shape }

var booleanType = &BooleanType{shape{"boolean"}}

// Boolean returns the boolean validator.
func Boolean() *BooleanType { return booleanType }

func (*BooleanType) Kind() Kind { return KindBoolean }
func (*BooleanType) Is(v any) bool {
	_, ok := v.(bool)
	return ok
}
func (t *BooleanType) is(v any, _ int) bool                     { return t.Is(v) }
func (t *BooleanType) Validate(v any, c Context) (any, Errors) { return checkScalar(t, v, c) }
func (*BooleanType) Encode(v any) (any, error)                  { return identity(v) }

// FunctionType accepts non-nil Go funcs.
type FunctionType struct{ shape }

var functionType = &FunctionType{shape{"Function"}}

// Function returns the func validator.
func Function() *FunctionType { return functionType }

func (*FunctionType) Kind() Kind { return KindFunction }
func (*FunctionType) Is(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Func && !rv.IsNil()
}
func (t *FunctionType) is(v any, _ int) bool                     { return t.Is(v) }
func (t *FunctionType) Validate(v any, c Context) (any, Errors) { return checkScalar(t, v, c) }
func (*FunctionType) Encode(v any) (any, error)                  { return identity(v) }

// UnknownArrayType accepts any list without looking at its elements.
type UnknownArrayType struct{ shape }

var unknownArrayType = &UnknownArrayType{shape{"UnknownArray"}}

// UnknownArray returns the validator for lists of anything.
func UnknownArray() *UnknownArrayType { return unknownArrayType }

func (*UnknownArrayType) Kind() Kind { return KindUnknownArray }
func (*UnknownArrayType) Is(v any) bool {
	_, ok := asArray(v)
	return ok
}
func (t *UnknownArrayType) is(v any, _ int) bool { return t.Is(v) }
func (t *UnknownArrayType) Validate(v any, c Context) (any, Errors) {
	if a, ok := asArray(v); ok {
		return a, nil
	}
	return nil, Failure(v, c, "")
}
func (*UnknownArrayType) Encode(v any) (any, error) { return identity(v) }

// UnknownRecordType accepts any string-keyed object.
type UnknownRecordType struct{ shape }

var unknownRecordType = &UnknownRecordType{shape{"UnknownRecord"}}

// UnknownRecord returns the validator for string-keyed objects of anything.
func UnknownRecord() *UnknownRecordType { return unknownRecordType }

func (*UnknownRecordType) Kind() Kind { return KindUnknownRecord }
func (*UnknownRecordType) Is(v any) bool {
	_, ok := asRecord(v)
	return ok
}
func (t *UnknownRecordType) is(v any, _ int) bool { return t.Is(v) }
func (t *UnknownRecordType) Validate(v any, c Context) (any, Errors) {
	if m, ok := asRecord(v); ok {
		return m, nil
	}
	return nil, Failure(v, c, "")
}
func (*UnknownRecordType) Encode(v any) (any, error) { return identity(v) }

// ObjectType accepts any non-null composite value: maps, lists and structs.
type ObjectType struct{ shape }

var objectType = &ObjectType{shape{"object"}}

// Object returns the validator for non-null composite values.
func Object() *ObjectType { return objectType }

func (*ObjectType) Kind() Kind { return KindObject }
func (*ObjectType) Is(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer:
		return !rv.IsNil()
	case reflect.Array, reflect.Struct:
		return true
	}
	return false
}
func (t *ObjectType) is(v any, _ int) bool                     { return t.Is(v) }
func (t *ObjectType) Validate(v any, c Context) (any, Errors) { return checkScalar(t, v, c) }
func (*ObjectType) Encode(v any) (any, error)                  { return identity(v) }

// LiteralType accepts a single string, number or boolean value.
type LiteralType struct {
	shape
	Value any
}

// Literal returns a validator accepting exactly value.
func Literal(value any) *LiteralType {
	return &LiteralType{shape: shape{jsonName(value)}, Value: value}
}

func (*LiteralType) Kind() Kind                                 { return KindLiteral }
func (t *LiteralType) Is(v any) bool                            { return sameScalar(t.Value, v) }
func (t *LiteralType) is(v any, _ int) bool                     { return t.Is(v) }
func (t *LiteralType) Validate(v any, c Context) (any, Errors) { return checkScalar(t, v, c) }
func (*LiteralType) Encode(v any) (any, error)                  { return identity(v) }

// KeyofType accepts one of a fixed set of strings.
type KeyofType struct {
	shape
	Keys []string
}

// Keyof returns a validator accepting any of keys. Key order is kept for names
// and schemas.
func Keyof(keys ...string) *KeyofType {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = jsonName(k)
	}
	return &KeyofType{shape: shape{strings.Join(names, " | ")}, Keys: slices.Clone(keys)}
}

func (*KeyofType) Kind() Kind { return KindKeyof }
func (t *KeyofType) Is(v any) bool {
	s, ok := v.(string)
	return ok && slices.Contains(t.Keys, s)
}
func (t *KeyofType) is(v any, _ int) bool                     { return t.Is(v) }
func (t *KeyofType) Validate(v any, c Context) (any, Errors) { return checkScalar(t, v, c) }
func (*KeyofType) Encode(v any) (any, error)                  { return identity(v) }
