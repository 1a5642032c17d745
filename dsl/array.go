package dsl

import (
	"fmt"
	"strconv"
	"strings"
)

// ArrayType is a list whose elements all satisfy Type.
type ArrayType struct {
	shape
	Type Type
}

// Array returns a list validator.
func Array(t Type) *ArrayType {
	return &ArrayType{shape: shape{"Array<" + t.Name() + ">"}, Type: t}
}

func (*ArrayType) Kind() Kind                               { return KindArray }
func (t *ArrayType) Is(v any) bool                          { return t.is(v, 0) }
func (t *ArrayType) is(v any, depth int) bool               { return isEach(t.Type, v, depth) }
func (t *ArrayType) Validate(v any, c Context) (any, Errors) { return validateEach(t.Type, v, c) }
func (t *ArrayType) Encode(v any) (any, error)              { return encodeEach(t, t.Type, v) }

// ReadonlyArrayType behaves like ArrayType. Go has no immutable slices, so the
// distinction only shows in names.
type ReadonlyArrayType struct {
	shape
	Type Type
}

// ReadonlyArray returns a list validator named ReadonlyArray<T>.
func ReadonlyArray(t Type) *ReadonlyArrayType {
	return &ReadonlyArrayType{shape: shape{"ReadonlyArray<" + t.Name() + ">"}, Type: t}
}

func (*ReadonlyArrayType) Kind() Kind                 { return KindReadonlyArray }
func (t *ReadonlyArrayType) Is(v any) bool            { return t.is(v, 0) }
func (t *ReadonlyArrayType) is(v any, depth int) bool { return isEach(t.Type, v, depth) }
func (t *ReadonlyArrayType) Validate(v any, c Context) (any, Errors) {
	return validateEach(t.Type, v, c)
}
func (t *ReadonlyArrayType) Encode(v any) (any, error) { return encodeEach(t, t.Type, v) }

func isEach(elem Type, v any, depth int) bool {
	a, ok := asArray(v)
	if !ok {
		return false
	}
	for _, e := range a {
		if !isAt(elem, e, depth+1) {
			return false
		}
	}
	return true
}

func validateEach(elem Type, v any, c Context) (any, Errors) {
	a, ok := asArray(v)
	if !ok {
		return nil, Failure(v, c, "")
	}
	out := make([]any, len(a))
	var errs Errors
	for i, e := range a {
		got, eerrs := elem.Validate(e, c.Append(strconv.Itoa(i), elem, e))
		if len(eerrs) > 0 {
			errs = append(errs, eerrs...)
			continue
		}
		out[i] = got
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func encodeEach(self, elem Type, v any) (any, error) {
	a, ok := asArray(v)
	if !ok {
		return nil, &EncodeError{Type: self, Value: v}
	}
	out := make([]any, len(a))
	for i, e := range a {
		enc, err := elem.Encode(e)
		if err != nil {
			return nil, fmt.Errorf("%d: %w", i, err)
		}
		out[i] = enc
	}
	return out, nil
}

// TupleType is a fixed-length list with one validator per position. Decoding
// drops trailing extra elements; Is requires the exact length.
type TupleType struct {
	shape
	Types []Type
}

// Tuple returns a positional list validator.
func Tuple(ts ...Type) *TupleType {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.Name()
	}
	return &TupleType{shape: shape{"[" + strings.Join(names, ", ") + "]"}, Types: append([]Type(nil), ts...)}
}

func (*TupleType) Kind() Kind      { return KindTuple }
func (t *TupleType) Is(v any) bool { return t.is(v, 0) }

func (t *TupleType) is(v any, depth int) bool {
	a, ok := asArray(v)
	if !ok || len(a) != len(t.Types) {
		return false
	}
	for i, p := range t.Types {
		if !isAt(p, a[i], depth+1) {
			return false
		}
	}
	return true
}

func (t *TupleType) Validate(v any, c Context) (any, Errors) {
	a, ok := asArray(v)
	if !ok {
		return nil, Failure(v, c, "")
	}
	out := make([]any, len(t.Types))
	var errs Errors
	for i, p := range t.Types {
		var e any = Undefined
		if i < len(a) {
			e = a[i]
		}
		got, eerrs := p.Validate(e, c.Append(strconv.Itoa(i), p, e))
		if len(eerrs) > 0 {
			errs = append(errs, eerrs...)
			continue
		}
		out[i] = got
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func (t *TupleType) Encode(v any) (any, error) {
	a, ok := asArray(v)
	if !ok || len(a) < len(t.Types) {
		return nil, &EncodeError{Type: t, Value: v}
	}
	out := make([]any, len(t.Types))
	for i, p := range t.Types {
		enc, err := p.Encode(a[i])
		if err != nil {
			return nil, fmt.Errorf("%d: %w", i, err)
		}
		out[i] = enc
	}
	return out, nil
}
