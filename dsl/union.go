package dsl

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

func joinNames(ts []Type, sep string) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.Name()
	}
	return "(" + strings.Join(names, sep) + ")"
}

// UnionType accepts a value when any branch does. Branches are tried in order.
type UnionType struct {
	shape
	Types []Type
}

// Union returns a validator that accepts any of ts.
func Union(ts ...Type) *UnionType {
	return &UnionType{shape: shape{joinNames(ts, " | ")}, Types: append([]Type(nil), ts...)}
}

func (*UnionType) Kind() Kind      { return KindUnion }
func (t *UnionType) Is(v any) bool { return t.is(v, 0) }

func (t *UnionType) is(v any, depth int) bool {
	for _, b := range t.Types {
		if isAt(b, v, depth+1) {
			return true
		}
	}
	return false
}

// Validate returns the first successful branch. On failure it reports the
// errors of every branch, each under its branch index.
func (t *UnionType) Validate(v any, c Context) (any, Errors) {
	var errs Errors
	for i, b := range t.Types {
		got, berrs := b.Validate(v, c.Append(strconv.Itoa(i), b, v))
		if len(berrs) == 0 {
			return got, nil
		}
		errs = append(errs, berrs...)
	}
	if len(errs) == 0 {
		return nil, Failure(v, c, "")
	}
	return nil, errs
}

// Encode uses the first branch whose Is accepts v.
func (t *UnionType) Encode(v any) (any, error) {
	for _, b := range t.Types {
		if b.Is(v) {
			return b.Encode(v)
		}
	}
	return nil, fmt.Errorf("%w: no branch of %s matches", &EncodeError{Type: t, Value: v}, t.Name())
}

// IntersectionType requires every branch to accept the value and merges their
// object outputs.
type IntersectionType struct {
	shape
	Types []Type
}

// Intersection returns a validator that requires all of ts.
func Intersection(ts ...Type) *IntersectionType {
	return &IntersectionType{shape: shape{joinNames(ts, " & ")}, Types: append([]Type(nil), ts...)}
}

func (*IntersectionType) Kind() Kind      { return KindIntersection }
func (t *IntersectionType) Is(v any) bool { return t.is(v, 0) }

func (t *IntersectionType) is(v any, depth int) bool {
	for _, b := range t.Types {
		if !isAt(b, v, depth+1) {
			return false
		}
	}
	return true
}

func (t *IntersectionType) Validate(v any, c Context) (any, Errors) {
	if len(t.Types) == 0 {
		return v, nil
	}
	outs := make([]any, 0, len(t.Types))
	var errs Errors
	for i, b := range t.Types {
		got, berrs := b.Validate(v, c.Append(strconv.Itoa(i), b, v))
		if len(berrs) > 0 {
			errs = append(errs, berrs...)
			continue
		}
		outs = append(outs, got)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return mergeAll(v, outs), nil
}

func (t *IntersectionType) Encode(v any) (any, error) {
	if len(t.Types) == 0 {
		return v, nil
	}
	outs := make([]any, len(t.Types))
	for i, b := range t.Types {
		enc, err := b.Encode(v)
		if err != nil {
			return nil, err
		}
		outs[i] = enc
	}
	return mergeAll(v, outs), nil
}

// mergeAll combines branch outputs. Object outputs are merged key by key with
// changed values winning; otherwise the last output wins.
func mergeAll(base any, outs []any) any {
	anyRecord := false
	for _, o := range outs {
		if _, ok := asRecord(o); ok {
			anyRecord = true
			break
		}
	}
	if !anyRecord {
		return outs[len(outs)-1]
	}
	baseRec, baseIsRecord := asRecord(base)
	r := map[string]any{}
	for _, o := range outs {
		m, ok := asRecord(o)
		if !ok {
			continue
		}
		for k, val := range m {
			_, seen := r[k]
			if !seen || !baseIsRecord || !reflect.DeepEqual(val, baseRec[k]) {
				r[k] = val
			}
		}
	}
	return r
}
