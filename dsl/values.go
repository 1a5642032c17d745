package dsl

import (
	"errors"
	"math"
	"reflect"
	"sort"
	"strconv"

	json "github.com/goccy/go-json"
)

// asRecord views v as a string-keyed object. map[string]any is returned as is,
// other string-keyed maps are copied.
func asRecord(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, m != nil
	case nil, UndefinedValue:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String || rv.IsNil() {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// asArray views v as a list. []any is returned as is, other slices and arrays
// are copied.
func asArray(v any) ([]any, bool) {
	switch a := v.(type) {
	case []any:
		return a, a != nil
	case nil, UndefinedValue, string:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return nil, false
		}
	case reflect.Array:
	default:
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// toFloat64 converts any Go numeric value.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func isNumber(v any) bool {
	_, ok := toFloat64(v)
	return ok
}

// sameScalar compares literal-like values, treating all numeric kinds alike.
func sameScalar(a, b any) bool {
	if fa, ok := toFloat64(a); ok {
		fb, ok := toFloat64(b)
		return ok && (fa == fb || (math.IsNaN(fa) && math.IsNaN(fb)))
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	case UndefinedValue:
		return IsUndefined(b)
	}
	return false
}

// jsonName renders a literal the way it appears in validator names.
func jsonName(v any) string {
	if f, ok := toFloat64(v); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "<unrenderable>"
	}
	return string(b)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ErrCycle is returned by StripUndefined for a value that contains itself.
var ErrCycle = errors.New("dsl: value contains a cycle")

// StripUndefined returns a copy of v in which Undefined object members are
// dropped and Undefined list elements become nil, matching how JSON text
// represents absence. A map or list that contains itself yields ErrCycle.
func StripUndefined(v any) (any, error) {
	return stripUndefined(v, map[uintptr]bool{})
}

// stripUndefined tracks the maps and lists on the current path in active;
// shared but acyclic values are allowed.
func stripUndefined(v any, active map[uintptr]bool) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		p := reflect.ValueOf(t).Pointer()
		if active[p] {
			return nil, ErrCycle
		}
		active[p] = true
		defer delete(active, p)
		out := make(map[string]any, len(t))
		for k, val := range t {
			if IsUndefined(val) {
				continue
			}
			sv, err := stripUndefined(val, active)
			if err != nil {
				return nil, err
			}
			out[k] = sv
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		if len(t) == 0 {
			return out, nil
		}
		p := reflect.ValueOf(t).Pointer()
		if active[p] {
			return nil, ErrCycle
		}
		active[p] = true
		defer delete(active, p)
		for i, val := range t {
			if IsUndefined(val) {
				continue
			}
			sv, err := stripUndefined(val, active)
			if err != nil {
				return nil, err
			}
			out[i] = sv
		}
		return out, nil
	case UndefinedValue:
		return nil, nil
	}
	return v, nil
}
