package rules

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/reoring/skema/dsl"
)

// Predicate reports whether a decoded value satisfies a rule.
type Predicate = func(v any) bool

// Op compares the value found by If with the wanted value. Ordering
// operators apply to numbers only.
type Op int

const (
	Eq Op = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

// Conditional gates rules on the shape of the decoded value.
type Conditional struct {
	path string
	op   Op
	want any
	all  []Conditional // composite AND
	any  []Conditional // composite OR
}

// If builds a conditional that evaluates a path against a value using an operator.
// The path is a JSON Pointer like "/status" over object keys, list indexes and
// json-tagged struct fields.
func If(path string, op Op, want any) Conditional {
	return Conditional{path: normalizePath(path), op: op, want: want}
}

// IfAll builds a conditional that requires all conditions to hold.
func IfAll(conds ...Conditional) Conditional { return Conditional{all: conds} }

// IfAny builds a conditional that requires any condition to hold.
func IfAny(conds ...Conditional) Conditional { return Conditional{any: conds} }

// And holds when c and every other condition hold.
func (c Conditional) And(others ...Conditional) Conditional {
	return IfAll(append([]Conditional{c}, others...)...)
}

// Or holds when c or any other condition holds.
func (c Conditional) Or(others ...Conditional) Conditional {
	return IfAny(append([]Conditional{c}, others...)...)
}

// Then attaches rules to run when the condition is satisfied. When it is not,
// the resulting predicate holds.
func (c Conditional) Then(rules ...Predicate) Predicate {
	all := And(rules...)
	return func(v any) bool {
		if !c.holds(v) {
			return true
		}
		return all(v)
	}
}

// AtLeastOne requires the collection at collectionPath to be non-empty. A
// missing path or a non-collection value passes.
func AtLeastOne(collectionPath string) Predicate {
	p := normalizePath(collectionPath)
	return func(v any) bool {
		val, ok := valueAtPath(v, p)
		if !ok {
			return true
		}
		rv := reflect.ValueOf(val)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			return rv.Len() > 0
		}
		return true
	}
}

// UniqueBy ensures elements in a collection have unique key values.
// collectionPath is JSON Pointer to a list (e.g., "/items").
// keyPath is a relative path inside each element (e.g., "sku" or "/sku").
// Keys are compared by their fmt.Sprint form, so mixed-type keys may collide.
func UniqueBy(collectionPath, keyPath string) Predicate {
	cp := normalizePath(collectionPath)
	kp := strings.TrimPrefix(keyPath, "/")
	return func(v any) bool {
		val, ok := valueAtPath(v, cp)
		if !ok {
			return true
		}
		rv := reflect.ValueOf(val)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return true
		}
		seen := map[string]struct{}{}
		for i := 0; i < rv.Len(); i++ {
			kv, ok := valueAtPathWithin(rv.Index(i).Interface(), kp)
			if !ok {
				continue
			}
			key := fmt.Sprint(kv)
			if _, dup := seen[key]; dup {
				return false
			}
			seen[key] = struct{}{}
		}
		return true
	}
}

// And holds when every rule holds.
func And(rules ...Predicate) Predicate {
	return func(v any) bool {
		for _, r := range rules {
			if r != nil && !r(v) {
				return false
			}
		}
		return true
	}
}

// Or holds when any rule holds. With no non-nil rules it holds vacuously.
func Or(rules ...Predicate) Predicate {
	return func(v any) bool {
		tried := false
		for _, r := range rules {
			if r == nil {
				continue
			}
			tried = true
			if r(v) {
				return true
			}
		}
		return !tried
	}
}

// Refine narrows t with every rule. An empty name becomes "(T | refinement)".
func Refine(t dsl.Type, name string, rules ...Predicate) *dsl.RefinementType {
	return dsl.Refinement(t, name, And(rules...))
}

func normalizePath(p string) string {
	return "/" + strings.TrimPrefix(p, "/")
}

func (c Conditional) holds(v any) bool {
	switch {
	case len(c.all) > 0:
		for _, sub := range c.all {
			if !sub.holds(v) {
				return false
			}
		}
		return true
	case len(c.any) > 0:
		for _, sub := range c.any {
			if sub.holds(v) {
				return true
			}
		}
		return false
	}
	cur, ok := valueAtPath(v, c.path)
	return ok && compare(cur, c.op, c.want)
}

func valueAtPath(v any, pointer string) (any, bool) {
	return valueAtPathWithin(v, strings.TrimPrefix(pointer, "/"))
}

// valueAtPathWithin walks rel, a slash-separated path without a leading slash.
// Undefined values count as missing.
func valueAtPathWithin(v any, rel string) (any, bool) {
	cur := reflect.ValueOf(v)
	if rel != "" {
		for _, seg := range strings.Split(rel, "/") {
			var ok bool
			if cur, ok = step(indirect(cur), seg); !ok {
				return nil, false
			}
		}
	}
	cur = indirect(cur)
	if !cur.IsValid() {
		return nil, rel != "" || v == nil
	}
	out := cur.Interface()
	if dsl.IsUndefined(out) {
		return nil, false
	}
	return out, true
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// step resolves one path segment against a struct, string-keyed map or list.
func step(v reflect.Value, seg string) (reflect.Value, bool) {
	var next reflect.Value
	switch v.Kind() {
	case reflect.Struct:
		next = structField(v, seg)
	case reflect.Map:
		if v.Type().Key().Kind() == reflect.String {
			next = v.MapIndex(reflect.ValueOf(seg).Convert(v.Type().Key()))
		}
	case reflect.Slice, reflect.Array:
		if i, err := strconv.Atoi(seg); err == nil && i >= 0 && i < v.Len() {
			next = v.Index(i)
		}
	}
	return next, next.IsValid()
}

// structField resolves seg against json tag names, then Go field names.
func structField(v reflect.Value, seg string) reflect.Value {
	for _, sf := range reflect.VisibleFields(v.Type()) {
		if !sf.IsExported() || len(sf.Index) > 1 {
			continue
		}
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			name = sf.Name
		}
		if name == seg {
			return v.Field(sf.Index[0])
		}
	}
	return reflect.Value{}
}

func compare(cur any, op Op, want any) bool {
	a, aNum := number(cur)
	b, bNum := number(want)
	switch op {
	case Eq, Ne:
		eq := reflect.DeepEqual(cur, want)
		if aNum && bNum {
			eq = a == b
		}
		return eq == (op == Eq)
	}
	if !aNum || !bNum {
		return false
	}
	switch op {
	case Lt:
		return a < b
	case Le:
		return a <= b
	case Gt:
		return a > b
	case Ge:
		return a >= b
	}
	return false
}

// number widens any Go numeric kind. Decoded JSON numbers are float64 while
// rules are usually written with int literals.
func number(x any) (float64, bool) {
	v := reflect.ValueOf(x)
	switch {
	case v.CanInt():
		return float64(v.Int()), true
	case v.CanUint():
		return float64(v.Uint()), true
	case v.CanFloat():
		return v.Float(), true
	}
	return 0, false
}
