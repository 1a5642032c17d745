package dsl

import (
	"reflect"
	"sync"
)

// RefinementType narrows Type with a predicate over the decoded value.
type RefinementType struct {
	shape
	Type      Type
	Predicate func(v any) bool
}

// Refinement returns t narrowed by pred. An empty name becomes "(T | refinement)".
func Refinement(t Type, name string, pred func(v any) bool) *RefinementType {
	if name == "" {
		name = "(" + t.Name() + " | refinement)"
	}
	return &RefinementType{shape: shape{name}, Type: t, Predicate: pred}
}

func (*RefinementType) Kind() Kind      { return KindRefinement }
func (t *RefinementType) Is(v any) bool { return t.is(v, 0) }

func (t *RefinementType) is(v any, depth int) bool {
	return isAt(t.Type, v, depth+1) && t.Predicate(v)
}

func (t *RefinementType) Validate(v any, c Context) (any, Errors) {
	got, errs := t.Type.Validate(v, c)
	if len(errs) > 0 {
		return nil, errs
	}
	if !t.Predicate(got) {
		return nil, Failure(v, c, "")
	}
	return got, nil
}

func (t *RefinementType) Encode(v any) (any, error) { return t.Type.Encode(v) }

// ReadonlyType marks Type as read-only. It validates exactly like Type.
type ReadonlyType struct {
	shape
	Type Type
}

// Readonly wraps t under the name Readonly<T>.
func Readonly(t Type) *ReadonlyType {
	return &ReadonlyType{shape: shape{"Readonly<" + t.Name() + ">"}, Type: t}
}

func (*ReadonlyType) Kind() Kind                               { return KindReadonly }
func (t *ReadonlyType) Is(v any) bool                          { return t.is(v, 0) }
func (t *ReadonlyType) is(v any, depth int) bool               { return isAt(t.Type, v, depth+1) }
func (t *ReadonlyType) Validate(v any, c Context) (any, Errors) { return t.Type.Validate(v, c) }
func (t *ReadonlyType) Encode(v any) (any, error)              { return t.Type.Encode(v) }

type recursiveDef struct {
	once   sync.Once
	define func(self Type) Type
	t      Type
}

// RecursiveType is a named node whose definition is built on first use. The
// definition receives the node itself so it can refer back to it.
type RecursiveType struct {
	shape
	def *recursiveDef
}

// Recursive declares a self-referencing validator.
//
//	var Tree dsl.Type
//	Tree = dsl.Recursive("Tree", func(self dsl.Type) dsl.Type {
//		return dsl.Interface(dsl.F("children", dsl.Array(self)))
//	})
func Recursive(name string, define func(self Type) Type) *RecursiveType {
	return &RecursiveType{shape: shape{name}, def: &recursiveDef{define: define}}
}

// Type returns the resolved definition.
func (t *RecursiveType) Type() Type {
	t.def.once.Do(func() { t.def.t = t.def.define(t) })
	return t.def.t
}

func (*RecursiveType) Kind() Kind      { return KindRecursive }
func (t *RecursiveType) Is(v any) bool { return t.is(v, 0) }

func (t *RecursiveType) is(v any, depth int) bool {
	if depth > MaxDepth {
		return false
	}
	return isAt(t.Type(), v, depth+1)
}

func (t *RecursiveType) Validate(v any, c Context) (any, Errors) {
	if len(c) > MaxDepth {
		return nil, Failure(v, c, ErrMaxDepth.Error())
	}
	return t.Type().Validate(v, c)
}

func (t *RecursiveType) Encode(v any) (any, error) { return t.Type().Encode(v) }

// PipeType decodes with Source and feeds the result to Transform. Encoding runs
// the other way round.
type PipeType struct {
	shape
	Source    Type
	Transform Type
}

// Pipe chains source and transform under the transform's name.
func Pipe(source, transform Type) *PipeType {
	return &PipeType{shape: shape{transform.Name()}, Source: source, Transform: transform}
}

func (*PipeType) Kind() Kind                 { return KindPipe }
func (t *PipeType) Is(v any) bool            { return t.is(v, 0) }
func (t *PipeType) is(v any, depth int) bool { return isAt(t.Transform, v, depth+1) }

func (t *PipeType) Validate(v any, c Context) (any, Errors) {
	mid, errs := t.Source.Validate(v, c)
	if len(errs) > 0 {
		return nil, errs
	}
	return t.Transform.Validate(mid, c)
}

func (t *PipeType) Encode(v any) (any, error) {
	mid, err := t.Transform.Encode(v)
	if err != nil {
		return nil, err
	}
	return t.Source.Encode(mid)
}

// CustomType is a validator defined by plain functions. It carries no
// structural tag, so schema generation only knows it by identity.
type CustomType struct {
	shape
	IsFunc       func(v any) bool
	ValidateFunc func(v any, c Context) (any, Errors)
	EncodeFunc   func(v any) (any, error)
}

// NewType builds a CustomType. A nil encode is the identity.
func NewType(name string, is func(v any) bool, validate func(v any, c Context) (any, Errors), encode func(v any) (any, error)) *CustomType {
	if encode == nil {
		encode = identity
	}
	return &CustomType{shape: shape{name}, IsFunc: is, ValidateFunc: validate, EncodeFunc: encode}
}

func (*CustomType) Kind() Kind                               { return KindCustom }
func (t *CustomType) Is(v any) bool                          { return t.IsFunc(v) }
func (t *CustomType) is(v any, _ int) bool                   { return t.IsFunc(v) }
func (t *CustomType) Validate(v any, c Context) (any, Errors) { return t.ValidateFunc(v, c) }
func (t *CustomType) Encode(v any) (any, error)              { return t.EncodeFunc(v) }

// InstanceType accepts values of one Go type.
type InstanceType struct {
	shape
	GoType reflect.Type
}

// Instance returns a validator for values whose dynamic type is goType.
func Instance(name string, goType reflect.Type) *InstanceType {
	return &InstanceType{shape: shape{name}, GoType: goType}
}

func (*InstanceType) Kind() Kind { return KindInstance }
func (t *InstanceType) Is(v any) bool {
	return v != nil && reflect.TypeOf(v) == t.GoType
}
func (t *InstanceType) is(v any, _ int) bool                     { return t.Is(v) }
func (t *InstanceType) Validate(v any, c Context) (any, Errors) { return checkScalar(t, v, c) }
func (*InstanceType) Encode(v any) (any, error)                  { return identity(v) }

type renamer interface{ setName(string) }

func (s *shape) setName(n string) { s.name = n }

// WithName returns a shallow copy of t under a different name.
func WithName[T Type](t T, name string) T {
	rv := reflect.ValueOf(t)
	cp := reflect.New(rv.Elem().Type())
	cp.Elem().Set(rv.Elem())
	out := cp.Interface()
	out.(renamer).setName(name)
	return out.(T)
}
