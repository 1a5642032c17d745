package dsl

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the structural tag of a validator shape.
type Kind int

const (
	KindCustom Kind = iota // Untagged validators built with NewType.
	KindNull
	KindUndefined
	KindVoid
	KindUnknown
	KindAny
	KindNever
	KindString
	KindNumber
	KindBoolean
	KindFunction
	KindUnknownArray
	KindUnknownRecord
	KindObject
	KindLiteral
	KindKeyof
	KindRefinement
	KindReadonly
	KindReadonlyArray
	KindArray
	KindInterface
	KindPartial
	KindDictionary
	KindUnion
	KindIntersection
	KindTuple
	KindExact
	KindRecursive
	KindPipe
	KindInstance
)

var kindNames = [...]string{
	KindCustom:        "Custom",
	KindNull:          "NullType",
	KindUndefined:     "UndefinedType",
	KindVoid:          "VoidType",
	KindUnknown:       "UnknownType",
	KindAny:           "AnyType",
	KindNever:         "NeverType",
	KindString:        "StringType",
	KindNumber:        "NumberType",
	KindBoolean:       "BooleanType",
	KindFunction:      "FunctionType",
	KindUnknownArray:  "AnyArrayType",
	KindUnknownRecord: "AnyDictionaryType",
	KindObject:        "ObjectType",
	KindLiteral:       "LiteralType",
	KindKeyof:         "KeyofType",
	KindRefinement:    "RefinementType",
	KindReadonly:      "ReadonlyType",
	KindReadonlyArray: "ReadonlyArrayType",
	KindArray:         "ArrayType",
	KindInterface:     "InterfaceType",
	KindPartial:       "PartialType",
	KindDictionary:    "DictionaryType",
	KindUnion:         "UnionType",
	KindIntersection:  "IntersectionType",
	KindTuple:         "TupleType",
	KindExact:         "ExactType",
	KindRecursive:     "RecursiveType",
	KindPipe:          "PipeTransform",
	KindInstance:      "InstanceType",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Type is a structural validator. The set of implementations is closed: every
// shape lives in this package, and external validators are expressed through
// NewType.
type Type interface {
	// Name is the declared, human-readable name of the validator.
	Name() string
	// Kind reports the structural tag.
	Kind() Kind
	// Is reports whether v already has the decoded shape.
	Is(v any) bool
	// Validate decodes v, reporting failures relative to c.
	Validate(v any, c Context) (any, Errors)
	// Encode converts a decoded value back into its wire form. It assumes v
	// satisfies Is and may fail or produce garbage otherwise.
	Encode(v any) (any, error)

	sealed()
	is(v any, depth int) bool
}

// UndefinedValue is the type of Undefined.
type UndefinedValue struct{}

// Undefined marks an absent value (a missing header, an empty body, a missing
// object key). It is distinct from nil, which is JSON null.
var Undefined = UndefinedValue{}

func (UndefinedValue) String() string { return "undefined" }

// IsUndefined reports whether v is the Undefined marker.
func IsUndefined(v any) bool {
	_, ok := v.(UndefinedValue)
	return ok
}

// MaxDepth bounds the validation depth of recursive validators.
var MaxDepth = 256

// ErrMaxDepth is reported when a recursive validator nests deeper than MaxDepth.
var ErrMaxDepth = errors.New("dsl: maximum validation depth exceeded")

// ContextEntry is one step of the path from the root value to a failure.
type ContextEntry struct {
	Key    string
	Type   Type
	Actual any
}

// Context is the path from the root value to the value being validated.
type Context []ContextEntry

// Append returns a copy of c extended with one entry. The receiver is never
// modified so sibling branches cannot observe each other's entries.
func (c Context) Append(key string, t Type, actual any) Context {
	out := make(Context, len(c)+1)
	copy(out, c)
	out[len(c)] = ContextEntry{Key: key, Type: t, Actual: actual}
	return out
}

// Keys returns the keys of every entry, root included.
func (c Context) Keys() []string {
	keys := make([]string, len(c))
	for i, e := range c {
		keys[i] = e.Key
	}
	return keys
}

// ValidationError is a single structural mismatch.
type ValidationError struct {
	Value   any
	Context Context
	// Message overrides the generated description when set.
	Message string
}

// Errors is the native failure list of a validator. It implements error.
type Errors []ValidationError

// Error summarizes the first few entries.
func (errs Errors) Error() string {
	if len(errs) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(errs), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		e := errs[i]
		if e.Message != "" {
			b.WriteString(e.Message)
			continue
		}
		expected := "unknown"
		if n := len(e.Context); n > 0 && e.Context[n-1].Type != nil {
			expected = e.Context[n-1].Type.Name()
		}
		fmt.Fprintf(b, "expected %s at /%s", expected, strings.Join(trimRootKey(e.Context.Keys()), "/"))
	}
	if len(errs) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(errs))
	}
	return b.String()
}

func trimRootKey(keys []string) []string {
	if len(keys) > 0 && keys[0] == "" {
		return keys[1:]
	}
	return keys
}

// AsErrors extracts Errors from err using errors.As.
func AsErrors(err error) (Errors, bool) {
	if err == nil {
		return nil, false
	}
	var errs Errors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}

// Failure builds a single-entry failure for v at c.
func Failure(v any, c Context, message string) Errors {
	return Errors{{Value: v, Context: c, Message: message}}
}

// Decode validates v against t, starting from a root context entry.
func Decode(t Type, v any) (any, Errors) {
	return t.Validate(v, Context{{Key: "", Type: t, Actual: v}})
}

// isAt checks v against t at the given nesting depth.
func isAt(t Type, v any, depth int) bool {
	return t.is(v, depth)
}

// shape carries the name shared by every built-in validator.
type shape struct{ name string }

func (s shape) Name() string { return s.name }
func (shape) sealed()        {}

// EncodeError reports a value that a validator cannot encode.
type EncodeError struct {
	Type  Type
	Value any
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("dsl: cannot encode %s as %s", jsonName(e.Value), e.Type.Name())
}
