package jsonschema_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/skema/codec"
	"github.com/reoring/skema/dsl"
	js "github.com/reoring/skema/jsonschema"
)

func transform(t dsl.Type) *js.Schema { return js.Transform(t, true, js.Config{}) }

func ptr(n int) *int { return &n }

func str(desc string) *js.Schema  { return &js.Schema{Type: "string", Description: desc} }
func num(desc string) *js.Schema  { return &js.Schema{Type: "number", Description: desc} }
func boolean(d string) *js.Schema { return &js.Schema{Type: "boolean", Description: d} }

func assertSchema(t *testing.T, got, want *js.Schema) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
}

func TestTransform_Primitives(t *testing.T) {
	cases := []struct {
		in   dsl.Type
		typ  string
		desc string
	}{
		{dsl.Null(), "null", "null"},
		{dsl.UndefinedT(), "null", "undefined"},
		{dsl.Void(), "null", "void"},
		{dsl.String(), "string", "string"},
		{dsl.Boolean(), "boolean", "boolean"},
		{dsl.Number(), "number", "number"},
		{dsl.UnknownArray(), "array", "UnknownArray"},
		{dsl.UnknownRecord(), "object", "UnknownRecord"},
		{dsl.Object(), "object", "object"},
	}
	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			assertSchema(t, transform(tc.in), &js.Schema{Type: tc.typ, Description: tc.desc})
		})
	}
}

func TestTransform_LiteralsAndKeyof(t *testing.T) {
	assertSchema(t, transform(dsl.Literal("literal")),
		&js.Schema{Type: "string", Const: "literal", Description: `"literal"`})
	assertSchema(t, transform(dsl.Literal(true)),
		&js.Schema{Type: "boolean", Const: true, Description: "true"})
	assertSchema(t, transform(dsl.Literal(false)),
		&js.Schema{Type: "boolean", Const: false, Description: "false"})
	assertSchema(t, transform(dsl.Literal(1.0)),
		&js.Schema{Type: "number", Const: 1.0, Description: "1"})

	assertSchema(t, transform(dsl.Keyof("literal")),
		&js.Schema{Type: "string", Const: "literal", Description: `"literal"`})
	assertSchema(t, transform(dsl.Keyof()), js.False())
	assertSchema(t, transform(dsl.Keyof("literal", "anotherLiteral")),
		&js.Schema{Type: "string", Enum: []any{"literal", "anotherLiteral"}, Description: `"literal" | "anotherLiteral"`})
}

func TestTransform_TopAndBottom(t *testing.T) {
	assertSchema(t, transform(dsl.Never()), js.False())
	assertSchema(t, transform(dsl.Any()), js.True())
	assertSchema(t, transform(dsl.Unknown()), js.True())
}

func TestTransform_Wrappers(t *testing.T) {
	assertSchema(t, transform(dsl.Refinement(dsl.String(), "", func(any) bool { return true })), str("string"))
	assertSchema(t, transform(dsl.Readonly(dsl.String())), str("string"))

	assertSchema(t, transform(dsl.Array(dsl.String())),
		&js.Schema{Type: "array", Items: str("string"), Description: "Array<string>"})
	assertSchema(t, transform(dsl.ReadonlyArray(dsl.String())),
		&js.Schema{Type: "array", Items: str("string"), Description: "ReadonlyArray<string>"})
}

func TestTransform_Objects(t *testing.T) {
	props := map[string]*js.Schema{"property": str("string")}

	assertSchema(t, transform(dsl.Interface(dsl.F("property", dsl.String()))), &js.Schema{
		Type:        "object",
		Properties:  props,
		Required:    []string{"property"},
		Description: "{ property: string }",
	})
	assertSchema(t, transform(dsl.Partial(dsl.F("property", dsl.String()))), &js.Schema{
		Type:        "object",
		Properties:  props,
		Description: "Partial<{ property: string }>",
	})
	assertSchema(t, transform(dsl.Record(dsl.String(), dsl.Number())), &js.Schema{
		Type:                 "object",
		PropertyNames:        str("string"),
		AdditionalProperties: num("number"),
		Description:          "{ [K in string]: number }",
	})
	assertSchema(t, transform(dsl.Exact(dsl.Interface(dsl.F("property", dsl.String())))), &js.Schema{
		Type:          "object",
		Properties:    props,
		Required:      []string{"property"},
		MinProperties: ptr(1),
		MaxProperties: ptr(1),
		Description:   "{ property: string }",
	})
	// Optional keys of an exact object may be left out.
	assertSchema(t, transform(dsl.Exact(dsl.Partial(dsl.F("property", dsl.String())))), &js.Schema{
		Type:          "object",
		Properties:    props,
		MinProperties: ptr(0),
		MaxProperties: ptr(1),
		Description:   "Partial<{ property: string }>",
	})
}

func TestTransform_Unions(t *testing.T) {
	stringAndNumber := []*js.Schema{str("string"), num("number")}

	// An outermost optional value is described by its defined branch alone.
	assertSchema(t, transform(dsl.Union(dsl.String(), dsl.UndefinedT())), str("string"))
	assertSchema(t, transform(dsl.Union(dsl.String(), dsl.Number(), dsl.UndefinedT())), &js.Schema{
		AnyOf:       stringAndNumber,
		Description: "(string | number | undefined)",
	})
	assertSchema(t, transform(dsl.Union(dsl.String(), dsl.Number())), &js.Schema{
		AnyOf:       stringAndNumber,
		Description: "(string | number)",
	})

	// Enum compression.
	assertSchema(t, transform(dsl.Union(dsl.Literal("one"), dsl.Literal("two"))), &js.Schema{
		Type:        "string",
		Enum:        []any{"one", "two"},
		Description: `("one" | "two")`,
	})
	// Values of different types stay separate branches.
	assertSchema(t, transform(dsl.Union(dsl.Literal("literal"), dsl.Literal(1.0))), &js.Schema{
		AnyOf: []*js.Schema{
			{Type: "string", Const: "literal", Description: `"literal"`},
			{Type: "number", Const: 1.0, Description: "1"},
		},
		Description: `("literal" | 1)`,
	})
	assertSchema(t, transform(dsl.Union(dsl.Keyof("a", "b"), dsl.Literal("b"), dsl.Literal("c"))), &js.Schema{
		Type:        "string",
		Enum:        []any{"a", "b", "c"},
		Description: `("a" | "b" | "b" | "c")`,
	})
}

func TestTransform_UnionCutOnlyAtTopLevel(t *testing.T) {
	optional := dsl.Union(dsl.String(), dsl.UndefinedT())

	got := js.Transform(optional, false, js.Config{})
	assertSchema(t, got, &js.Schema{
		AnyOf:       []*js.Schema{str("string"), {Type: "null", Description: "undefined"}},
		Description: "(string | undefined)",
	})

	nested := transform(dsl.Interface(dsl.F("x", optional)))
	assertSchema(t, nested.Properties["x"], got)

	// A union of nothing but undefined keeps its only branch.
	assertSchema(t, transform(dsl.Union(dsl.UndefinedT())), &js.Schema{
		Type:        "null",
		AnyOf:       []*js.Schema{{Type: "null", Description: "undefined"}},
		Description: "(undefined)",
	})
}

func TestTransform_UnionOfUnionsIsFlattened(t *testing.T) {
	want := []*js.Schema{str("string"), num("number"), boolean("boolean")}
	nested := transform(dsl.Union(dsl.String(), dsl.Union(dsl.Number(), dsl.Boolean())))
	flat := transform(dsl.Union(dsl.String(), dsl.Number(), dsl.Boolean()))

	assertSchema(t, nested, &js.Schema{AnyOf: want, Description: "(string | (number | boolean))"})
	if diff := cmp.Diff(flat.AnyOf, nested.AnyOf); diff != "" {
		t.Fatalf("flattening differs (-flat +nested):\n%s", diff)
	}
}

func TestTransform_CommonTypeHoisting(t *testing.T) {
	s := transform(dsl.Union(dsl.String(), dsl.Refinement(dsl.String(), "NonEmpty", func(v any) bool { return v != "" })))
	if s.Type != "string" || len(s.AnyOf) != 2 {
		t.Fatalf("expected hoisted string type, got %+v", s)
	}
	s = transform(dsl.Union(dsl.String(), dsl.Any()))
	if s.Type != "" {
		t.Fatalf("boolean branch must block hoisting, got %q", s.Type)
	}
}

func TestTransform_IntersectionAndTuple(t *testing.T) {
	stringAndNumber := []*js.Schema{str("string"), num("number")}
	assertSchema(t, transform(dsl.Intersection(dsl.String(), dsl.Number())), &js.Schema{
		AllOf:       stringAndNumber,
		Description: "(string & number)",
	})
	assertSchema(t, transform(dsl.Tuple(dsl.String(), dsl.Number())), &js.Schema{
		Type:        "array",
		MinItems:    ptr(2),
		MaxItems:    ptr(2),
		TupleItems:  stringAndNumber,
		Description: "[string, number]",
	})
}

func TestTransform_KnownValidators(t *testing.T) {
	assertSchema(t, transform(codec.DateFromISOString()),
		&js.Schema{Type: "string", Description: "Timestamp in ISO format."})

	custom := dsl.NewType("Custom", func(any) bool { return true }, func(v any, _ dsl.Context) (any, dsl.Errors) { return v, nil }, nil)
	assertSchema(t, transform(custom), &js.Schema{Description: "Custom"})

	cfg := js.Config{Known: map[dsl.Type]*js.Schema{custom: {Type: "integer"}}}
	assertSchema(t, js.Transform(custom, true, cfg), &js.Schema{Type: "integer"})
}

func TestTransform_Pipe(t *testing.T) {
	p := dsl.Pipe(dsl.String(), codec.DateFromISOString())
	assertSchema(t, transform(p), str("DateFromISOString"))
}

func TestTransform_OverrideAndFallback(t *testing.T) {
	override := func(dsl.Type, bool) *js.Schema { return js.True() }
	fallback := func(dsl.Type) *js.Schema { return js.False() }

	assertSchema(t, js.Transform(dsl.String(), true, js.Config{Override: override}), js.True())
	assertSchema(t, js.Transform(dsl.Function(), true, js.Config{Fallback: fallback}), js.False())
	assertSchema(t, js.Transform(dsl.String(), true, js.Config{Override: override, Fallback: fallback}), js.True())

	var seen []string
	var flags []bool
	spy := func(t dsl.Type, topLevel bool) *js.Schema {
		seen = append(seen, t.Name())
		flags = append(flags, topLevel)
		return nil
	}
	js.Transform(dsl.Array(dsl.String()), true, js.Config{Override: spy})
	if diff := cmp.Diff([]string{"Array<string>", "string"}, seen); diff != "" {
		t.Fatalf("override calls (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]bool{true, true}, flags); diff != "" {
		t.Fatalf("override flags (-want +got):\n%s", diff)
	}
}

func TestTransform_OverrideResultIsNotMutated(t *testing.T) {
	shared := &js.Schema{Type: "object", Properties: map[string]*js.Schema{"a": str("string")}}
	override := func(t dsl.Type, _ bool) *js.Schema {
		if t.Name() == "Shared" {
			return shared
		}
		return nil
	}
	inner := dsl.WithName(dsl.Interface(dsl.F("a", dsl.String())), "Shared")
	got := js.Transform(dsl.Exact(inner), true, js.Config{Override: override})
	if got.MaxProperties == nil || *got.MaxProperties != 1 {
		t.Fatalf("expected exact bounds, got %+v", got)
	}
	if shared.MaxProperties != nil || shared.Description != "" {
		t.Fatalf("override result was mutated: %+v", shared)
	}
}

func TestTransform_RecursiveGoesToFallback(t *testing.T) {
	var tree dsl.Type = dsl.Recursive("Tree", func(self dsl.Type) dsl.Type {
		return dsl.Interface(dsl.F("children", dsl.Array(self)))
	})
	assertSchema(t, transform(tree), &js.Schema{Description: "Tree"})
	assertSchema(t, transform(dsl.Array(tree)), &js.Schema{
		Type:        "array",
		Items:       &js.Schema{Description: "Tree"},
		Description: "Array<Tree>",
	})
}

func TestTransform_Deterministic(t *testing.T) {
	v := dsl.Interface(
		dsl.F("kind", dsl.Union(dsl.Literal("a"), dsl.Union(dsl.Literal("b"), dsl.Literal("a")))),
		dsl.F("tags", dsl.Array(dsl.String())),
		dsl.F("when", dsl.Union(codec.DateFromISOString(), dsl.UndefinedT())),
	)
	first, second := transform(v), transform(v)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("transform is not deterministic:\n%s", diff)
	}
	assertSchema(t, first.Properties["kind"], &js.Schema{
		Type:        "string",
		Enum:        []any{"a", "b"},
		Description: `("a" | ("b" | "a"))`,
	})
}
