package dsl_test

import (
	"math"
	"testing"

	g "github.com/reoring/skema/dsl"
)

func TestPrimitives_IsAndDecode(t *testing.T) {
	cases := []struct {
		name string
		typ  g.Type
		ok   []any
		bad  []any
	}{
		{"null", g.Null(), []any{nil}, []any{g.Undefined, "", 0}},
		{"undefined", g.UndefinedT(), []any{g.Undefined}, []any{nil, ""}},
		{"void", g.Void(), []any{g.Undefined}, []any{nil}},
		{"string", g.String(), []any{"", "x"}, []any{1, nil, g.Undefined}},
		{"number", g.Number(), []any{1, 1.5, int64(2), uint8(3), math.NaN()}, []any{"1", true}},
		{"boolean", g.Boolean(), []any{true, false}, []any{"true", 0}},
		{"UnknownArray", g.UnknownArray(), []any{[]any{}, []string{"a"}}, []any{"abc", map[string]any{}}},
		{"UnknownRecord", g.UnknownRecord(), []any{map[string]any{}, map[string]int{"a": 1}}, []any{[]any{}, nil}},
		{"object", g.Object(), []any{map[string]any{}, []any{}, struct{}{}}, []any{nil, "x", 1}},
		{"unknown", g.Unknown(), []any{nil, g.Undefined, "x"}, nil},
		{"any", g.Any(), []any{nil, 1}, nil},
		{"never", g.Never(), nil, []any{nil, g.Undefined, "x"}},
		{"Function", g.Function(), []any{func() {}}, []any{nil, "f"}},
	}
	for _, tc := range cases {
		if tc.typ.Name() != tc.name {
			t.Fatalf("name: got %q want %q", tc.typ.Name(), tc.name)
		}
		for _, v := range tc.ok {
			if !tc.typ.Is(v) {
				t.Fatalf("%s: expected Is(%v)", tc.name, v)
			}
			if _, errs := g.Decode(tc.typ, v); len(errs) != 0 {
				t.Fatalf("%s: decode %v failed: %v", tc.name, v, errs)
			}
		}
		for _, v := range tc.bad {
			if tc.typ.Is(v) {
				t.Fatalf("%s: expected !Is(%v)", tc.name, v)
			}
			if _, errs := g.Decode(tc.typ, v); len(errs) != 1 {
				t.Fatalf("%s: expected one error for %v, got %v", tc.name, v, errs)
			}
		}
	}
}

func TestLiteral_NamesAndNumericEquality(t *testing.T) {
	if got := g.Literal("literal").Name(); got != `"literal"` {
		t.Fatalf("name: %s", got)
	}
	if got := g.Literal(1).Name(); got != "1" {
		t.Fatalf("name: %s", got)
	}
	if got := g.Literal(true).Name(); got != "true" {
		t.Fatalf("name: %s", got)
	}
	if !g.Literal(1).Is(float64(1)) || !g.Literal(1.0).Is(int64(1)) {
		t.Fatalf("numeric literals should compare across kinds")
	}
	if g.Literal("1").Is(1) {
		t.Fatalf("string literal must not match a number")
	}
}

func TestKeyof(t *testing.T) {
	k := g.Keyof("a", "b")
	if k.Name() != `"a" | "b"` {
		t.Fatalf("name: %s", k.Name())
	}
	if !k.Is("a") || k.Is("c") || k.Is(1) {
		t.Fatalf("unexpected Is result")
	}
}

func TestDecodeFailure_ContextStartsAtRoot(t *testing.T) {
	_, errs := g.Decode(g.String(), 1)
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	c := errs[0].Context
	if len(c) != 1 || c[0].Key != "" || c[0].Type.Name() != "string" || c[0].Actual != 1 {
		t.Fatalf("unexpected context: %+v", c)
	}
	if errs.Error() != "expected string at /" {
		t.Fatalf("error text: %q", errs.Error())
	}
}

func TestNever_EncodeFails(t *testing.T) {
	if _, err := g.Never().Encode("x"); err == nil {
		t.Fatalf("expected encode error")
	}
}
