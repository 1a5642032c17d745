package skema_test

import (
	"math"
	"testing"

	skema "github.com/reoring/skema"
	"github.com/reoring/skema/dsl"
	"github.com/reoring/skema/i18n"
)

func TestHumanReadableMessage_SingleEntry(t *testing.T) {
	_, errs := dsl.Decode(dsl.Number(), "not-a-number")
	got := skema.HumanReadableMessage(errs)
	if got != `Invalid value "not-a-number" supplied to : number` {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestHumanReadableMessage_NestedPathAndJoin(t *testing.T) {
	u := dsl.Interface(dsl.F("a", dsl.String()), dsl.F("b", dsl.Number()))
	_, errs := dsl.Decode(u, map[string]any{"a": 1})
	got := skema.HumanReadableMessage(errs)
	want := "Invalid value 1 supplied to : { a: string, b: number }/a: string" +
		"  \n" +
		"Invalid value undefined supplied to : { a: string, b: number }/b: number"
	if got != want {
		t.Fatalf("unexpected message:\n%q\nwant\n%q", got, want)
	}
}

func TestHumanReadableMessage_MessageWins(t *testing.T) {
	errs := dsl.Errors{{Value: 1, Message: "custom"}}
	if got := skema.HumanReadableMessage(errs); got != "custom" {
		t.Fatalf("unexpected message %q", got)
	}
}

func namedFunc() {}

func TestRenderValue(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{dsl.Undefined, "undefined"},
		{nil, "null"},
		{"x", `"x"`},
		{map[string]any{"a": 1, "b": dsl.Undefined}, `{"a":1}`},
		{namedFunc, "github.com/reoring/skema_test.namedFunc"},
	}
	for _, tc := range cases {
		if got := skema.RenderValue(tc.in); got != tc.want {
			t.Fatalf("RenderValue(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRenderValue_Cycle(t *testing.T) {
	m := map[string]any{"a": 1}
	m["self"] = m
	if got := skema.RenderValue(m); got != "<map[string]interface {} with a cycle>" {
		t.Fatalf("RenderValue(cyclic map) = %q", got)
	}

	r := skema.FromDecoder(dsl.String())(m)
	want := "Invalid value <map[string]interface {} with a cycle> supplied to : string"
	if got := r.HumanReadableMessage(); got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}
}

type countingTranslator struct{ calls int }

func (c *countingTranslator) Message(code string, _ map[string]string) string {
	c.calls++
	return code
}

func TestMessageIsLazyAndMemoized(t *testing.T) {
	tr := &countingTranslator{}
	i18n.SetTranslator(tr)
	defer i18n.SetTranslator(nil)

	r := skema.FromDecoder(dsl.Number())("x")
	if tr.calls != 0 {
		t.Fatalf("message rendered before it was requested")
	}
	first := r.HumanReadableMessage()
	second := r.HumanReadableMessage()
	if first != second || first != i18n.CodeInvalidValue {
		t.Fatalf("unexpected messages %q / %q", first, second)
	}
	if tr.calls != 1 {
		t.Fatalf("expected a single render, got %d", tr.calls)
	}
}
