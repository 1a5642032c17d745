package jsonschema_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/skema/dsl"
	js "github.com/reoring/skema/jsonschema"
)

const contentType = "application/json"

func TestFunctionality_UndefinedPossibility(t *testing.T) {
	f := js.NewFunctionality([]string{contentType}, js.Config{})

	cases := []struct {
		in   dsl.Type
		want js.UndefinedPossibility
	}{
		{dsl.UndefinedT(), js.UndefinedAlways},
		{dsl.Union(dsl.String(), dsl.UndefinedT()), js.UndefinedMaybe},
		{dsl.Void(), js.UndefinedMaybe},
		{dsl.String(), js.UndefinedNever},
	}
	for _, tc := range cases {
		if got := f.UndefinedPossibility(tc.in); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.in.Name(), got, tc.want)
		}
	}
	if js.UndefinedNever.Optional() || !js.UndefinedMaybe.Optional() || !js.UndefinedAlways.Optional() {
		t.Fatalf("Optional mismatch")
	}

	if diff := cmp.Diff([]string{contentType}, f.ContentTypes()); diff != "" {
		t.Fatalf("content types (-want +got):\n%s", diff)
	}
	if len(f.Decoders) != 1 || len(f.Encoders) != 1 {
		t.Fatalf("expected one transformation per content type")
	}
}

func TestFunctionality_Transformations(t *testing.T) {
	stringSchema := &js.Schema{Type: "string", Description: "string"}

	cases := []struct {
		name     string
		override *js.Schema
		fallback *js.Schema
	}{
		{name: "plain"},
		{name: "override", override: js.True()},
		{name: "fallback", fallback: js.True()},
		{name: "override and fallback", override: js.True(), fallback: js.False()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var overrideArgs, fallbackArgs []dsl.Type
			var cfg js.Config
			if tc.override != nil {
				cfg.Override = func(v dsl.Type, _ bool) *js.Schema {
					overrideArgs = append(overrideArgs, v)
					return tc.override
				}
			}
			if tc.fallback != nil {
				cfg.Fallback = func(v dsl.Type) *js.Schema {
					fallbackArgs = append(fallbackArgs, v)
					return tc.fallback
				}
			}
			f := js.NewFunctionality([]string{contentType}, cfg)
			all := []func(dsl.Type) *js.Schema{
				func(v dsl.Type) *js.Schema { return f.StringDecoder(v, true) },
				func(v dsl.Type) *js.Schema { return f.StringEncoder(v, true) },
				func(v dsl.Type) *js.Schema { return f.Decoders[contentType](v, true) },
				func(v dsl.Type) *js.Schema { return f.Encoders[contentType](v, true) },
			}

			wantString := stringSchema
			if tc.override != nil {
				wantString = tc.override
			}
			for _, fn := range all {
				if diff := cmp.Diff(wantString, fn(dsl.String())); diff != "" {
					t.Fatalf("string schema (-want +got):\n%s", diff)
				}
			}
			if tc.override != nil && len(overrideArgs) != len(all) {
				t.Fatalf("override called %d times, want %d", len(overrideArgs), len(all))
			}
			if len(fallbackArgs) != 0 {
				t.Fatalf("fallback must not run for strings")
			}

			overrideArgs = nil
			wantFunc := &js.Schema{Description: "Function"}
			switch {
			case tc.override != nil:
				wantFunc = tc.override
			case tc.fallback != nil:
				wantFunc = tc.fallback
			}
			for _, fn := range all {
				if diff := cmp.Diff(wantFunc, fn(dsl.Function())); diff != "" {
					t.Fatalf("function schema (-want +got):\n%s", diff)
				}
			}
			wantFallbackCalls := 0
			if tc.override == nil && tc.fallback != nil {
				wantFallbackCalls = len(all)
			}
			if len(fallbackArgs) != wantFallbackCalls {
				t.Fatalf("fallback called %d times, want %d", len(fallbackArgs), wantFallbackCalls)
			}
		})
	}
}
