package state_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	skema "github.com/reoring/skema"
	"github.com/reoring/skema/dsl"
	"github.com/reoring/skema/state"
)

var user = dsl.Interface(dsl.F("id", dsl.String()))

func newFactory() *state.Factory {
	return state.NewFactory(map[string]dsl.Type{
		"user":    user,
		"db":      dsl.UnknownRecord(),
		"traceID": dsl.Union(dsl.String(), dsl.UndefinedT()),
	})
}

func mustValidator(t *testing.T, names ...string) *state.Validator {
	t.Helper()
	v, err := newFactory().Validator(names...)
	if err != nil {
		t.Fatalf("Validator(%v): %v", names, err)
	}
	return v
}

func TestFactory_Classification(t *testing.T) {
	f := newFactory()
	if diff := cmp.Diff([]string{"db", "traceID", "user"}, f.Names()); diff != "" {
		t.Fatalf("names (-want +got):\n%s", diff)
	}
	if !f.Required("user") || !f.Required("db") || f.Required("traceID") {
		t.Fatalf("required: user=%v db=%v traceID=%v", f.Required("user"), f.Required("db"), f.Required("traceID"))
	}
}

func TestValidator_Success(t *testing.T) {
	v := mustValidator(t, "user", "traceID")
	if diff := cmp.Diff([]string{"user", "traceID"}, v.Properties); diff != "" {
		t.Fatalf("properties (-want +got):\n%s", diff)
	}

	r := v.Validate(map[string]any{"user": map[string]any{"id": "u1"}})
	if !r.OK() {
		t.Fatalf("unexpected failure: %s", r.HumanReadableMessage())
	}
	if diff := cmp.Diff(map[string]any{"user": map[string]any{"id": "u1"}}, r.Data); diff != "" {
		t.Fatalf("data (-want +got):\n%s", diff)
	}
	if len(r.ErroneousProperties) != 0 {
		t.Fatalf("erroneous = %v", r.ErroneousProperties)
	}

	r = v.Validate(map[string]any{"user": map[string]any{"id": "u1"}, "traceID": "t"})
	if !r.OK() || r.Data["traceID"] != "t" {
		t.Fatalf("traceID: %+v", r.Data)
	}
}

func TestValidator_ErroneousProperties(t *testing.T) {
	v := mustValidator(t)

	cases := []struct {
		name  string
		input any
		want  []string
	}{
		{"missing and mistyped", map[string]any{"user": map[string]any{"id": 1}, "traceID": 5}, []string{"db", "user", "traceID"}},
		// Properties that passed are left out.
		{"only failures", map[string]any{"db": map[string]any{}, "traceID": dsl.Undefined, "user": "nope"}, []string{"user"}},
		{"not an object", "not an object", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := v.Validate(tc.input)
			if r.Kind != skema.StructuralError || r.HumanReadableMessage() == "" {
				t.Fatalf("kind = %v, message = %q", r.Kind, r.HumanReadableMessage())
			}
			if diff := cmp.Diff(tc.want, r.ErroneousProperties); diff != "" {
				t.Fatalf("erroneous (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFactory_UnknownProperty(t *testing.T) {
	_, err := newFactory().Validator("user", "session")
	if !errors.Is(err, state.ErrUnknownProperty) || !strings.Contains(err.Error(), `"session"`) {
		t.Fatalf("err = %v", err)
	}
}

func TestValidator_DuplicateNames(t *testing.T) {
	v := mustValidator(t, "user", "user")
	if diff := cmp.Diff([]string{"user"}, v.Properties); diff != "" {
		t.Fatalf("properties (-want +got):\n%s", diff)
	}
}
