package backend_test

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"

	skema "github.com/reoring/skema"
	"github.com/reoring/skema/backend"
	"github.com/reoring/skema/codec"
	"github.com/reoring/skema/dsl"
)

func TestDefaultParameterRegExp(t *testing.T) {
	re := backend.DefaultParameterRegExp()
	if re.String() != "[^/]+" || re.FindString("abc/def") != "abc" {
		t.Fatalf("default pattern = %s", re)
	}
}

func TestURLParameter(t *testing.T) {
	p := backend.URLParameter("id", codec.IntFromString(), nil)
	if p.Name != "id" || p.RegExp != backend.DefaultParameterRegExp() {
		t.Fatalf("parameter = %+v", p)
	}

	r := p.Validator("42")
	wantKind(t, r, skema.Success)
	if r.Data != int64(42) {
		t.Fatalf("data = %#v", r.Data)
	}
	wantKind(t, p.Validator("x"), skema.StructuralError)

	custom := regexp.MustCompile(`\d+`)
	if got := backend.URLParameter("id", codec.IntFromString(), custom).RegExp; got != custom {
		t.Fatalf("custom pattern not kept: %s", got)
	}
}

func TestURLParameters(t *testing.T) {
	digits := regexp.MustCompile(`\d+`)
	spec := backend.URLParameters(map[string]backend.URLParameterInfo{
		"id":   {Decoder: codec.IntFromString(), RegExp: digits},
		"slug": {Decoder: dsl.String()},
	})
	if spec.Metadata["id"].RegExp != digits || spec.Metadata["slug"].RegExp != backend.DefaultParameterRegExp() {
		t.Fatalf("metadata = %+v", spec.Metadata)
	}

	values, failed := spec.Validate(map[string]any{"id": "7", "slug": "hello"})
	if failed != nil {
		t.Fatalf("unexpected failures: %v", failed)
	}
	if diff := cmp.Diff(map[string]any{"id": int64(7), "slug": "hello"}, values); diff != "" {
		t.Fatalf("values (-want +got):\n%s", diff)
	}

	_, failed = spec.Validate(map[string]any{"id": "7"})
	r, ok := failed["slug"]
	if !ok {
		t.Fatalf("missing slug should fail: %v", failed)
	}
	wantMessage(t, r, `URL parameter "slug" is mandatory.`)
}
