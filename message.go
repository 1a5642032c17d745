package skema

import (
	"fmt"
	"math"
	"reflect"
	"runtime"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/reoring/skema/dsl"
	"github.com/reoring/skema/i18n"
)

// entrySeparator joins rendered entries; the two trailing spaces make a
// Markdown line break.
const entrySeparator = "  \n"

// HumanReadableMessage renders errs one entry per line. An entry with a
// Message renders as that message; otherwise as
// `Invalid value <value> supplied to <key: Type>/<key: Type>/...`.
func HumanReadableMessage(errs dsl.Errors) string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = renderEntry(e)
	}
	return strings.Join(lines, entrySeparator)
}

func renderEntry(e dsl.ValidationError) string {
	if e.Message != "" {
		return e.Message
	}
	return i18n.T(i18n.CodeInvalidValue, map[string]string{
		"value": RenderValue(e.Value),
		"path":  renderPath(e.Context),
	})
}

func renderPath(c dsl.Context) string {
	parts := make([]string, len(c))
	for i, entry := range c {
		name := "unknown"
		if entry.Type != nil {
			name = entry.Type.Name()
		}
		parts[i] = entry.Key + ": " + name
	}
	return strings.Join(parts, "/")
}

// RenderValue prints v the way error messages show offending values: funcs by
// name, non-finite floats spelled out, Undefined as "undefined", everything
// else as JSON.
func RenderValue(v any) string {
	if dsl.IsUndefined(v) {
		return "undefined"
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func:
		if rv.IsNil() {
			return "null"
		}
		if fn := runtime.FuncForPC(rv.Pointer()); fn != nil {
			return fn.Name()
		}
		return "<function>"
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		switch {
		case math.IsNaN(f):
			return "NaN"
		case math.IsInf(f, 1):
			return "Infinity"
		case math.IsInf(f, -1):
			return "-Infinity"
		}
	}
	data, err := dsl.StripUndefined(v)
	if err != nil {
		return fmt.Sprintf("<%T with a cycle>", v)
	}
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
