package codec

import (
	"math"
	"strconv"
	"strings"

	"github.com/reoring/skema/dsl"
)

// Header and query values arrive as text; these codecs turn them into
// numbers and booleans.

var numberFromString = dsl.NewType("NumberFromString",
	func(v any) bool {
		_, ok := v.(float64)
		return ok
	},
	func(v any, c dsl.Context) (any, dsl.Errors) {
		n, ok := parseNumber(v)
		if !ok {
			return nil, dsl.Failure(v, c, "")
		}
		return n, nil
	},
	func(v any) (any, error) {
		n, ok := v.(float64)
		if !ok {
			return nil, encodeError("NumberFromString", v)
		}
		return strconv.FormatFloat(n, 'f', -1, 64), nil
	},
)

var intFromString = dsl.NewType("IntFromString",
	func(v any) bool {
		_, ok := v.(int64)
		return ok
	},
	func(v any, c dsl.Context) (any, dsl.Errors) {
		n, ok := parseNumber(v)
		if !ok || n != math.Trunc(n) || math.Abs(n) > 1<<53 {
			return nil, dsl.Failure(v, c, "")
		}
		return int64(n), nil
	},
	func(v any) (any, error) {
		n, ok := v.(int64)
		if !ok {
			return nil, encodeError("IntFromString", v)
		}
		return strconv.FormatInt(n, 10), nil
	},
)

var booleanFromString = dsl.NewType("BooleanFromString",
	func(v any) bool {
		_, ok := v.(bool)
		return ok
	},
	func(v any, c dsl.Context) (any, dsl.Errors) {
		switch v {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, dsl.Failure(v, c, "")
	},
	func(v any) (any, error) {
		b, ok := v.(bool)
		if !ok {
			return nil, encodeError("BooleanFromString", v)
		}
		return strconv.FormatBool(b), nil
	},
)

// NumberFromString decodes a numeric string into float64. Blank and
// non-finite input is rejected.
func NumberFromString() *dsl.CustomType { return numberFromString }

// IntFromString decodes an integral numeric string into int64.
func IntFromString() *dsl.CustomType { return intFromString }

// BooleanFromString decodes "true" and "false".
func BooleanFromString() *dsl.CustomType { return booleanFromString }

func parseNumber(v any) (float64, bool) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
