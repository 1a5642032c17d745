package codec

import (
	"fmt"
	"time"

	"github.com/reoring/skema/dsl"
)

var dateFromISOString = dsl.NewType("DateFromISOString",
	func(v any) bool {
		_, ok := v.(time.Time)
		return ok
	},
	func(v any, c dsl.Context) (any, dsl.Errors) {
		s, ok := v.(string)
		if !ok {
			return nil, dsl.Failure(v, c, "")
		}
		t, err := parseRFC3339(s)
		if err != nil {
			return nil, dsl.Failure(v, c, "")
		}
		return t, nil
	},
	func(v any) (any, error) {
		t, ok := v.(time.Time)
		if !ok {
			return nil, encodeError("DateFromISOString", v)
		}
		return formatRFC3339Canonical(t), nil
	},
)

// DateFromISOString decodes RFC 3339 strings into time.Time and encodes them
// back in UTC with millisecond precision.
func DateFromISOString() *dsl.CustomType { return dateFromISOString }

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

func formatRFC3339Canonical(t time.Time) string {
	return t.UTC().Format(isoMillis)
}

func encodeError(codec string, v any) error {
	return fmt.Errorf("codec: %s cannot encode %T", codec, v)
}
