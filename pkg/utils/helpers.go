package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParseValue coerces numeric-looking text to a number and returns any other
// text unchanged (trimmed).
func ParseValue(s string) interface{} {
	// Trim whitespace first
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}

	// try int
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	// try float
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) {
		return f
	}
	return s
}

// Numeric safely converts supported types to float64.
func Numeric(v interface{}) float64 {
	f, _ := ToFloat(v)
	return f
}

// ToFloat converts numbers and numeric strings to float64. The second return
// is false when v has no numeric reading.
func ToFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case nil:
		return 0, false
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case float64:
		if math.IsNaN(val) {
			return 0, false
		}
		return val, true
	case float32:
		return float64(val), true
	case json.Number:
		return ToFloat(val.String())
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() >= reflect.Int && rv.Kind() <= reflect.Float64 {
			return rv.Convert(reflect.TypeOf(float64(0))).Float(), true
		}
		return 0, false
	}
}

// IsEmpty reports whether v carries no usable value: nil, blank text or zero.
func IsEmpty(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	}
	if f, ok := ToFloat(v); ok {
		return f == 0
	}
	return false
}

// String renders a scalar for keys and display. Whole floats print without a
// fraction so 123.0 and "123" produce the same key.
func String(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1e15 {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// RoundHalfUp rounds to the nearest integer with halves going up.
func RoundHalfUp(f float64) float64 {
	return math.Floor(f + 0.5)
}

// RoundTo rounds to the given number of decimals, halves going up.
func RoundTo(f float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return RoundHalfUp(f*p) / p
}

var nonIdentifierChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// SanitizeIdentifier replaces every non-alphanumeric character with '_'.
func SanitizeIdentifier(s string) string {
	return nonIdentifierChars.ReplaceAllString(s, "_")
}

// Layouts seen in Meta exports and spreadsheet re-saves, most specific first.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"1/2/2006 15:04",
	"1/2/2006",
	"02.01.2006 15:04",
	"02.01.2006",
}

// ParseDate reads a publish date. Strings are tried against the known
// layouts in UTC; numbers are milliseconds since the Unix epoch.
func ParseDate(v interface{}) (time.Time, bool) {
	switch val := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return val, !val.IsZero()
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	}
	if ms, ok := ToFloat(v); ok && ms > 0 {
		return time.UnixMilli(int64(ms)).UTC(), true
	}
	return time.Time{}, false
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
