package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// AsString returns v when it is a string, otherwise "".
func AsString(v any) string {
	s, _ := v.(string)
	return s
}

// AsID stringifies an identity value. Backends send ids as strings or
// numbers; a numeric id is formatted without a decimal point. Anything else
// yields "" and the caller treats the record as having no identity.
func AsID(v any) string {
	switch id := v.(type) {
	case string:
		return strings.TrimSpace(id)
	case float64:
		if math.IsNaN(id) || math.IsInf(id, 0) {
			return ""
		}
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	case json.Number:
		return id.String()
	default:
		return ""
	}
}

// AsNumber coerces v to a finite float64. Numeric strings are parsed;
// NaN and infinities are discarded.
func AsNumber(v any) (float64, bool) {
	var n float64
	switch num := v.(type) {
	case float64:
		n = num
	case int:
		n = float64(num)
	case int64:
		n = float64(num)
	case json.Number:
		f, err := num.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// activeStrings is the allow-list of string values that coerce to an active
// status. Matching is case-insensitive.
var activeStrings = map[string]bool{
	"active":  true,
	"enabled": true,
	"true":    true,
	"1":       true,
}

// Status applies the shared status coercion rule. Backends encode status as
// a boolean, a number, or a free-form string; the boolean result drives
// filtering while the label is what the dashboard displays.
//
// Booleans pass through. The number 1 means active, any other number means
// inactive. Strings are matched case-insensitively against the active
// allow-list to derive the boolean, but a non-empty string is preserved
// verbatim as the label so upstream wording ("Suspended", "paused") is not
// lost. Missing or uncoercible values yield inactive/"Unknown".
func Status(v any) (bool, string) {
	switch s := v.(type) {
	case bool:
		return s, statusLabel(s)
	case float64:
		return s == 1, statusLabel(s == 1)
	case int:
		return s == 1, statusLabel(s == 1)
	case string:
		active := activeStrings[strings.ToLower(strings.TrimSpace(s))]
		if strings.TrimSpace(s) == "" {
			return active, statusLabel(active)
		}
		return active, s
	default:
		return false, "Unknown"
	}
}

func statusLabel(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}

// timeLayouts are tried in order when parsing string timestamps.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses a timestamp value of any supported shape: an RFC 3339
// (or near-RFC 3339) string, or a Unix epoch number in seconds or
// milliseconds.
func ParseTime(v any) (time.Time, bool) {
	switch ts := v.(type) {
	case string:
		s := strings.TrimSpace(ts)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	case float64:
		return epochTime(ts)
	case int64:
		return epochTime(float64(ts))
	case int:
		return epochTime(float64(ts))
	case json.Number:
		f, err := ts.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return epochTime(f)
	default:
		return time.Time{}, false
	}
}

// epochTime interprets n as Unix seconds, or milliseconds when it is too
// large to be a plausible seconds value.
func epochTime(n float64) (time.Time, bool) {
	if math.IsNaN(n) || math.IsInf(n, 0) || n <= 0 {
		return time.Time{}, false
	}
	const msThreshold = 1e12
	if n >= msThreshold {
		return time.UnixMilli(int64(n)).UTC(), true
	}
	return time.Unix(int64(n), 0).UTC(), true
}

// ISOTime coerces a timestamp value to an ISO-8601 (RFC 3339) UTC string,
// or "" when the value does not parse.
func ISOTime(v any) string {
	t, ok := ParseTime(v)
	if !ok {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
