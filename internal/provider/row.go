package provider

import (
	"math"
	"strconv"
	"strings"
)

// Row is one record from a tabular upstream result set, keyed by uppercased
// column name. The provider renames columns between endpoint versions
// (TEAMID vs TEAM_ID vs TeamId), so lookups go through Pick with an ordered
// alias list instead of direct map access.
type Row map[string]any

// NewRow zips a result set's headers and one value row into a Row.
// Header casing is normalized to uppercase so alias lists stay short.
func NewRow(headers []string, values []any) Row {
	row := make(Row, len(headers))
	for i, h := range headers {
		if i >= len(values) {
			break
		}
		row[strings.ToUpper(strings.TrimSpace(h))] = values[i]
	}
	return row
}

// Pick returns the first non-nil value found under any of the given keys.
// Keys are tried in order; the alias priority per logical field is fixed at
// the call site.
func (r Row) Pick(keys ...string) any {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// PickString returns the first non-nil value under the given keys as a
// trimmed string, or "" when absent.
func (r Row) PickString(keys ...string) string {
	v := r.Pick(keys...)
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(stringify(v))
}

// ToInt converts an upstream value to an integer where possible.
// Blank, "nan", null, and non-numeric inputs all degrade to nil — data
// quality problems never abort ingestion.
func ToInt(val any) *int {
	switch v := val.(type) {
	case nil:
		return nil
	case int:
		return &v
	case int64:
		n := int(v)
		return &n
	case float64:
		if math.IsNaN(v) || v != math.Trunc(v) {
			return nil
		}
		n := int(v)
		return &n
	case string:
		s := strings.TrimSpace(v)
		if s == "" || strings.EqualFold(s, "nan") {
			return nil
		}
		if isDigits(strings.TrimPrefix(s, "-")) {
			n, err := strconv.Atoi(s)
			if err != nil {
				return nil
			}
			return &n
		}
		return nil
	default:
		return nil
	}
}

// ToSignedInt is ToInt extended to accept a leading "+", the form some
// payloads use for plus-minus ("+12").
func ToSignedInt(val any) *int {
	if s, ok := val.(string); ok {
		return ToInt(strings.TrimPrefix(strings.TrimSpace(s), "+"))
	}
	return ToInt(val)
}

// ToFloat converts an upstream value to a float where possible, with the
// same degrade-to-nil policy as ToInt.
func ToFloat(val any) *float64 {
	switch v := val.(type) {
	case nil:
		return nil
	case float64:
		if math.IsNaN(v) {
			return nil
		}
		return &v
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	case string:
		s := strings.TrimSpace(v)
		if s == "" || strings.EqualFold(s, "nan") {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == math.Trunc(t) && !math.IsInf(t, 0) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
