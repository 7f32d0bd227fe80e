package table

import (
	"strconv"
	"strings"
	"time"
)

// AsString renders a cell for string processing. Floats are rendered without
// a trailing ".0" so spreadsheet numeric artifacts do not leak into derived
// text columns. Dates render as yyyy-mm-dd.
func AsString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format("2006-01-02")
	default:
		return ""
	}
}

// AsFloat coerces a cell to a number. Strings are parsed after trimming,
// accepting the comma decimal separator these exports use.
func AsFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}

		f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
		if err != nil {
			return 0, false
		}

		return f, true
	default:
		return 0, false
	}
}

// IsBlank reports whether a cell is absent or holds only whitespace.
func IsBlank(v any) bool {
	if v == nil {
		return true
	}

	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}

	return false
}
