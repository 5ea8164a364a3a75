package exporter

import (
	"strconv"
	"strings"
	"time"

	"surveypulse/internal/shared"
)

// formatFloat formats a float64 value without trailing zeros
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return strconv.Itoa(i)
}

// formatBool formats a boolean value for CSV output
func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// formatTime renders an optional timestamp as RFC 3339 in UTC
func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// formatCell renders a stored cell for text output
func formatCell(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case float64:
		return formatFloat(val)
	case int:
		return formatInt(val)
	case bool:
		return formatBool(val)
	default:
		return shared.Stringify(val)
	}
}

// formatAnswer converts an answer value to a cell. Lists are joined with
// ", ", mappings become compact JSON and numbers stay numeric.
func formatAnswer(v interface{}) interface{} {
	switch val := v.(type) {
	case nil:
		return ""
	case float64:
		return val
	case int:
		return float64(val)
	case []interface{}:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, shared.Stringify(item))
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(val, ", ")
	case map[string]interface{}:
		s, err := shared.CompactJSON(val)
		if err != nil {
			return shared.Stringify(val)
		}
		return s
	default:
		return shared.Stringify(val)
	}
}
