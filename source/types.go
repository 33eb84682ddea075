package source

import (
	"strconv"
	"strings"
)

// Typed value conversion shared by Map and Composite. Conversions are
// lenient: a value that cannot be converted behaves like an unset key.

// stringValue returns the string form of a key's value, or "" if unset.
func stringValue(s Source, key string) string {
	val, ok := s.Get(key)
	if !ok || val == nil {
		return ""
	}

	switch v := val.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return ""
	}
}

// boolValue returns the boolean form of a key's value, or def.
func boolValue(s Source, key string, def bool) bool {
	val, ok := s.Get(key)
	if !ok || val == nil {
		return def
	}

	switch v := val.(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return def
		}
		return b
	default:
		return def
	}
}

// longValue returns the integer form of a key's value, or def.
func longValue(s Source, key string, def int64) int64 {
	val, ok := s.Get(key)
	if !ok || val == nil {
		return def
	}

	switch v := val.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return def
		}
		return n
	default:
		return def
	}
}

// listValue returns the list form of a key's value, or nil if unset.
// String values are split on commas with surrounding whitespace trimmed.
func listValue(s Source, key string) []string {
	val, ok := s.Get(key)
	if !ok || val == nil {
		return nil
	}

	switch v := val.(type) {
	case []string:
		result := make([]string, len(v))
		copy(result, v)
		return result
	case []any:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				result = append(result, str)
			}
		}
		return result
	case string:
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	default:
		return nil
	}
}
