package util

import (
	"strconv"
	"strings"
)

// StringArg returns a trimmed string argument, or "" when absent or not a string
func StringArg(arguments map[string]interface{}, key string) string {
	v, _ := arguments[key].(string)
	return strings.TrimSpace(v)
}

// StringSliceArg accepts a JSON array of strings or a comma separated string
func StringSliceArg(arguments map[string]interface{}, key string) []string {
	switch v := arguments[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			out = append(out, strings.TrimSpace(p))
		}
		return out
	}
	return nil
}

// IntArg reads a number argument. JSON numbers arrive as float64; numeric strings are accepted too.
func IntArg(arguments map[string]interface{}, key string) (int, bool) {
	switch v := arguments[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
