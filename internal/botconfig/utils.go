package botconfig

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// parseToggle reads a stored toggle. Empty means def.
func parseToggle(raw string, def bool) bool {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return def
	}
	switch raw {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func formatToggle(v any) string {
	if toggleValue(v) {
		return "true"
	}
	return "false"
}

func toggleValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return parseToggle(t, false)
	case float64:
		return t != 0
	case int:
		return t != 0
	}
	return false
}

// stringValue flattens a JSON value into the stored text form.
func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
