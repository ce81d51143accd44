package session

import (
	"fmt"
	"sort"
	"strings"
)

// formatResult renders a provider result value into the human-readable
// message stored on a success call record.
func formatResult(res any) string {
	switch v := res.(type) {
	case nil:
		return "API returned an empty result for this call"
	case string:
		if v == "" {
			return "API returned an empty result for this call"
		}
		return v
	case map[string]any, []any:
		parts := flatten(v)
		if len(parts) == 0 {
			return "API returned an empty result for this call"
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}

// flatten collapses nested maps and lists into their leaf values. Map
// entries are visited in sorted key order so messages are deterministic.
func flatten(v any) []string {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var out []string
		for _, k := range keys {
			out = append(out, flatten(val[k])...)
		}
		return out
	case []any:
		var out []string
		for _, item := range val {
			out = append(out, flatten(item)...)
		}
		return out
	case nil:
		return nil
	case string:
		return []string{val}
	default:
		return []string{fmt.Sprint(val)}
	}
}
