package content

import "fmt"

// Normalize converts the map[interface{}]interface{} values produced by the
// YAML decoder into map[string]any, recursively, so raw records only contain
// string-keyed maps.
func Normalize(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalizeValue(val)
		}
		return m
	case map[string]any:
		return Normalize(t)
	case []any:
		list := make([]any, len(t))
		for i, val := range t {
			list[i] = normalizeValue(val)
		}
		return list
	default:
		return v
	}
}
