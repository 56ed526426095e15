package results

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Dig walks a decoded JSON document along a dotted path. Numeric segments
// index into arrays, so "results.bindings.0.value" reads the first binding.
func Dig(data interface{}, path string) (interface{}, bool) {
	if path == "" {
		return nil, false
	}

	current := data
	for _, part := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]interface{}:
			next, ok := node[part]
			if !ok {
				return nil, false
			}
			current = next
		case []interface{}:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			current = node[i]
		default:
			return nil, false
		}
	}

	return current, true
}

// DigString decodes body as JSON and returns the string at path.
// A body that is not JSON, a missing step or a non-string leaf all yield false.
func DigString(body []byte, path string) (string, bool) {
	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", false
	}

	value, ok := Dig(doc, path)
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}
