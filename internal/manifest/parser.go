package manifest

import (
	"encoding/json"
	"fmt"
)

// ParseObject parses manifest bytes. The top level must be a JSON object.
func ParseObject(data []byte, origin string) (map[string]any, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", origin, err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: Manifest files must have a top-level object", origin)
	}
	return obj, nil
}
