package source

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLBytes decodes one YAML document into the same raw shape as the JSON
// helpers (yaml.v3 produces map[string]any / []any directly).
func YAMLBytes(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decoding YAML document: %w", err)
	}
	return v, nil
}

// YAMLString decodes one YAML document from a string.
func YAMLString(s string) (any, error) {
	return YAMLBytes([]byte(s))
}
