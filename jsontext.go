package attrio

import (
	"bytes"

	j "github.com/goccy/go-json"
)

// decodeJSONText decodes a JSON document into the raw any shape Load
// consumes: numbers as json.Number, objects as map[string]any, arrays as
// []any.
func decodeJSONText(data []byte) (any, error) {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
