// Package source decodes JSON and YAML documents into the raw any shape the
// core Load path consumes: numbers as json.Number, objects as
// map[string]any, arrays as []any.
package source

import (
	"bytes"
	"fmt"
	"io"

	j "github.com/goccy/go-json"
)

// JSONBytes decodes one JSON document from a byte slice.
func JSONBytes(data []byte) (any, error) {
	return JSONReader(bytes.NewReader(data))
}

// JSONString decodes one JSON document from a string.
func JSONString(s string) (any, error) {
	return JSONBytes([]byte(s))
}

// JSONReader decodes one JSON document from a reader.
func JSONReader(r io.Reader) (any, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decoding JSON document: %w", err)
	}
	return v, nil
}
