// Package codec converts between wire representations and domain values used
// by the type variants.
package codec

import "time"

// timeLayouts are tried in order when decoding timestamp text. RFC3339Nano
// also accepts plain RFC3339 input.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Time converts between timestamp strings and time.Time. Decoding is
// permissive across common ISO-8601-like layouts; encoding is canonical UTC
// RFC3339Nano (Go trims trailing zeros).
type Time struct{}

// Decode parses timestamp text, trying each supported layout in order.
func (Time) Decode(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// Encode renders a time in the canonical wire form.
func (Time) Encode(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
