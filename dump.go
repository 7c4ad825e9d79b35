package attrio

import (
	j "github.com/goccy/go-json"
)

// DumpJSON serializes a canonical value through the attribute's Dump and
// renders the result as JSON text.
func DumpJSON(a *Attribute, v any) ([]byte, error) {
	return j.Marshal(a.Dump(v))
}
