package attrio

import (
	"context"
	"strconv"
)

// Type is the contract every data-shape variant implements. The variant set
// is closed: Integer, Float, String, Boolean, Time, Any, Collection and
// Record. Values flowing through a Type are canonical: int64, float64,
// string, bool, time.Time, []any (collections) and map[string]any (records).
type Type interface {
	// Name returns the human-readable type name used in error messages and
	// Describe output.
	Name() string

	// Load coerces a loosely-typed input into the canonical value for this
	// variant. nil input loads to nil ("no value") and is not an error;
	// absence is judged later by validation. Irreconcilable inputs return
	// *IncompatibleTypeError carrying the offending value and path.
	Load(ctx context.Context, raw any, path string) (any, error)

	// ValidType reports whether v structurally belongs to this variant. It
	// backs both defensive validation and option sanity checks (defaults and
	// example hints must satisfy it).
	ValidType(v any) bool

	// Validate runs variant-specific structural checks beyond basic type
	// membership. Containers recurse into members/fields, qualifying issue
	// paths with the element index or field name.
	Validate(ctx context.Context, v any, path string, a *Attribute) Issues

	// Dump serializes a canonical value back to a transport-friendly form.
	Dump(v any) any

	// Describe returns structured metadata: the type name and, for
	// containers, recursively described member/field metadata. Example data
	// is included only when an example value is explicitly supplied.
	Describe(example any) map[string]any

	// Example synthesizes a pseudo-random value. A non-empty path seeds the
	// random source from a stable hash of the path so identical contexts
	// always produce identical examples.
	Example(path string, opts map[string]any) any

	// CheckOption lets a variant accept type-specific options the generic
	// Attribute layer does not know about. It returns ErrUnknownOption for
	// unrecognized names and a descriptive error for recognized names with
	// invalid values.
	CheckOption(name string, value any) error
}

// RootContext is the dotted path of a document root.
const RootContext = "$"

// childContext appends a segment to a dotted context path.
func childContext(path, segment string) string {
	if path == "" {
		return segment
	}
	return path + "." + segment
}

// indexContext appends a collection index to a dotted context path.
func indexContext(path string, i int) string {
	return childContext(path, strconv.Itoa(i))
}
