package attrio

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType = "invalid_type"
	CodeRequired    = "required"
	CodeRequiredIf  = "required_if"
	CodeInvalidEnum = "invalid_enum"
	CodeUnknownKey  = "unknown_key"
	CodeParseError  = "parse_error"
	CodeTooShort    = "too_short"
	CodeDuplicate   = "duplicate"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // Dotted context path (for example: $.items.2.price).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: resolved dependency paths, remediation hints.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"expected":"Integer"})
	// for i18n and observability.
	Params map[string]any
}

// String renders the issue as the context path followed by the message.
func (it Issue) String() string {
	if it.Path == "" {
		return it.Message
	}
	return it.Path + " " + it.Message
}

// Issues is a collection of validation entries that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at $.path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Messages renders every issue as a flat human-readable list, each entry
// prefixed with its dotted context path.
func (iss Issues) Messages() []string {
	out := make([]string, 0, len(iss))
	for _, it := range iss {
		out = append(out, it.String())
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// IncompatibleTypeError reports a value that cannot be coerced into the
// declared type. It carries the offending value, the expected type name and
// the dotted context path of the node where coercion failed.
type IncompatibleTypeError struct {
	Path     string
	TypeName string
	Value    any
	Cause    error
}

func (e *IncompatibleTypeError) Error() string {
	msg := fmt.Sprintf("cannot coerce %T (%v) into %s at %s", e.Value, e.Value, e.TypeName, e.Path)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *IncompatibleTypeError) Unwrap() error { return e.Cause }

// incompatible builds the coercion error for a node.
func incompatible(path, typeName string, value any, cause error) error {
	return &IncompatibleTypeError{Path: path, TypeName: typeName, Value: value, Cause: cause}
}

// ConfigError reports a schema-authoring mistake: an unknown or malformed
// attribute option, an illegal option combination, or an unresolvable
// dependency specification. It is surfaced at definition time, never at use
// time.
type ConfigError struct {
	Option string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Option == "" {
		return "invalid attribute configuration: " + e.Reason
	}
	return fmt.Sprintf("invalid attribute option %q: %s", e.Option, e.Reason)
}

// ErrUnknownOption is returned by Type.CheckOption for option names the
// variant does not recognize. The Attribute layer turns it into a ConfigError
// unless the generic registry recognizes the name.
var ErrUnknownOption = errors.New("unknown option")
