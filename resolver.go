package attrio

import (
	"context"
	"reflect"
	"strconv"
	"strings"
)

// Dependency describes a required_if rule: a key path to another node in the
// same document plus an optional predicate over that node's value.
//
// KeyPath is absolute when prefixed with the "$." root marker, otherwise it
// is resolved relative to the parent of the current validation context.
// Exactly one predicate form applies: Fn when set, otherwise equality with
// Value when set, otherwise plain presence.
type Dependency struct {
	KeyPath string
	Value   any
	Fn      func(any) bool
}

// absolute reports whether the key path carries the root marker.
func (d *Dependency) absolute() bool {
	return d.KeyPath == RootContext || strings.HasPrefix(d.KeyPath, RootContext+".")
}

// Resolver answers cross-field conditional-requirement queries against the
// root value of the document currently being validated. Instances are scoped
// to one top-level Validate call and carried down the call tree on
// context.Context; independent validations never observe each other's
// documents.
type Resolver struct {
	root any
}

// NewResolver binds a resolver to the document root.
func NewResolver(root any) *Resolver { return &Resolver{root: root} }

// Check resolves the dependency's key path against the current context path
// and evaluates its predicate on the value actually present at that path.
// An absent node is never satisfied.
func (r *Resolver) Check(contextPath string, dep *Dependency) bool {
	if r == nil || dep == nil {
		return false
	}
	node, ok := lookupPath(r.root, AbsoluteKeyPath(contextPath, dep.KeyPath))
	if !ok || node == nil {
		return false
	}
	switch {
	case dep.Fn != nil:
		return dep.Fn(node)
	case dep.Value != nil:
		return valueEqual(node, dep.Value)
	default:
		return true
	}
}

// Lookup resolves the key path against the current context path and returns
// the node actually present there. Cross-field rules use it to inspect
// arbitrary parts of the document.
func (r *Resolver) Lookup(contextPath, keyPath string) (any, bool) {
	if r == nil {
		return nil, false
	}
	return lookupPath(r.root, AbsoluteKeyPath(contextPath, keyPath))
}

// AbsoluteKeyPath resolves keyPath against contextPath: absolute paths pass
// through unchanged; relative paths are anchored at the parent of the
// current context (the last segment is chopped off and the key path
// appended).
func AbsoluteKeyPath(contextPath, keyPath string) string {
	d := Dependency{KeyPath: keyPath}
	if d.absolute() {
		return keyPath
	}
	return childContext(parentContext(contextPath), keyPath)
}

func parentContext(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return RootContext
	}
	return path[:i]
}

// lookupPath walks an absolute dotted path through maps and slices.
func lookupPath(root any, abs string) (any, bool) {
	segs := strings.Split(abs, ".")
	if len(segs) == 0 || segs[0] != RootContext {
		return nil, false
	}
	node := root
	for _, seg := range segs[1:] {
		switch cur := node.(type) {
		case map[string]any:
			v, ok := cur[seg]
			if !ok {
				return nil, false
			}
			node = v
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(cur) {
				return nil, false
			}
			node = cur[i]
		default:
			return nil, false
		}
	}
	return node, true
}

// valueEqual compares a document node with an authored literal. Dependency
// literals are never coerced through the referenced field's type (the
// attribute cannot know it), so numbers are normalized here: an int literal
// matches the canonical int64 the Integer variant loads.
func valueEqual(a, b any) bool {
	ai, aInt := asCanonicalInt(a)
	bi, bInt := asCanonicalInt(b)
	if aInt && bInt {
		return ai == bi
	}
	af, aNum := asCanonicalFloat(a)
	bf, bNum := asCanonicalFloat(b)
	if aNum && bNum {
		return af == bf
	}
	if a == b {
		return true
	}
	return reflect.DeepEqual(a, b)
}

func asCanonicalInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

func asCanonicalFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

type contextKey int

const _ctxKeyResolver contextKey = iota

// WithResolver returns a child context carrying the resolver for the current
// validation run. It is set by the top-level Validate call and consumed by
// nested attribute validations.
func WithResolver(ctx context.Context, r *Resolver) context.Context {
	return context.WithValue(ctx, _ctxKeyResolver, r)
}

// ResolverFrom returns the resolver bound to the current validation run, or
// nil outside one.
func ResolverFrom(ctx context.Context) *Resolver {
	r, _ := ctx.Value(_ctxKeyResolver).(*Resolver)
	return r
}
