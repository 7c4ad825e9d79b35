// Package rules provides cross-field rule combinators that run against a
// loaded canonical value, complementing the per-attribute required_if option
// with document-level invariants (conditional rule sets, minimum element
// counts, uniqueness by key).
package rules

import (
	"context"
	"fmt"
	"strconv"

	attrio "github.com/attrio/attrio"
	"github.com/attrio/attrio/i18n"
)

// Rule checks one document-level invariant against a loaded canonical value
// and reports violations as issues.
type Rule func(ctx context.Context, v any) attrio.Issues

// Apply runs rules against a loaded value and concatenates their issues. It
// binds a dependency resolver to the value when the context does not carry
// one yet, so rules and nested lookups observe the same document.
func Apply(ctx context.Context, v any, rules ...Rule) attrio.Issues {
	if attrio.ResolverFrom(ctx) == nil {
		ctx = attrio.WithResolver(ctx, attrio.NewResolver(v))
	}
	var out attrio.Issues
	for _, r := range rules {
		if r == nil {
			continue
		}
		out = append(out, r(ctx, v)...)
	}
	return out
}

// And executes all rules and concatenates their issues.
func And(rules ...Rule) Rule {
	return func(ctx context.Context, v any) attrio.Issues {
		var out attrio.Issues
		for _, r := range rules {
			if r == nil {
				continue
			}
			out = append(out, r(ctx, v)...)
		}
		return out
	}
}

// Or succeeds if any rule reports no issues. When every branch fails, the
// branch with the fewest issues is reported.
func Or(rules ...Rule) Rule {
	return func(ctx context.Context, v any) attrio.Issues {
		var best attrio.Issues
		bestSet := false
		for _, r := range rules {
			if r == nil {
				continue
			}
			iss := r(ctx, v)
			if len(iss) == 0 {
				return nil
			}
			if !bestSet || len(iss) < len(best) {
				best = iss
				bestSet = true
			}
		}
		return best
	}
}

// Op defines comparison operators for If conditions.
type Op int

const (
	Eq Op = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

// Conditional gates a rule set on the value at a key path. Key paths use the
// same dotted form as required_if dependencies: absolute when prefixed with
// "$.", otherwise resolved from the document root.
type Conditional struct {
	keyPath string
	op      Op
	want    any
	all     []Conditional
	anyOf   []Conditional
}

// If builds a conditional that compares the node at keyPath with want.
func If(keyPath string, op Op, want any) Conditional {
	return Conditional{keyPath: keyPath, op: op, want: want}
}

// IfAll requires every condition to hold.
func IfAll(conds ...Conditional) Conditional { return Conditional{all: conds} }

// IfAny requires at least one condition to hold.
func IfAny(conds ...Conditional) Conditional { return Conditional{anyOf: conds} }

// And combines the receiver with additional conditions using logical AND.
func (c Conditional) And(others ...Conditional) Conditional {
	return IfAll(append([]Conditional{c}, others...)...)
}

// Or combines the receiver with additional conditions using logical OR.
func (c Conditional) Or(others ...Conditional) Conditional {
	return IfAny(append([]Conditional{c}, others...)...)
}

// Then attaches rules that run only when the condition is satisfied.
func (c Conditional) Then(rules ...Rule) Rule {
	return func(ctx context.Context, v any) attrio.Issues {
		if !c.eval(ctx) {
			return nil
		}
		return And(rules...)(ctx, v)
	}
}

func (c Conditional) eval(ctx context.Context) bool {
	if len(c.all) > 0 {
		for _, it := range c.all {
			if !it.eval(ctx) {
				return false
			}
		}
		return true
	}
	if len(c.anyOf) > 0 {
		for _, it := range c.anyOf {
			if it.eval(ctx) {
				return true
			}
		}
		return false
	}
	node, ok := attrio.ResolverFrom(ctx).Lookup(attrio.RootContext, c.keyPath)
	if !ok {
		return false
	}
	return compare(node, c.op, c.want)
}

// AtLeastOne requires the collection at keyPath to carry at least min
// elements. An absent or non-collection node reports nothing; presence is the
// attribute layer's concern.
func AtLeastOne(keyPath string, min int) Rule {
	return func(ctx context.Context, v any) attrio.Issues {
		node, ok := attrio.ResolverFrom(ctx).Lookup(attrio.RootContext, keyPath)
		if !ok {
			return nil
		}
		list, ok := node.([]any)
		if !ok || len(list) >= min {
			return nil
		}
		m := strconv.Itoa(min)
		return attrio.Issues{{
			Path:    attrio.AbsoluteKeyPath(attrio.RootContext, keyPath),
			Code:    attrio.CodeTooShort,
			Message: i18n.T(attrio.CodeTooShort, map[string]string{"min": m}),
			Params:  map[string]any{"min": min, "len": len(list)},
		}}
	}
}

// UniqueBy requires elements of the collection at collectionPath to carry
// distinct values under key. Keys are stringified for comparison, so schemas
// should coerce the keyed field to a single canonical type.
func UniqueBy(collectionPath, key string) Rule {
	return func(ctx context.Context, v any) attrio.Issues {
		node, ok := attrio.ResolverFrom(ctx).Lookup(attrio.RootContext, collectionPath)
		if !ok {
			return nil
		}
		list, ok := node.([]any)
		if !ok {
			return nil
		}
		abs := attrio.AbsoluteKeyPath(attrio.RootContext, collectionPath)
		seen := map[string]int{}
		var out attrio.Issues
		for i, el := range list {
			m, ok := el.(map[string]any)
			if !ok {
				continue
			}
			kv, present := m[key]
			if !present || kv == nil {
				continue
			}
			ks := fmt.Sprint(kv)
			if first, dup := seen[ks]; dup {
				out = append(out, attrio.Issue{
					Path:    abs + "." + strconv.Itoa(i) + "." + key,
					Code:    attrio.CodeDuplicate,
					Message: i18n.T(attrio.CodeDuplicate, map[string]string{"key": key}),
					Params:  map[string]any{"key": key, "first": first, "dup": i},
				})
			} else {
				seen[ks] = i
			}
		}
		return out
	}
}

// compare evaluates canonical nodes against authored literals. Numbers are
// normalized before ordering so int literals match int64 nodes.
func compare(node any, op Op, want any) bool {
	switch op {
	case Eq:
		return looseEqual(node, want)
	case Ne:
		return !looseEqual(node, want)
	}
	if a, b, ok := bothInt(node, want); ok {
		switch op {
		case Lt:
			return a < b
		case Le:
			return a <= b
		case Gt:
			return a > b
		case Ge:
			return a >= b
		}
	}
	if a, b, ok := bothFloat(node, want); ok {
		switch op {
		case Lt:
			return a < b
		case Le:
			return a <= b
		case Gt:
			return a > b
		case Ge:
			return a >= b
		}
	}
	return false
}

func looseEqual(a, b any) bool {
	if x, y, ok := bothInt(a, b); ok {
		return x == y
	}
	if x, y, ok := bothFloat(a, b); ok {
		return x == y
	}
	return a == b
}

func bothInt(a, b any) (int64, int64, bool) {
	x, ok := asInt64(a)
	if !ok {
		return 0, 0, false
	}
	y, ok := asInt64(b)
	if !ok {
		return 0, 0, false
	}
	return x, y, true
}

func bothFloat(a, b any) (float64, float64, bool) {
	x, ok := asFloat64(a)
	if !ok {
		return 0, 0, false
	}
	y, ok := asFloat64(b)
	if !ok {
		return 0, 0, false
	}
	return x, y, true
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

func asFloat64(v any) (float64, bool) {
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
