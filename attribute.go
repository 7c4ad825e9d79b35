package attrio

import (
	"context"
	"fmt"
	"math/rand"
	"reflect"
	"regexp"
	"sort"
	"sync"

	"github.com/attrio/attrio/i18n"
)

// Option names recognized by the generic registry. Any other name must be
// recognized by the wrapped Type's CheckOption or attribute construction
// fails.
const (
	OptionRequired    = "required"
	OptionRequiredIf  = "required_if"
	OptionDefault     = "default"
	OptionValues      = "values"
	OptionDescription = "description"
	OptionExample     = "example"

	// OptionSize is collection-specific: an exact int or an inclusive
	// SizeRange bounding generated example lengths.
	OptionSize = "size"
)

// exampleCandidates marks an example hint that is a list of candidate
// values rather than a literal example (a literal []any is a valid example
// for a collection-typed attribute).
type exampleCandidates []any

// Attribute is a named, constrained occurrence of a Type within a schema: it
// owns exactly one Type (shared, not copied) and an immutable-after-
// construction option set. Attributes are long-lived descriptors; values
// flow through them per call.
type Attribute struct {
	typ  Type
	opts map[string]any

	compileOnce sync.Once
	compiledOpt map[string]any
}

// NewAttribute wraps a Type with options. Every option name must be
// recognized by the generic registry or by the Type's own CheckOption, and
// every recognized option's value must be legal; violations fail fast with a
// *ConfigError. Option values are normalized in place (defaults, allowed
// values and example hints are coerced through the declared type).
func NewAttribute(t Type, opts map[string]any) (*Attribute, error) {
	if t == nil {
		return nil, &ConfigError{Reason: "attribute has no type"}
	}
	copied := make(map[string]any, len(opts))
	for k, v := range opts {
		copied[k] = v
	}
	a := &Attribute{typ: t, opts: copied}
	if err := a.checkOptions(); err != nil {
		return nil, err
	}
	return a, nil
}

// MustAttribute is like NewAttribute but panics on configuration errors.
func MustAttribute(t Type, opts map[string]any) *Attribute {
	a, err := NewAttribute(t, opts)
	if err != nil {
		panic(err)
	}
	return a
}

// Type returns the wrapped type variant.
func (a *Attribute) Type() Type { return a.typ }

// checkOptions validates and normalizes the explicit option set at
// definition time.
func (a *Attribute) checkOptions() error {
	names := make([]string, 0, len(a.opts))
	for name := range a.opts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		val := a.opts[name]
		switch name {
		case OptionRequired:
			if _, ok := val.(bool); !ok {
				return &ConfigError{Option: name, Reason: fmt.Sprintf("must be a bool, got %T", val)}
			}
		case OptionRequiredIf:
			dep, err := normalizeDependency(val)
			if err != nil {
				return err
			}
			a.opts[name] = dep
		case OptionDefault:
			dv, err := a.coerceOption(name, val)
			if err != nil {
				return err
			}
			a.opts[name] = dv
		case OptionValues:
			list, err := a.coerceOptionList(name, val)
			if err != nil {
				return err
			}
			a.opts[name] = list
		case OptionDescription:
			if _, ok := val.(string); !ok {
				return &ConfigError{Option: name, Reason: fmt.Sprintf("must be a string, got %T", val)}
			}
		case OptionExample:
			hint, err := a.checkExampleHint(val)
			if err != nil {
				return err
			}
			a.opts[name] = hint
		default:
			if err := a.typ.CheckOption(name, val); err != nil {
				if err == ErrUnknownOption {
					return &ConfigError{Option: name, Reason: fmt.Sprintf("not recognized by the generic registry or the %s type", a.typ.Name())}
				}
				return &ConfigError{Option: name, Reason: err.Error()}
			}
		}
	}
	req, _ := a.opts[OptionRequired].(bool)
	if _, hasIf := a.opts[OptionRequiredIf]; req && hasIf {
		return &ConfigError{Option: OptionRequired, Reason: `mutually exclusive with "required_if"`}
	}
	if _, hasDefault := a.opts[OptionDefault]; req && hasDefault {
		return &ConfigError{Option: OptionRequired, Reason: `mutually exclusive with "default"`}
	}
	return nil
}

// coerceOption loads an option value through the declared type and checks it
// for type validity. Defaults are checked against the declared type, not the
// compiled/merged option set: record-level default-option merging never
// changes the type, so the declared type is the stable reference.
func (a *Attribute) coerceOption(name string, val any) (any, error) {
	loaded, err := a.typ.Load(context.Background(), val, RootContext)
	if err != nil || loaded == nil || !a.typ.ValidType(loaded) {
		reason := fmt.Sprintf("value %v does not satisfy the %s type", val, a.typ.Name())
		if err != nil {
			reason += ": " + err.Error()
		}
		return nil, &ConfigError{Option: name, Reason: reason}
	}
	return loaded, nil
}

func (a *Attribute) coerceOptionList(name string, val any) ([]any, error) {
	rv := reflect.ValueOf(val)
	if val == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, &ConfigError{Option: name, Reason: fmt.Sprintf("must be a sequence, got %T", val)}
	}
	list := make([]any, rv.Len())
	for i := range list {
		cv, err := a.coerceOption(name, rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		list[i] = cv
	}
	return list, nil
}

// checkExampleHint accepts a literal example, a list of candidate values, or
// a generator func(*rand.Rand) any. Regexp hints are rejected in favor of
// generator functions.
func (a *Attribute) checkExampleHint(val any) (any, error) {
	switch val.(type) {
	case func(*rand.Rand) any:
		return val, nil
	case *regexp.Regexp:
		return nil, &ConfigError{Option: OptionExample, Reason: "regexp hints are not supported; provide a generator func(*rand.Rand) any"}
	}
	// Literal example first: a []any hint is the example itself for a
	// collection-typed attribute.
	if loaded, err := a.typ.Load(context.Background(), val, RootContext); err == nil && loaded != nil && a.typ.ValidType(loaded) {
		return loaded, nil
	}
	rv := reflect.ValueOf(val)
	if val != nil && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) {
		list, err := a.coerceOptionList(OptionExample, val)
		if err != nil {
			return nil, err
		}
		return exampleCandidates(list), nil
	}
	return nil, &ConfigError{Option: OptionExample, Reason: fmt.Sprintf("value %v does not satisfy the %s type", val, a.typ.Name())}
}

// compiled returns the effective option set, computed lazily once: for
// record-backed attributes the record's own default options are merged with
// (and overridden by) the explicit options; everything else uses explicit
// options as-is.
func (a *Attribute) compiled() map[string]any {
	a.compileOnce.Do(func() {
		rt, ok := a.typ.(*RecordType)
		if !ok || len(rt.DefaultOptions()) == 0 {
			a.compiledOpt = a.opts
			return
		}
		merged := make(map[string]any, len(a.opts)+len(rt.DefaultOptions()))
		for k, v := range rt.DefaultOptions() {
			merged[k] = v
		}
		for k, v := range a.opts {
			merged[k] = v
		}
		a.compiledOpt = merged
	})
	return a.compiledOpt
}

// Options returns a copy of the compiled effective option set, so callers
// cannot reach the attribute's internal state.
func (a *Attribute) Options() map[string]any {
	src := a.compiled()
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// Parse loads raw input and validates the result. Validation failures are
// returned as data; only irreconcilable coercion failures produce an error.
func (a *Attribute) Parse(ctx context.Context, raw any) (any, Issues, error) {
	v, err := a.Load(ctx, raw)
	if err != nil {
		return nil, nil, err
	}
	return v, a.Validate(ctx, v), nil
}

// Load coerces raw input rooted at "$".
func (a *Attribute) Load(ctx context.Context, raw any) (any, error) {
	return a.LoadAt(ctx, raw, RootContext)
}

// LoadAt coerces raw input at the given context path, substituting the
// default option when the input (or the coerced result) is absent.
func (a *Attribute) LoadAt(ctx context.Context, raw any, path string) (any, error) {
	if raw == nil {
		return a.defaultValue(), nil
	}
	v, err := a.typ.Load(ctx, raw, path)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return a.defaultValue(), nil
	}
	return v, nil
}

func (a *Attribute) defaultValue() any {
	dv, ok := a.compiled()[OptionDefault]
	if !ok {
		return nil
	}
	return dv
}

// Validate checks a loaded value rooted at "$" and returns all issues found
// in one pass. It establishes the dependency resolver for the call tree when
// none is bound yet.
func (a *Attribute) Validate(ctx context.Context, v any) Issues {
	return a.ValidateAt(ctx, v, RootContext)
}

// ValidateAt checks a loaded value at the given context path. Nested
// validations inherit the resolver bound by the top-level call.
func (a *Attribute) ValidateAt(ctx context.Context, v any, path string) Issues {
	if ResolverFrom(ctx) == nil {
		ctx = WithResolver(ctx, NewResolver(v))
	}
	if v == nil {
		return a.validateMissing(ctx, path)
	}
	if !a.typ.ValidType(v) {
		return Issues{{
			Path: path,
			Code: CodeInvalidType,
			Message: i18n.T(CodeInvalidType, map[string]string{
				"expected": a.typ.Name(),
				"got":      fmt.Sprintf("%T", v),
			}),
			Params: map[string]any{"expected": a.typ.Name(), "got": fmt.Sprintf("%T", v)},
		}}
	}
	var iss Issues
	if vals, ok := a.compiled()[OptionValues].([]any); ok && !containsValue(vals, v) {
		iss = AppendIssues(iss, Issue{
			Path:    path,
			Code:    CodeInvalidEnum,
			Message: i18n.T(CodeInvalidEnum, map[string]string{"value": fmt.Sprintf("%v", v)}),
			Params:  map[string]any{"value": v},
		})
	}
	return append(iss, a.typ.Validate(ctx, v, path, a)...)
}

// validateMissing judges an absent value: optional attributes pass, required
// ones fail, and conditionally-required ones consult the resolver.
func (a *Attribute) validateMissing(ctx context.Context, path string) Issues {
	opts := a.compiled()
	if req, _ := opts[OptionRequired].(bool); req {
		return Issues{{Path: path, Code: CodeRequired, Message: i18n.T(CodeRequired, nil)}}
	}
	dep, _ := opts[OptionRequiredIf].(*Dependency)
	if dep == nil {
		return nil
	}
	if !ResolverFrom(ctx).Check(path, dep) {
		return nil
	}
	data := map[string]string{"key": dep.KeyPath}
	if dep.Fn == nil && dep.Value != nil {
		data["value"] = fmt.Sprintf("%v", dep.Value)
	}
	it := Issue{
		Path:    path,
		Code:    CodeRequiredIf,
		Message: i18n.T(CodeRequiredIf, data),
		Params:  map[string]any{"key_path": dep.KeyPath},
	}
	if !dep.absolute() {
		it.Hint = fmt.Sprintf("resolved to %q", AbsoluteKeyPath(path, dep.KeyPath))
	}
	return Issues{it}
}

// Dump serializes a canonical value back to transport-friendly form.
func (a *Attribute) Dump(v any) any {
	if v == nil {
		return nil
	}
	return a.typ.Dump(v)
}

// Describe returns the attribute's metadata: the type description merged
// with the compiled options. Example data is included only when an example
// value is explicitly supplied.
func (a *Attribute) Describe(example ...any) map[string]any {
	var ex any
	if len(example) > 0 {
		ex = example[0]
	}
	out := a.typ.Describe(ex)
	opts := a.compiled()
	if v, ok := opts[OptionDescription]; ok {
		out["description"] = v
	}
	if v, ok := opts[OptionValues]; ok {
		out["values"] = v
	}
	if v, ok := opts[OptionDefault]; ok {
		out["default"] = a.typ.Dump(v)
	}
	if req, ok := opts[OptionRequired].(bool); ok && req {
		out["required"] = true
	}
	if dep, ok := opts[OptionRequiredIf].(*Dependency); ok {
		out["required_if"] = dep.KeyPath
	}
	return out
}

// Example synthesizes a sample value: the example hint when configured
// (literal, candidate pick, or generator), otherwise a pick from the allowed
// values, otherwise the type's own generator. A non-empty path makes the
// result deterministic for that path.
func (a *Attribute) Example(path string) any {
	opts := a.compiled()
	if hint, ok := opts[OptionExample]; ok {
		switch h := hint.(type) {
		case func(*rand.Rand) any:
			return h(exampleRand(path))
		case exampleCandidates:
			if len(h) > 0 {
				return h[exampleRand(path).Intn(len(h))]
			}
		default:
			return h
		}
	}
	if vals, ok := opts[OptionValues].([]any); ok && len(vals) > 0 {
		return vals[exampleRand(path).Intn(len(vals))]
	}
	return a.typ.Example(path, opts)
}

func containsValue(vals []any, v any) bool {
	for _, cand := range vals {
		if valueEqual(v, cand) {
			return true
		}
	}
	return false
}

func normalizeDependency(val any) (*Dependency, error) {
	switch d := val.(type) {
	case string:
		if d == "" {
			return nil, &ConfigError{Option: OptionRequiredIf, Reason: "key path must not be empty"}
		}
		return &Dependency{KeyPath: d}, nil
	case *Dependency:
		if d == nil || d.KeyPath == "" {
			return nil, &ConfigError{Option: OptionRequiredIf, Reason: "dependency must carry a key path"}
		}
		return d, nil
	case Dependency:
		if d.KeyPath == "" {
			return nil, &ConfigError{Option: OptionRequiredIf, Reason: "dependency must carry a key path"}
		}
		return &d, nil
	default:
		return nil, &ConfigError{Option: OptionRequiredIf, Reason: fmt.Sprintf("unresolvable dependency specification %T", val)}
	}
}
