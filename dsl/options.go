package dsl

import (
	"math/rand"

	attrio "github.com/attrio/attrio"
)

// Option configures one attribute option. Options are applied in order; the
// core option registry validates the assembled set when the attribute is
// constructed.
type Option func(*optionSet)

type optionSet struct {
	m    map[string]any
	errs []error
}

func buildOptions(opts []Option) (map[string]any, error) {
	os := &optionSet{m: map[string]any{}}
	for _, opt := range opts {
		if opt != nil {
			opt(os)
		}
	}
	if len(os.errs) > 0 {
		return nil, os.errs[0]
	}
	return os.m, nil
}

// Required marks the attribute as required.
func Required() Option {
	return func(o *optionSet) { o.m[attrio.OptionRequired] = true }
}

// Default sets the value substituted when input is absent. The value is
// coerced through the declared type at definition time.
func Default(v any) Option {
	return func(o *optionSet) { o.m[attrio.OptionDefault] = v }
}

// Values restricts the attribute to the given allowed values.
func Values(vs ...any) Option {
	return func(o *optionSet) { o.m[attrio.OptionValues] = vs }
}

// Description attaches human-readable documentation.
func Description(s string) Option {
	return func(o *optionSet) { o.m[attrio.OptionDescription] = s }
}

// Example sets an example hint: a literal value or a list of candidates.
func Example(v any) Option {
	return func(o *optionSet) { o.m[attrio.OptionExample] = v }
}

// ExampleFunc sets a generator example hint.
func ExampleFunc(fn func(*rand.Rand) any) Option {
	return func(o *optionSet) { o.m[attrio.OptionExample] = fn }
}

// RequiredIf requires the attribute when the node at keyPath equals value.
// keyPath is absolute when prefixed with "$.", otherwise relative to the
// attribute's parent.
func RequiredIf(keyPath string, value any) Option {
	return func(o *optionSet) {
		o.m[attrio.OptionRequiredIf] = &attrio.Dependency{KeyPath: keyPath, Value: value}
	}
}

// RequiredIfPresent requires the attribute when the node at keyPath is
// present.
func RequiredIfPresent(keyPath string) Option {
	return func(o *optionSet) {
		o.m[attrio.OptionRequiredIf] = &attrio.Dependency{KeyPath: keyPath}
	}
}

// RequiredIfFunc requires the attribute when fn returns true for the node at
// keyPath.
func RequiredIfFunc(keyPath string, fn func(any) bool) Option {
	return func(o *optionSet) {
		o.m[attrio.OptionRequiredIf] = &attrio.Dependency{KeyPath: keyPath, Fn: fn}
	}
}

// Size bounds generated collection examples to exactly n elements.
func Size(n int) Option {
	return func(o *optionSet) { o.m[attrio.OptionSize] = n }
}

// SizeBetween bounds generated collection examples to [min, max] elements.
func SizeBetween(min, max int) Option {
	return func(o *optionSet) { o.m[attrio.OptionSize] = attrio.SizeRange{Min: min, Max: max} }
}
