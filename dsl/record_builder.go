package dsl

import (
	"fmt"

	attrio "github.com/attrio/attrio"
)

// RecordBuilder accumulates an ordered sequence of field declarations and
// freezes them into an immutable RecordType. Building is the only mutation
// point of a record's field set.
type RecordBuilder struct {
	specs    []fieldSpec
	defaults map[string]any
	errs     []error
}

type fieldSpec struct {
	name string
	typ  attrio.Type
	opts []Option
}

// Record creates a new record builder.
func Record() *RecordBuilder {
	return &RecordBuilder{}
}

// Attribute declares a field with its type and options. Declaration order is
// preserved.
func (b *RecordBuilder) Attribute(name string, t attrio.Type, opts ...Option) *RecordBuilder {
	b.specs = append(b.specs, fieldSpec{name: name, typ: t, opts: opts})
	return b
}

// Option sets a record-level default option, merged under the explicit
// options of any attribute wrapping this record. Per-field constraints
// (required, required_if, default) are not inheritable and are rejected.
func (b *RecordBuilder) Option(name string, v any) *RecordBuilder {
	switch name {
	case attrio.OptionRequired, attrio.OptionRequiredIf, attrio.OptionDefault:
		b.errs = append(b.errs, &attrio.ConfigError{Option: name, Reason: "cannot be a record-level default"})
		return b
	}
	if b.defaults == nil {
		b.defaults = map[string]any{}
	}
	b.defaults[name] = v
	return b
}

// Build validates every declared field and returns the frozen RecordType.
func (b *RecordBuilder) Build() (*attrio.RecordType, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	fields := make([]attrio.Field, 0, len(b.specs))
	for _, spec := range b.specs {
		a, err := Attr(spec.typ, spec.opts...)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", spec.name, err)
		}
		fields = append(fields, attrio.Field{Name: spec.name, Attr: a})
	}
	return attrio.NewRecord(fields, b.defaults)
}

// MustBuild is like Build but panics on error.
func (b *RecordBuilder) MustBuild() *attrio.RecordType {
	rt, err := b.Build()
	if err != nil {
		panic(err)
	}
	return rt
}
