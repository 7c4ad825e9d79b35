package attrio

import (
	"context"
	"fmt"
	"sort"

	"github.com/attrio/attrio/i18n"
)

// Field is one named attribute of a record.
type Field struct {
	Name string
	Attr *Attribute
}

// RecordType is a structured record with an ordered, immutable set of named
// attributes. Canonical value: map[string]any. The field set is fixed at
// construction; builders under dsl/ are the only mutation point.
type RecordType struct {
	fields   []Field
	index    map[string]*Attribute
	defaults map[string]any // record-level default options merged under field options
}

// NewRecord freezes an ordered field list into a RecordType. Duplicate field
// names are a configuration error. defaults, when non-nil, are the record's
// own default options; attributes wrapping this record merge them under
// their explicit options.
func NewRecord(fields []Field, defaults map[string]any) (*RecordType, error) {
	idx := make(map[string]*Attribute, len(fields))
	for _, f := range fields {
		if f.Attr == nil {
			return nil, &ConfigError{Option: f.Name, Reason: "field has no attribute"}
		}
		if _, dup := idx[f.Name]; dup {
			return nil, &ConfigError{Option: f.Name, Reason: "duplicate field name"}
		}
		idx[f.Name] = f.Attr
	}
	return &RecordType{fields: append([]Field(nil), fields...), index: idx, defaults: defaults}, nil
}

// Fields returns the declared fields in definition order.
func (rt *RecordType) Fields() []Field { return rt.fields }

// DefaultOptions returns the record's own default option set, if any.
func (rt *RecordType) DefaultOptions() map[string]any { return rt.defaults }

func (rt *RecordType) Name() string { return "Record" }

// Load accepts a native map or a JSON object in text form. Declared fields
// are loaded via their sub-attributes (which apply defaults); keys with no
// matching declared field pass through untouched so validation can flag
// them.
func (rt *RecordType) Load(ctx context.Context, raw any, path string) (any, error) {
	var src map[string]any
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		src = v
	case string:
		decoded, err := decodeJSONText([]byte(v))
		if err != nil {
			return nil, incompatible(path, rt.Name(), raw, err)
		}
		obj, ok := decoded.(map[string]any)
		if !ok {
			return nil, incompatible(path, rt.Name(), raw, fmt.Errorf("JSON text is not an object"))
		}
		src = obj
	case []byte:
		return rt.Load(ctx, string(v), path)
	default:
		return nil, incompatible(path, rt.Name(), raw, nil)
	}
	out := make(map[string]any, len(src))
	for _, f := range rt.fields {
		loaded, err := f.Attr.LoadAt(ctx, src[f.Name], childContext(path, f.Name))
		if err != nil {
			return nil, err
		}
		if loaded != nil {
			out[f.Name] = loaded
		}
	}
	for k, v := range src {
		if _, known := rt.index[k]; !known {
			out[k] = v
		}
	}
	return out, nil
}

func (rt *RecordType) ValidType(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}

// Validate checks every declared field via its sub-attribute with a
// field-qualified context, then reports any input key with no matching
// declared field.
func (rt *RecordType) Validate(ctx context.Context, v any, path string, a *Attribute) Issues {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	var iss Issues
	for _, f := range rt.fields {
		iss = append(iss, f.Attr.ValidateAt(ctx, m[f.Name], childContext(path, f.Name))...)
	}
	// unknown keys in key-sorted order for deterministic output
	uks := make([]string, 0, len(m))
	for k := range m {
		if _, known := rt.index[k]; !known {
			uks = append(uks, k)
		}
	}
	sort.Strings(uks)
	for _, k := range uks {
		iss = AppendIssues(iss, Issue{
			Path:    childContext(path, k),
			Code:    CodeUnknownKey,
			Message: i18n.T(CodeUnknownKey, nil),
		})
	}
	return iss
}

// Dump serializes declared fields through their sub-attributes; unknown keys
// pass through as-is so loaded documents survive a dump/load round trip.
func (rt *RecordType) Dump(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	out := make(map[string]any, len(m))
	for _, f := range rt.fields {
		if fv, present := m[f.Name]; present {
			out[f.Name] = f.Attr.Dump(fv)
		}
	}
	for k, kv := range m {
		if _, known := rt.index[k]; !known {
			out[k] = kv
		}
	}
	return out
}

func (rt *RecordType) Describe(example any) map[string]any {
	exm, _ := example.(map[string]any)
	attrs := make(map[string]any, len(rt.fields))
	for _, f := range rt.fields {
		if exm != nil && exm[f.Name] != nil {
			attrs[f.Name] = f.Attr.Describe(exm[f.Name])
		} else {
			attrs[f.Name] = f.Attr.Describe()
		}
	}
	out := map[string]any{"name": rt.Name(), "attributes": attrs}
	if example != nil {
		out["example"] = rt.Dump(example)
	}
	return out
}

func (rt *RecordType) Example(path string, opts map[string]any) any {
	out := make(map[string]any, len(rt.fields))
	for _, f := range rt.fields {
		if ex := f.Attr.Example(childContext(path, f.Name)); ex != nil {
			out[f.Name] = ex
		}
	}
	return out
}

func (rt *RecordType) CheckOption(name string, value any) error { return ErrUnknownOption }
