package attrio

import (
	"context"
	"fmt"
	"reflect"
)

// CollectionType is an ordered sequence whose members all satisfy one member
// Attribute. Canonical value: []any.
type CollectionType struct {
	member *Attribute
}

// NewCollection builds a collection over the given member attribute.
func NewCollection(member *Attribute) *CollectionType {
	return &CollectionType{member: member}
}

// Member returns the member attribute.
func (c *CollectionType) Member() *Attribute { return c.member }

func (c *CollectionType) Name() string { return "Collection" }

// Load accepts native slices or a JSON array in text form. Text input is
// decoded before per-element load; malformed JSON or a non-array top-level
// value is a coercion error.
func (c *CollectionType) Load(ctx context.Context, raw any, path string) (any, error) {
	var items []any
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		items = v
	case string:
		decoded, err := decodeJSONText([]byte(v))
		if err != nil {
			return nil, incompatible(path, c.Name(), raw, err)
		}
		arr, ok := decoded.([]any)
		if !ok {
			return nil, incompatible(path, c.Name(), raw, fmt.Errorf("JSON text is not an array"))
		}
		items = arr
	case []byte:
		return c.Load(ctx, string(v), path)
	default:
		rv := reflect.ValueOf(raw)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return nil, incompatible(path, c.Name(), raw, nil)
		}
		items = make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
	}
	out := make([]any, 0, len(items))
	for i, el := range items {
		loaded, err := c.member.LoadAt(ctx, el, indexContext(path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, loaded)
	}
	return out, nil
}

func (c *CollectionType) ValidType(v any) bool {
	_, ok := v.([]any)
	return ok
}

// Validate checks each element via the member attribute, accumulating errors
// with index-qualified contexts.
func (c *CollectionType) Validate(ctx context.Context, v any, path string, a *Attribute) Issues {
	seq, ok := v.([]any)
	if !ok {
		return nil
	}
	var iss Issues
	for i, el := range seq {
		iss = append(iss, c.member.ValidateAt(ctx, el, indexContext(path, i))...)
	}
	return iss
}

func (c *CollectionType) Dump(v any) any {
	seq, ok := v.([]any)
	if !ok {
		return v
	}
	out := make([]any, 0, len(seq))
	for _, el := range seq {
		out = append(out, c.member.Dump(el))
	}
	return out
}

func (c *CollectionType) Describe(example any) map[string]any {
	out := map[string]any{
		"name":             c.Name(),
		"member_attribute": c.member.Describe(),
	}
	if example != nil {
		out["example"] = c.Dump(example)
	}
	return out
}

// Example generates a sequence whose length honors the "size" option: an
// exact int, or an inclusive SizeRange.
func (c *CollectionType) Example(path string, opts map[string]any) any {
	r := exampleRand(path)
	n := 0
	switch size := opts[OptionSize].(type) {
	case int:
		n = size
	case SizeRange:
		n = size.Min + r.Intn(size.Max-size.Min+1)
	default:
		n = 1 + r.Intn(3)
	}
	out := make([]any, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, c.member.Example(indexContext(path, i)))
	}
	return out
}

// CheckOption recognizes the collection-specific "size" option.
func (c *CollectionType) CheckOption(name string, value any) error {
	if name != OptionSize {
		return ErrUnknownOption
	}
	switch v := value.(type) {
	case int:
		if v < 0 {
			return fmt.Errorf("size must be non-negative, got %d", v)
		}
	case SizeRange:
		if v.Min < 0 || v.Max < v.Min {
			return fmt.Errorf("size range must satisfy 0 <= min <= max, got [%d,%d]", v.Min, v.Max)
		}
	default:
		return fmt.Errorf("size must be an int or a SizeRange, got %T", value)
	}
	return nil
}
