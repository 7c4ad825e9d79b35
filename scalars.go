package attrio

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/attrio/attrio/codec"
)

// IntegerType coerces numeric-looking input into int64.
type IntegerType struct{}

func (IntegerType) Name() string { return "Integer" }

func (t IntegerType) Load(ctx context.Context, raw any, path string) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, incompatible(path, t.Name(), raw, nil)
		}
		return int64(v), nil
	case float64:
		if math.Trunc(v) != v {
			return nil, incompatible(path, t.Name(), raw, nil)
		}
		return int64(v), nil
	case float32:
		return t.Load(ctx, float64(v), path)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, nil
		}
		return t.loadString(v.String(), raw, path)
	case string:
		return t.loadString(v, raw, path)
	default:
		return nil, incompatible(path, t.Name(), raw, nil)
	}
}

func (t IntegerType) loadString(s string, raw any, path string) (any, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, nil
	}
	// Allow integral floats written as "1e3" or "4.0".
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.Trunc(f) != f {
		return nil, incompatible(path, t.Name(), raw, err)
	}
	return int64(f), nil
}

func (IntegerType) ValidType(v any) bool {
	switch v.(type) {
	case int, int64:
		return true
	}
	return false
}

func (IntegerType) Validate(ctx context.Context, v any, path string, a *Attribute) Issues {
	return nil
}

func (IntegerType) Dump(v any) any { return v }

func (t IntegerType) Describe(example any) map[string]any { return describeScalar(t, example) }

func (IntegerType) Example(path string, opts map[string]any) any {
	return exampleRand(path).Int63n(1000)
}

func (IntegerType) CheckOption(name string, value any) error { return ErrUnknownOption }

// FloatType coerces numeric-looking input into float64.
type FloatType struct{}

func (FloatType) Name() string { return "Float" }

func (t FloatType) Load(ctx context.Context, raw any, path string) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return t.Load(ctx, v.String(), path)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, incompatible(path, t.Name(), raw, err)
		}
		return f, nil
	default:
		return nil, incompatible(path, t.Name(), raw, nil)
	}
}

func (FloatType) ValidType(v any) bool {
	_, ok := v.(float64)
	return ok
}

func (FloatType) Validate(ctx context.Context, v any, path string, a *Attribute) Issues {
	return nil
}

func (FloatType) Dump(v any) any { return v }

func (t FloatType) Describe(example any) map[string]any { return describeScalar(t, example) }

func (FloatType) Example(path string, opts map[string]any) any {
	r := exampleRand(path)
	return math.Round(r.Float64()*100000) / 100
}

func (FloatType) CheckOption(name string, value any) error { return ErrUnknownOption }

// StringType coerces scalar input into string.
type StringType struct{}

func (StringType) Name() string { return "String" }

func (t StringType) Load(ctx context.Context, raw any, path string) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case json.Number:
		return v.String(), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return nil, incompatible(path, t.Name(), raw, nil)
	}
}

func (StringType) ValidType(v any) bool {
	_, ok := v.(string)
	return ok
}

func (StringType) Validate(ctx context.Context, v any, path string, a *Attribute) Issues {
	return nil
}

func (StringType) Dump(v any) any { return v }

func (t StringType) Describe(example any) map[string]any { return describeScalar(t, example) }

func (StringType) Example(path string, opts map[string]any) any {
	return exampleWords[exampleRand(path).Intn(len(exampleWords))]
}

func (StringType) CheckOption(name string, value any) error { return ErrUnknownOption }

// BooleanType coerces truthy-looking input into bool.
type BooleanType struct{}

func (BooleanType) Name() string { return "Boolean" }

func (t BooleanType) Load(ctx context.Context, raw any, path string) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case bool:
		return v, nil
	case string:
		switch v {
		case "true", "t", "1":
			return true, nil
		case "false", "f", "0":
			return false, nil
		}
		return nil, incompatible(path, t.Name(), raw, nil)
	case int:
		switch v {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
		return nil, incompatible(path, t.Name(), raw, nil)
	case int64:
		return t.Load(ctx, int(v), path)
	case json.Number:
		switch v.String() {
		case "1":
			return true, nil
		case "0":
			return false, nil
		}
		return nil, incompatible(path, t.Name(), raw, nil)
	default:
		return nil, incompatible(path, t.Name(), raw, nil)
	}
}

func (BooleanType) ValidType(v any) bool {
	_, ok := v.(bool)
	return ok
}

func (BooleanType) Validate(ctx context.Context, v any, path string, a *Attribute) Issues {
	return nil
}

func (BooleanType) Dump(v any) any { return v }

func (t BooleanType) Describe(example any) map[string]any { return describeScalar(t, example) }

func (BooleanType) Example(path string, opts map[string]any) any {
	return exampleRand(path).Intn(2) == 0
}

func (BooleanType) CheckOption(name string, value any) error { return ErrUnknownOption }

// TimeType coerces timestamp-looking input into time.Time via the RFC3339
// codec (with date-only and space-separated fallbacks).
type TimeType struct{}

func (TimeType) Name() string { return "Time" }

func (t TimeType) Load(ctx context.Context, raw any, path string) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return v, nil
	case string:
		parsed, err := codec.Time{}.Decode(v)
		if err != nil {
			return nil, incompatible(path, t.Name(), raw, err)
		}
		return parsed, nil
	case []byte:
		return t.Load(ctx, string(v), path)
	default:
		return nil, incompatible(path, t.Name(), raw, nil)
	}
}

func (TimeType) ValidType(v any) bool {
	_, ok := v.(time.Time)
	return ok
}

func (TimeType) Validate(ctx context.Context, v any, path string, a *Attribute) Issues {
	return nil
}

func (TimeType) Dump(v any) any {
	if t, ok := v.(time.Time); ok {
		return codec.Time{}.Encode(t)
	}
	return v
}

func (t TimeType) Describe(example any) map[string]any { return describeScalar(t, example) }

func (TimeType) Example(path string, opts map[string]any) any {
	// Stable window: up to a year around a fixed instant.
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	offset := exampleRand(path).Int63n(int64(365 * 24 * time.Hour))
	return base.Add(time.Duration(offset))
}

func (TimeType) CheckOption(name string, value any) error { return ErrUnknownOption }

// AnyType is the opaque-object variant: it accepts anything and coerces
// nothing.
type AnyType struct{}

func (AnyType) Name() string { return "Any" }

func (AnyType) Load(ctx context.Context, raw any, path string) (any, error) { return raw, nil }

func (AnyType) ValidType(v any) bool { return true }

func (AnyType) Validate(ctx context.Context, v any, path string, a *Attribute) Issues { return nil }

func (AnyType) Dump(v any) any { return v }

func (t AnyType) Describe(example any) map[string]any { return describeScalar(t, example) }

func (AnyType) Example(path string, opts map[string]any) any {
	return exampleWords[exampleRand(path).Intn(len(exampleWords))]
}

func (AnyType) CheckOption(name string, value any) error { return ErrUnknownOption }

func describeScalar(t Type, example any) map[string]any {
	out := map[string]any{"name": t.Name()}
	if example != nil {
		out["example"] = t.Dump(example)
	}
	return out
}

var exampleWords = []string{
	"alpha", "bravo", "charlie", "delta", "echo", "foxtrot",
	"golf", "hotel", "india", "juliett", "kilo", "lima",
}
