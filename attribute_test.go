package attrio_test

import (
	"context"
	"errors"
	"testing"

	attrio "github.com/attrio/attrio"
	"github.com/attrio/attrio/dsl"
)

func TestAttribute_OptionalAbsentIsClean(t *testing.T) {
	a := dsl.MustAttr(dsl.String())
	if iss := a.Validate(context.Background(), nil); len(iss) != 0 {
		t.Fatalf("expected no issues for optional absent value, got %v", iss)
	}
}

func TestAttribute_RequiredAbsent(t *testing.T) {
	a := dsl.MustAttr(dsl.String(), dsl.Required())
	iss := a.Validate(context.Background(), nil)
	if len(iss) != 1 {
		t.Fatalf("expected exactly one issue, got %v", iss)
	}
	if iss[0].Code != attrio.CodeRequired || iss[0].Path != "$" {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}
	if got := iss[0].String(); got != "$ is required" {
		t.Fatalf("unexpected rendering: %q", got)
	}
}

func TestAttribute_DefaultSubstitution(t *testing.T) {
	a := dsl.MustAttr(dsl.Int(), dsl.Default(5))
	v, err := a.Load(context.Background(), nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if v != int64(5) {
		t.Fatalf("expected default int64(5), got %T %v", v, v)
	}
}

func TestAttribute_AllowedValues(t *testing.T) {
	a := dsl.MustAttr(dsl.String(), dsl.Values("active", "inactive"))
	ctx := context.Background()

	if iss := a.Validate(ctx, "active"); len(iss) != 0 {
		t.Fatalf("expected member value to pass, got %v", iss)
	}
	iss := a.Validate(ctx, "paused")
	if len(iss) != 1 || iss[0].Code != attrio.CodeInvalidEnum {
		t.Fatalf("expected one invalid_enum issue, got %v", iss)
	}
}

func TestAttribute_WrongTypeShortCircuits(t *testing.T) {
	a := dsl.MustAttr(dsl.Int(), dsl.Values(1, 2, 3))
	iss := a.Validate(context.Background(), "nope")
	if len(iss) != 1 || iss[0].Code != attrio.CodeInvalidType {
		t.Fatalf("expected a single invalid_type issue, got %v", iss)
	}
	if iss[0].Message != "expected Integer, got string" {
		t.Fatalf("unexpected message: %q", iss[0].Message)
	}
}

func TestAttribute_Parse(t *testing.T) {
	a := dsl.MustAttr(dsl.Int(), dsl.Required())
	v, iss, err := a.Parse(context.Background(), "7")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(iss) != 0 {
		t.Fatalf("expected no issues, got %v", iss)
	}
	if v != int64(7) {
		t.Fatalf("expected int64(7), got %T %v", v, v)
	}

	// Coercion failures surface as errors, not issues.
	_, _, err = a.Parse(context.Background(), "seven")
	var ite *attrio.IncompatibleTypeError
	if !errors.As(err, &ite) {
		t.Fatalf("expected IncompatibleTypeError, got %v", err)
	}
}

func TestAttribute_UnknownOption(t *testing.T) {
	_, err := attrio.NewAttribute(attrio.IntegerType{}, map[string]any{"bogus": 1})
	var ce *attrio.ConfigError
	if !errors.As(err, &ce) || ce.Option != "bogus" {
		t.Fatalf("expected ConfigError for unknown option, got %v", err)
	}
}

func TestAttribute_OptionExclusions(t *testing.T) {
	if _, err := dsl.Attr(dsl.String(), dsl.Required(), dsl.RequiredIfPresent("other")); err == nil {
		t.Fatalf("expected required/required_if exclusion error")
	}
	if _, err := dsl.Attr(dsl.String(), dsl.Required(), dsl.Default("x")); err == nil {
		t.Fatalf("expected required/default exclusion error")
	}
}

func TestAttribute_DefaultMustSatisfyType(t *testing.T) {
	_, err := dsl.Attr(dsl.Int(), dsl.Default("abc"))
	var ce *attrio.ConfigError
	if !errors.As(err, &ce) || ce.Option != attrio.OptionDefault {
		t.Fatalf("expected ConfigError for wrong-typed default, got %v", err)
	}
}

func TestAttribute_ValuesMustBeSequence(t *testing.T) {
	_, err := attrio.NewAttribute(attrio.StringType{}, map[string]any{attrio.OptionValues: "active"})
	var ce *attrio.ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConfigError for non-sequence values, got %v", err)
	}
}

func TestAttribute_DependencySpecShape(t *testing.T) {
	_, err := attrio.NewAttribute(attrio.StringType{}, map[string]any{attrio.OptionRequiredIf: 42})
	var ce *attrio.ConfigError
	if !errors.As(err, &ce) || ce.Option != attrio.OptionRequiredIf {
		t.Fatalf("expected ConfigError for bad dependency shape, got %v", err)
	}

	// A bare key-path string is the shorthand for a presence check.
	a, err := attrio.NewAttribute(attrio.StringType{}, map[string]any{attrio.OptionRequiredIf: "sibling"})
	if err != nil {
		t.Fatalf("shorthand dependency: %v", err)
	}
	if a == nil {
		t.Fatalf("expected attribute")
	}
}

func TestAttribute_OptionsAreDetached(t *testing.T) {
	a := dsl.MustAttr(dsl.String(), dsl.Description("original"))
	opts := a.Options()
	opts[attrio.OptionDescription] = "mutated"
	opts["injected"] = true

	again := a.Options()
	if again[attrio.OptionDescription] != "original" {
		t.Fatalf("expected internal options untouched, got %v", again)
	}
	if _, ok := again["injected"]; ok {
		t.Fatalf("expected injected key not to survive, got %v", again)
	}
}

func TestIssues_Messages(t *testing.T) {
	iss := attrio.Issues{
		{Path: "$.a", Code: attrio.CodeRequired, Message: "is required"},
		{Path: "$.b", Code: attrio.CodeUnknownKey, Message: "unknown key received"},
	}
	msgs := iss.Messages()
	if len(msgs) != 2 || msgs[0] != "$.a is required" || msgs[1] != "$.b unknown key received" {
		t.Fatalf("unexpected messages: %v", msgs)
	}
	if iss.Error() == "" {
		t.Fatalf("expected non-empty error summary")
	}
}
