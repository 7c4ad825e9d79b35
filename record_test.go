package attrio_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	attrio "github.com/attrio/attrio"
	"github.com/attrio/attrio/dsl"
	"github.com/attrio/attrio/source"
)

func userSchema(t *testing.T) *attrio.Attribute {
	t.Helper()
	rt := dsl.Record().
		Attribute("name", dsl.String(), dsl.Required()).
		Attribute("age", dsl.Int(), dsl.Default(18)).
		Attribute("tags", dsl.CollectionOf(dsl.String())).
		MustBuild()
	return dsl.MustAttr(rt)
}

func TestRecord_LoadAndValidate(t *testing.T) {
	a := userSchema(t)
	ctx := context.Background()

	v, iss, err := a.Parse(ctx, map[string]any{"name": "alice"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(iss) != 0 {
		t.Fatalf("expected no issues, got %v", iss.Messages())
	}
	want := map[string]any{"name": "alice", "age": int64(18)}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Fatalf("loaded value mismatch (-want +got):\n%s", diff)
	}
}

func TestRecord_UnknownKey(t *testing.T) {
	a := userSchema(t)
	_, iss, err := a.Parse(context.Background(), map[string]any{"name": "v", "foo": "x"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(iss) != 1 {
		t.Fatalf("expected exactly one issue, got %v", iss.Messages())
	}
	if iss[0].Code != attrio.CodeUnknownKey || iss[0].Path != "$.foo" {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}
	if got := iss[0].String(); got != "$.foo unknown key received" {
		t.Fatalf("unexpected rendering: %q", got)
	}
}

func TestRecord_MissingRequiredField(t *testing.T) {
	a := userSchema(t)
	_, iss, err := a.Parse(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(iss) != 1 || iss[0].Path != "$.name" || iss[0].Code != attrio.CodeRequired {
		t.Fatalf("expected one required issue at $.name, got %v", iss.Messages())
	}
}

func TestRecord_LoadJSONText(t *testing.T) {
	a := userSchema(t)
	v, err := a.Load(context.Background(), `{"name": "bob", "age": "30"}`)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	m := v.(map[string]any)
	if m["age"] != int64(30) {
		t.Fatalf("expected coerced age 30, got %T %v", m["age"], m["age"])
	}
}

func TestRecord_NestedContexts(t *testing.T) {
	address := dsl.Record().
		Attribute("city", dsl.String(), dsl.Required()).
		MustBuild()
	rt := dsl.Record().
		Attribute("name", dsl.String()).
		Attribute("addresses", dsl.CollectionOf(address)).
		MustBuild()
	a := dsl.MustAttr(rt)

	doc := map[string]any{
		"addresses": []any{
			map[string]any{"city": "berlin"},
			map[string]any{},
		},
	}
	_, iss, err := a.Parse(context.Background(), doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(iss) != 1 || iss[0].Path != "$.addresses.1.city" {
		t.Fatalf("expected one issue at $.addresses.1.city, got %v", iss.Messages())
	}
}

func TestRecord_FromDecodedSources(t *testing.T) {
	a := userSchema(t)
	ctx := context.Background()

	jsonRaw, err := source.JSONString(`{"name": "carol", "tags": ["x", "y"]}`)
	if err != nil {
		t.Fatalf("json source: %v", err)
	}
	_, iss, err := a.Parse(ctx, jsonRaw)
	if err != nil || len(iss) != 0 {
		t.Fatalf("json parse failed: err=%v iss=%v", err, iss)
	}

	yamlRaw, err := source.YAMLString("name: dave\ntags:\n  - a\n")
	if err != nil {
		t.Fatalf("yaml source: %v", err)
	}
	_, iss, err = a.Parse(ctx, yamlRaw)
	if err != nil || len(iss) != 0 {
		t.Fatalf("yaml parse failed: err=%v iss=%v", err, iss)
	}
}

func TestRecord_DefaultOptionsMergeUnderExplicit(t *testing.T) {
	rt := dsl.Record().
		Option("description", "a user record").
		Attribute("name", dsl.String()).
		MustBuild()

	// Record-level default applies when the attribute has no explicit one.
	inherited := dsl.MustAttr(rt)
	if d := inherited.Describe()["description"]; d != "a user record" {
		t.Fatalf("expected inherited description, got %v", d)
	}

	// Explicit options override the record-level default.
	overridden := dsl.MustAttr(rt, dsl.Description("an account owner"))
	if d := overridden.Describe()["description"]; d != "an account owner" {
		t.Fatalf("expected explicit description to win, got %v", d)
	}
}

func TestRecord_ConstraintsAreNotRecordDefaults(t *testing.T) {
	_, err := dsl.Record().
		Option("required", true).
		Attribute("name", dsl.String()).
		Build()
	if err == nil {
		t.Fatalf("expected record-level required to be rejected")
	}
}
