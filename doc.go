package attrio

// Package attrio is a runtime schema and validation engine. A schema is a
// tree of Attributes, each wrapping one Type variant (scalar, collection or
// record) plus per-field options such as required, default, allowed values
// and cross-field conditional requirements.
//
// - Load coerces loosely-typed input into canonical values; coercion
//   failures are returned as *IncompatibleTypeError.
// - Validate walks the value and returns Issues as data, each annotated with
//   a dotted context path such as "$.user.tags.3".
// - Dump serializes canonical values back into transport-friendly form.
// - Describe exposes structured metadata; Example synthesizes reproducible
//   sample values seeded from the context string.
//
// Design policy:
// - Keep only public APIs in the root package; authoring sugar lives under
//   dsl/, message catalogs under i18n/, value codecs under codec/ and
//   document decoding under source/.
// - Cross-field dependency checks use a per-validation Resolver carried on
//   context.Context, never a process-wide global.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	user := dsl.Record().
//		Attribute("name", dsl.String(), dsl.Required()).
//		Attribute("status", dsl.String(), dsl.Values("active", "inactive")).
//		Attribute("ends_at", dsl.Time(), dsl.RequiredIf("status", "active")).
//		MustBuild()
//
//	root := attrio.MustAttribute(user, nil)
//	v, iss, err := root.Parse(ctx, raw)
