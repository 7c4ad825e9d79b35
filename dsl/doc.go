// Package dsl is the authoring layer for attrio schemas: scalar and
// collection constructors, attribute option helpers, and the record builder
// that freezes an ordered field list into an immutable RecordType.
//
//	user := dsl.Record().
//		Attribute("name", dsl.String(), dsl.Required()).
//		Attribute("status", dsl.String(), dsl.Values("active", "inactive")).
//		Attribute("ends_at", dsl.Time(), dsl.RequiredIf("status", "active")).
//		MustBuild()
package dsl
