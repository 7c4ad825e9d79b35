package dsl

import (
	attrio "github.com/attrio/attrio"
)

// String returns the string type variant.
func String() attrio.Type { return attrio.StringType{} }

// Int returns the integer type variant.
func Int() attrio.Type { return attrio.IntegerType{} }

// Float returns the float type variant.
func Float() attrio.Type { return attrio.FloatType{} }

// Bool returns the boolean type variant.
func Bool() attrio.Type { return attrio.BooleanType{} }

// Time returns the timestamp type variant.
func Time() attrio.Type { return attrio.TimeType{} }

// Any returns the opaque-object type variant.
func Any() attrio.Type { return attrio.AnyType{} }

// CollectionOf returns a collection variant whose members satisfy the given
// type with the given member options. Like MustBuild, it panics on a
// configuration error; definition-time mistakes must not survive to use
// time.
func CollectionOf(member attrio.Type, opts ...Option) attrio.Type {
	a, err := Attr(member, opts...)
	if err != nil {
		panic(err)
	}
	return attrio.NewCollection(a)
}

// Attr builds a standalone attribute from a type and options.
func Attr(t attrio.Type, opts ...Option) (*attrio.Attribute, error) {
	m, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	return attrio.NewAttribute(t, m)
}

// MustAttr is like Attr but panics on configuration errors.
func MustAttr(t attrio.Type, opts ...Option) *attrio.Attribute {
	a, err := Attr(t, opts...)
	if err != nil {
		panic(err)
	}
	return a
}
