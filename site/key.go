package site

import (
	"strings"

	"github.com/0xalexb/hjarta-inject/shape"
)

// ResolveKey derives the flattened key looked up for s.
//
// An explicit property wins. Otherwise, for the default document, the key is
// "<DeclaringSimpleName>.<member>" when both names are known. The second result
// is false when no key can be derived.
func ResolveKey(s Site) (string, bool) {
	key := strings.TrimSpace(s.Qualifier.Property)
	if key != "" {
		return key, true
	}

	if s.Qualifier.DocumentName() != DefaultName {
		return "", false
	}

	declaring := SimpleName(s.Declaring)
	if declaring == "" || s.Member == "" {
		return "", false
	}

	return declaring + "." + s.Member, true
}

// ResolveDefault returns the default text for s.
//
// An explicit default is returned trimmed. Without one, primitive scalar targets get
// a zero value: "false" for bool and "0" for numbers. String and char targets, and
// every non-scalar shape, have no default.
func ResolveDefault(s Site) (string, bool) {
	if s.Qualifier.hasDefault() {
		return strings.TrimSpace(s.Qualifier.Default), true
	}

	if s.Type.Kind() != shape.KindScalar {
		return "", false
	}

	switch scalar := s.Type.Scalar(); {
	case scalar == shape.Bool:
		return "false", true
	case scalar.Numeric():
		return "0", true
	default:
		return "", false
	}
}

// SimpleName strips package qualification from a type name:
// "github.com/acme/app.Server" and "app.Server" both become "Server".
func SimpleName(name string) string {
	if i := strings.LastIndexAny(name, "./"); i >= 0 {
		return name[i+1:]
	}

	return name
}
