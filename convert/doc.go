// Package convert turns raw document nodes into typed values.
//
// A raw node is nil, a bool, a number, a string, a []any or a map[string]any.
// Converter.Convert dispatches on the shape.Descriptor kind and produces:
//
//	scalar      string, bool, int32 (int), int64 (long), float32, float64,
//	            int16 (short), int8 (byte), rune (char)
//	list        []any, elements converted recursively, order and duplicates kept
//	set         *Set, elements converted recursively, duplicates dropped
//	map         map[string]any, values converted recursively
//	optional    Optional
//	optionalInt OptionalInt, likewise OptionalLong and OptionalDouble
//	supplier    Supplier, converting the node again on every call
//	structured  a value of the type registered under the descriptor's type ID
//	array       a slice of the element's Go type, elements converted recursively
//
// Integer shapes reject values outside their width and read text in base 10.
//
// Structured values are decoded with go-viper/mapstructure. Fields are
// matched by the "yaml" struct tag by default and unknown fields are rejected.
// After decoding, SetDefaults and Validate hooks (see package config) run, and
// structs are checked against their go-playground/validator tags. A SetDefaults
// call that reports a change is logged as "defaults applied".
//
// Conversion is atomic: on failure no partial value is returned. Nodes are never
// modified.
package convert
