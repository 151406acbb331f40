// Package yaml provides a YAML parser implementation for the config package.
//
// This package uses github.com/goccy/go-yaml to decode documents into the generic
// tree of maps, slices and scalars consumed by config.Document. JSON input is
// accepted as well, since JSON is a subset of YAML.
//
// Usage:
//
//	parser := yaml.NewParser()
//	tree, err := parser.Parse(data)
//	node, err := parser.ParseValue(`{"x": 1, "y": 2}`)
//
// Numbers decode as uint64 (non-negative integers), int64 (negative integers)
// or float64.
package yaml
