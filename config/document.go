package config

import (
	"fmt"
	"maps"
	"slices"
)

// PathSeparator joins nested keys into a flattened path.
const PathSeparator = "."

// Document is a loaded configuration document addressed by flattened paths.
//
// Every mapping and every leaf is reachable by the dot-joined path of keys from the
// document root, so "db" and "db.timeout" are both valid paths for
// {"db": {"timeout": 30}}. Sequences are not indexed: a sequence is a single node
// addressed by its parent path. A Document is immutable once built.
type Document struct {
	name    string
	root    map[string]any
	entries map[string]any
}

// NewDocument builds a Document from a raw tree. The tree is copied and normalized
// (mapping keys become strings), so later changes to tree are not observed.
func NewDocument(name string, tree map[string]any) *Document {
	root, _ := Normalize(tree).(map[string]any)
	if root == nil {
		root = map[string]any{}
	}

	entries := make(map[string]any)
	flatten(root, "", entries)

	return &Document{
		name:    name,
		root:    root,
		entries: entries,
	}
}

func flatten(node map[string]any, parent string, entries map[string]any) {
	for key, value := range node {
		path := key
		if parent != "" {
			path = parent + PathSeparator + key
		}

		entries[path] = value

		child, isMap := value.(map[string]any)
		if isMap {
			flatten(child, path, entries)
		}
	}
}

// Name returns the document name.
func (d *Document) Name() string {
	return d.name
}

// Lookup returns the node at path. The second result is false when the path is absent.
// A present path may still hold a nil node.
func (d *Document) Lookup(path string) (any, bool) {
	value, ok := d.entries[path]

	return value, ok
}

// Root returns the whole document tree.
func (d *Document) Root() map[string]any {
	return d.root
}

// Paths returns every flattened path in lexical order.
func (d *Document) Paths() []string {
	return slices.Sorted(maps.Keys(d.entries))
}

// Len returns the number of flattened paths.
func (d *Document) Len() int {
	return len(d.entries)
}

// IsEmpty reports whether the document holds no entries.
func (d *Document) IsEmpty() bool {
	return len(d.entries) == 0
}

// Normalize deep-copies a raw node, converting mappings with non-string keys to
// map[string]any. Decoders such as viper or YAML v2 style libraries produce such maps.
func Normalize(node any) any {
	switch typed := node.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[key] = Normalize(value)
		}

		return out
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[fmt.Sprint(key)] = Normalize(value)
		}

		return out
	case []any:
		out := make([]any, len(typed))
		for i, value := range typed {
			out[i] = Normalize(value)
		}

		return out
	default:
		return node
	}
}
