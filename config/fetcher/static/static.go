// Package static provides an in-memory config.Backend.
//
// It is useful for embedding documents in a binary and for tests. Documents can be
// replaced at runtime with Set; stores that already cached a document keep their
// copy until config.Store.Invalidate is called.
package static

import (
	"sync"

	"github.com/0xalexb/hjarta-inject/config"
)

// Backend serves documents from memory.
type Backend struct {
	mu   sync.RWMutex
	docs map[string]map[string]any
}

// NewBackend creates a Backend holding docs, keyed by document name.
func NewBackend(docs map[string]map[string]any) *Backend {
	backend := &Backend{
		mu:   sync.RWMutex{},
		docs: make(map[string]map[string]any, len(docs)),
	}

	for name, tree := range docs {
		backend.docs[name] = tree
	}

	return backend
}

// Set stores or replaces the document called name.
func (b *Backend) Set(name string, tree map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.docs[name] = tree
}

// Fetch returns the document called name, or nil when it is unknown.
func (b *Backend) Fetch(name string) (map[string]any, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.docs[name], nil
}

var _ config.Backend = (*Backend)(nil)
