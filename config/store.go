package config

import (
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Store loads named documents from a Backend and caches them for the process lifetime.
//
// The first Load of a name fetches and flattens the document exactly once, even when
// many goroutines ask for it at the same time: late callers wait for the in-flight load
// and share its result. Fetch failures are logged and degrade to an empty document.
type Store struct {
	backend Backend
	logger  *slog.Logger
	group   singleflight.Group

	mu   sync.RWMutex
	docs map[string]*Document
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a Store over backend. A nil backend yields empty documents.
func NewStore(backend Backend, opts ...StoreOption) *Store {
	store := &Store{
		backend: backend,
		logger:  slog.Default(),
		group:   singleflight.Group{},
		mu:      sync.RWMutex{},
		docs:    make(map[string]*Document),
	}

	for _, apply := range opts {
		apply(store)
	}

	return store
}

// Load returns the document for name, fetching it on first use.
// The returned Document is shared by all callers and must not be modified.
func (s *Store) Load(name string) *Document {
	if doc, ok := s.cached(name); ok {
		return doc
	}

	result, _, _ := s.group.Do(name, func() (any, error) {
		// a flight that completed between the cache miss above and this call already stored the document
		if doc, ok := s.cached(name); ok {
			return doc, nil
		}

		doc := NewDocument(name, s.fetch(name))

		s.mu.Lock()
		s.docs[name] = doc
		s.mu.Unlock()

		s.logger.Debug("config document loaded", slog.String("name", name), slog.Int("paths", doc.Len()))

		return doc, nil
	})

	doc, _ := result.(*Document)

	return doc
}

// Invalidate drops the cached document for name. The next Load fetches it again.
func (s *Store) Invalidate(name string) {
	s.mu.Lock()
	delete(s.docs, name)
	s.mu.Unlock()

	s.group.Forget(name)
}

// Loaded reports whether the document for name is cached.
func (s *Store) Loaded(name string) bool {
	_, ok := s.cached(name)

	return ok
}

func (s *Store) cached(name string) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[name]

	return doc, ok
}

func (s *Store) fetch(name string) map[string]any {
	if s.backend == nil {
		return nil
	}

	tree, err := s.backend.Fetch(name)
	if err != nil {
		s.logger.Error("failed to load config document, using empty document",
			slog.String("name", name), slog.Any("error", err))

		return nil
	}

	return tree
}
