package convert

import (
	"maps"
	"reflect"
	"slices"
	"sync"
	"time"
)

// Well-known structured type IDs converted without a registry entry.
const (
	DurationTypeID = "time.Duration"
	TimeTypeID     = "time.Time"
)

//nolint:gochecknoglobals // fixed table of natively converted types
var wellKnown = map[string]reflect.Type{
	DurationTypeID: reflect.TypeFor[time.Duration](),
	TimeTypeID:     reflect.TypeFor[time.Time](),
}

// IsWellKnown reports whether id names a structured type converted natively.
func IsWellKnown(id string) bool {
	_, ok := wellKnown[id]

	return ok
}

// TypeID returns the identifier of a Go type: its import path and name for named
// types, or its type literal otherwise.
func TypeID(typ reflect.Type) string {
	if typ.Name() != "" && typ.PkgPath() != "" {
		return typ.PkgPath() + "." + typ.Name()
	}

	return typ.String()
}

// Types maps structured type IDs to Go types. It is safe for concurrent use.
type Types struct {
	mu   sync.RWMutex
	byID map[string]reflect.Type
}

// NewTypes creates an empty registry.
func NewTypes() *Types {
	return &Types{
		mu:   sync.RWMutex{},
		byID: make(map[string]reflect.Type),
	}
}

// Register maps id to typ. Registering the same id again replaces the entry.
func (t *Types) Register(id string, typ reflect.Type) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.byID[id] = typ
}

// Lookup returns the Go type for id, including well-known types.
func (t *Types) Lookup(id string) (reflect.Type, bool) {
	if typ, ok := wellKnown[id]; ok {
		return typ, true
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	typ, ok := t.byID[id]

	return typ, ok
}

// IDs returns the registered IDs in lexical order. Well-known types are not listed.
func (t *Types) IDs() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return slices.Sorted(maps.Keys(t.byID))
}

// Register maps T under its TypeID and returns the ID.
func Register[T any](types *Types) string {
	typ := reflect.TypeFor[T]()
	id := TypeID(typ)

	types.Register(id, typ)

	return id
}
