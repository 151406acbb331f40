package convert

import (
	"reflect"
	"slices"
)

// Optional holds a value that may be absent.
type Optional struct {
	value   any
	present bool
}

// Some returns a present Optional.
func Some(value any) Optional {
	return Optional{value: value, present: true}
}

// None returns an empty Optional.
func None() Optional {
	return Optional{value: nil, present: false}
}

// Get returns the value and whether it is present.
func (o Optional) Get() (any, bool) {
	return o.value, o.present
}

// IsPresent reports whether a value is held.
func (o Optional) IsPresent() bool {
	return o.present
}

// OrElse returns the value, or fallback when empty.
func (o Optional) OrElse(fallback any) any {
	if !o.present {
		return fallback
	}

	return o.value
}

// OptionalInt holds an int-width number that may be absent.
type OptionalInt struct {
	value   int32
	present bool
}

// SomeInt returns a present OptionalInt.
func SomeInt(value int32) OptionalInt {
	return OptionalInt{value: value, present: true}
}

// Get returns the value and whether it is present.
func (o OptionalInt) Get() (int32, bool) {
	return o.value, o.present
}

// IsPresent reports whether a value is held.
func (o OptionalInt) IsPresent() bool {
	return o.present
}

// OrElse returns the value, or fallback when empty.
func (o OptionalInt) OrElse(fallback int32) int32 {
	if !o.present {
		return fallback
	}

	return o.value
}

// OptionalLong holds a long-width number that may be absent.
type OptionalLong struct {
	value   int64
	present bool
}

// SomeLong returns a present OptionalLong.
func SomeLong(value int64) OptionalLong {
	return OptionalLong{value: value, present: true}
}

// Get returns the value and whether it is present.
func (o OptionalLong) Get() (int64, bool) {
	return o.value, o.present
}

// IsPresent reports whether a value is held.
func (o OptionalLong) IsPresent() bool {
	return o.present
}

// OrElse returns the value, or fallback when empty.
func (o OptionalLong) OrElse(fallback int64) int64 {
	if !o.present {
		return fallback
	}

	return o.value
}

// OptionalDouble holds a double-width number that may be absent.
type OptionalDouble struct {
	value   float64
	present bool
}

// SomeDouble returns a present OptionalDouble.
func SomeDouble(value float64) OptionalDouble {
	return OptionalDouble{value: value, present: true}
}

// Get returns the value and whether it is present.
func (o OptionalDouble) Get() (float64, bool) {
	return o.value, o.present
}

// IsPresent reports whether a value is held.
func (o OptionalDouble) IsPresent() bool {
	return o.present
}

// OrElse returns the value, or fallback when empty.
func (o OptionalDouble) OrElse(fallback float64) float64 {
	if !o.present {
		return fallback
	}

	return o.value
}

// Supplier defers a conversion. Each call converts the captured node again.
type Supplier func() (any, error)

// Set is an insertion-ordered collection without duplicates.
// Elements are compared with reflect.DeepEqual.
type Set struct {
	items []any
}

// NewSet returns a Set holding the distinct items.
func NewSet(items ...any) *Set {
	set := &Set{items: make([]any, 0, len(items))}

	for _, item := range items {
		set.Add(item)
	}

	return set
}

// Add inserts item unless an equal element is present. It reports whether item was added.
func (s *Set) Add(item any) bool {
	if s.Contains(item) {
		return false
	}

	s.items = append(s.items, item)

	return true
}

// Contains reports whether an element equal to item is present.
func (s *Set) Contains(item any) bool {
	return slices.ContainsFunc(s.items, func(existing any) bool {
		return reflect.DeepEqual(existing, item)
	})
}

// Len returns the number of elements.
func (s *Set) Len() int {
	return len(s.items)
}

// Values returns the elements in insertion order.
func (s *Set) Values() []any {
	return slices.Clone(s.items)
}
