package shape

import "strings"

// Kind tags the variant held by a Descriptor.
type Kind int

// Descriptor kinds.
const (
	KindInvalid Kind = iota
	KindScalar
	KindList
	KindSet
	KindMap
	KindOptional
	KindOptionalInt
	KindOptionalLong
	KindOptionalDouble
	KindSupplier
	KindStructured
	KindArray
)

// Scalar enumerates the leaf value kinds.
type Scalar int

// Scalar kinds.
const (
	ScalarInvalid Scalar = iota
	String
	Bool
	Int
	Long
	Float
	Double
	Short
	Byte
	Char
)

//nolint:gochecknoglobals // lookup tables
var scalarNames = map[Scalar]string{
	String: "string",
	Bool:   "bool",
	Int:    "int",
	Long:   "long",
	Float:  "float",
	Double: "double",
	Short:  "short",
	Byte:   "byte",
	Char:   "char",
}

func (s Scalar) String() string {
	name, ok := scalarNames[s]
	if !ok {
		return "invalid"
	}

	return name
}

// Numeric reports whether the scalar holds a number.
func (s Scalar) Numeric() bool {
	switch s {
	case Int, Long, Float, Double, Short, Byte:
		return true
	case ScalarInvalid, String, Bool, Char:
		return false
	}

	return false
}

// Descriptor is an immutable type shape. The zero value is invalid.
type Descriptor struct {
	kind   Kind
	scalar Scalar
	elem   *Descriptor
	typeID string
}

// ScalarOf returns the descriptor of a scalar kind.
func ScalarOf(s Scalar) Descriptor {
	return Descriptor{kind: KindScalar, scalar: s}
}

// ListOf returns list<elem>.
func ListOf(elem Descriptor) Descriptor {
	return container(KindList, elem)
}

// SetOf returns set<elem>.
func SetOf(elem Descriptor) Descriptor {
	return container(KindSet, elem)
}

// MapOf returns map<string,value>. Map keys are always strings.
func MapOf(value Descriptor) Descriptor {
	return container(KindMap, value)
}

// OptionalOf returns optional<elem>.
func OptionalOf(elem Descriptor) Descriptor {
	return container(KindOptional, elem)
}

// SupplierOf returns supplier<elem>.
func SupplierOf(elem Descriptor) Descriptor {
	return container(KindSupplier, elem)
}

// ArrayOf returns []elem.
func ArrayOf(elem Descriptor) Descriptor {
	return container(KindArray, elem)
}

// OptionalInt returns the int-width numeric optional.
func OptionalInt() Descriptor {
	return Descriptor{kind: KindOptionalInt}
}

// OptionalLong returns the long-width numeric optional.
func OptionalLong() Descriptor {
	return Descriptor{kind: KindOptionalLong}
}

// OptionalDouble returns the double-width numeric optional.
func OptionalDouble() Descriptor {
	return Descriptor{kind: KindOptionalDouble}
}

// StructuredOf returns the descriptor of a named structured type.
func StructuredOf(typeID string) Descriptor {
	return Descriptor{kind: KindStructured, typeID: typeID}
}

func container(kind Kind, elem Descriptor) Descriptor {
	return Descriptor{kind: kind, elem: &elem}
}

// Kind returns the variant tag.
func (d Descriptor) Kind() Kind {
	return d.kind
}

// Scalar returns the scalar kind, or ScalarInvalid for non-scalar descriptors.
func (d Descriptor) Scalar() Scalar {
	return d.scalar
}

// Elem returns the element descriptor of a container kind.
// For maps it is the value descriptor. Other kinds return the zero Descriptor.
func (d Descriptor) Elem() Descriptor {
	if d.elem == nil {
		return Descriptor{}
	}

	return *d.elem
}

// TypeID returns the structured type identifier.
func (d Descriptor) TypeID() string {
	return d.typeID
}

// IsValid reports whether d holds a complete shape.
func (d Descriptor) IsValid() bool {
	switch d.kind {
	case KindScalar:
		return d.scalar != ScalarInvalid
	case KindList, KindSet, KindMap, KindOptional, KindSupplier, KindArray:
		return d.elem != nil && d.elem.IsValid()
	case KindOptionalInt, KindOptionalLong, KindOptionalDouble:
		return true
	case KindStructured:
		return d.typeID != ""
	case KindInvalid:
		return false
	}

	return false
}

// IsScalar reports whether d is a scalar of kind s.
func (d Descriptor) IsScalar(s Scalar) bool {
	return d.kind == KindScalar && d.scalar == s
}

// ModelsAbsence reports whether an absent node converts to an empty value
// rather than nil: optionals and collections.
func (d Descriptor) ModelsAbsence() bool {
	switch d.kind {
	case KindList, KindSet, KindMap, KindOptional, KindOptionalInt, KindOptionalLong, KindOptionalDouble:
		return true
	case KindInvalid, KindScalar, KindSupplier, KindStructured, KindArray:
		return false
	}

	return false
}

// Equal reports whether two descriptors describe the same shape.
func (d Descriptor) Equal(other Descriptor) bool {
	return d.String() == other.String()
}

// String returns the canonical identity of the descriptor.
func (d Descriptor) String() string {
	var sb strings.Builder

	d.write(&sb)

	return sb.String()
}

func (d Descriptor) write(sb *strings.Builder) {
	switch d.kind {
	case KindScalar:
		sb.WriteString(d.scalar.String())
	case KindList:
		d.writeGeneric(sb, "list")
	case KindSet:
		d.writeGeneric(sb, "set")
	case KindMap:
		sb.WriteString("map<string,")
		d.Elem().write(sb)
		sb.WriteByte('>')
	case KindOptional:
		d.writeGeneric(sb, "optional")
	case KindOptionalInt:
		sb.WriteString("optionalInt")
	case KindOptionalLong:
		sb.WriteString("optionalLong")
	case KindOptionalDouble:
		sb.WriteString("optionalDouble")
	case KindSupplier:
		d.writeGeneric(sb, "supplier")
	case KindStructured:
		sb.WriteString(d.typeID)
	case KindArray:
		sb.WriteString("[]")
		d.Elem().write(sb)
	case KindInvalid:
		sb.WriteString("invalid")
	}
}

func (d Descriptor) writeGeneric(sb *strings.Builder, name string) {
	sb.WriteString(name)
	sb.WriteByte('<')
	d.Elem().write(sb)
	sb.WriteByte('>')
}
