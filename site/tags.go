package site

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/0xalexb/hjarta-inject/convert"
	"github.com/0xalexb/hjarta-inject/shape"
)

// Struct tags read by Scan.
const (
	// TagConfig marks a field as a request site. Its value is the property; empty derives the key.
	TagConfig = "config"
	// TagDocument names the document. Empty means DefaultName.
	TagDocument = "document"
	// TagDefault holds the default text.
	TagDefault = "default"
	// TagShape overrides the shape derived from the field type, e.g. `shape:"char"`.
	TagShape = "shape"
)

// ErrNotStruct is returned when Scan is given something other than a struct type.
var ErrNotStruct = errors.New("target must be a struct or a pointer to a struct")

// ErrUnsupportedField is returned when a field type has no configuration shape.
var ErrUnsupportedField = errors.New("unsupported field type")

// Field is a request site discovered on a struct field.
type Field struct {
	Site  Site
	Index []int
	Type  reflect.Type
}

// Scan returns a request site for every exported field of typ carrying a config tag.
//
// The declaring context is the struct type and the member is the field name, so a
// field Port of type Server tagged config:"" is looked up in the default document
// at "Server.Port". Struct types found in field shapes are registered in types.
func Scan(typ reflect.Type, types *convert.Types) ([]Field, error) {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: got %s", ErrNotStruct, typ)
	}

	var fields []Field

	for i := range typ.NumField() {
		structField := typ.Field(i)

		property, tagged := structField.Tag.Lookup(TagConfig)
		if !tagged || !structField.IsExported() {
			continue
		}

		desc, err := fieldShape(structField, types)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", typ.Name(), structField.Name, err)
		}

		qualifier := NewQualifier(DefaultName).WithProperty(property)

		if name, ok := structField.Tag.Lookup(TagDocument); ok {
			qualifier.Name = name
		}

		if text, ok := structField.Tag.Lookup(TagDefault); ok {
			qualifier.Default = text
		}

		fields = append(fields, Field{
			Site: Site{
				Qualifier: qualifier,
				Declaring: convert.TypeID(typ),
				Member:    structField.Name,
				Type:      desc,
			},
			Index: structField.Index,
			Type:  structField.Type,
		})
	}

	return fields, nil
}

func fieldShape(field reflect.StructField, types *convert.Types) (shape.Descriptor, error) {
	if text, ok := field.Tag.Lookup(TagShape); ok {
		desc, err := shape.Parse(text)
		if err != nil {
			return shape.Descriptor{}, fmt.Errorf("shape tag: %w", err)
		}

		return desc, nil
	}

	return Describe(field.Type, types)
}

//nolint:gochecknoglobals // fixed table
var knownShapes = map[reflect.Type]shape.Descriptor{
	reflect.TypeFor[time.Duration]():          shape.StructuredOf(convert.DurationTypeID),
	reflect.TypeFor[time.Time]():              shape.StructuredOf(convert.TimeTypeID),
	reflect.TypeFor[convert.OptionalInt]():    shape.OptionalInt(),
	reflect.TypeFor[convert.OptionalLong]():   shape.OptionalLong(),
	reflect.TypeFor[convert.OptionalDouble](): shape.OptionalDouble(),
}

// Describe derives the shape requested by a Go type:
//
//	string, bool                 string, bool
//	int, int64 / int32 / int16 / int8    long / int / short / byte
//	float32, float64             float, double
//	*T                           optional<T>
//	[]T                          list<T>
//	[N]T                         []T (array)
//	map[string]T                 map<string,T>
//	map[T]struct{}               set<T>
//	func() T, func() (T, error)  supplier<T>
//	time.Duration, time.Time     well-known structured types
//	other structs                structured, registered in types
//
// rune fields describe as int; use a `shape:"char"` tag to request a character.
func Describe(typ reflect.Type, types *convert.Types) (shape.Descriptor, error) {
	if desc, ok := knownShapes[typ]; ok {
		return desc, nil
	}

	switch typ.Kind() {
	case reflect.String:
		return shape.ScalarOf(shape.String), nil
	case reflect.Bool:
		return shape.ScalarOf(shape.Bool), nil
	case reflect.Int, reflect.Int64:
		return shape.ScalarOf(shape.Long), nil
	case reflect.Int32:
		return shape.ScalarOf(shape.Int), nil
	case reflect.Int16:
		return shape.ScalarOf(shape.Short), nil
	case reflect.Int8:
		return shape.ScalarOf(shape.Byte), nil
	case reflect.Float32:
		return shape.ScalarOf(shape.Float), nil
	case reflect.Float64:
		return shape.ScalarOf(shape.Double), nil
	case reflect.Pointer:
		return describeContainer(typ.Elem(), types, shape.OptionalOf)
	case reflect.Slice:
		return describeContainer(typ.Elem(), types, shape.ListOf)
	case reflect.Array:
		return describeContainer(typ.Elem(), types, shape.ArrayOf)
	case reflect.Map:
		return describeMap(typ, types)
	case reflect.Func:
		return describeFunc(typ, types)
	case reflect.Struct:
		return shape.StructuredOf(register(typ, types)), nil
	default:
		return shape.Descriptor{}, fmt.Errorf("%w: %s", ErrUnsupportedField, typ)
	}
}

func describeContainer(
	elem reflect.Type,
	types *convert.Types,
	build func(shape.Descriptor) shape.Descriptor,
) (shape.Descriptor, error) {
	desc, err := Describe(elem, types)
	if err != nil {
		return shape.Descriptor{}, err
	}

	return build(desc), nil
}

func describeMap(typ reflect.Type, types *convert.Types) (shape.Descriptor, error) {
	if typ.Elem() == reflect.TypeFor[struct{}]() {
		return describeContainer(typ.Key(), types, shape.SetOf)
	}

	if typ.Key().Kind() != reflect.String {
		return shape.Descriptor{}, fmt.Errorf("%w: map keys must be strings, got %s", ErrUnsupportedField, typ)
	}

	return describeContainer(typ.Elem(), types, shape.MapOf)
}

func describeFunc(typ reflect.Type, types *convert.Types) (shape.Descriptor, error) {
	errorType := reflect.TypeFor[error]()

	valid := typ.NumIn() == 0 &&
		(typ.NumOut() == 1 || (typ.NumOut() == 2 && typ.Out(1) == errorType))
	if !valid {
		return shape.Descriptor{}, fmt.Errorf("%w: suppliers are func() T or func() (T, error), got %s",
			ErrUnsupportedField, typ)
	}

	return describeContainer(typ.Out(0), types, shape.SupplierOf)
}

func register(typ reflect.Type, types *convert.Types) string {
	id := convert.TypeID(typ)
	if types != nil {
		types.Register(id, typ)
	}

	return id
}
