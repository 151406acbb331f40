package inject

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/0xalexb/hjarta-inject/convert"
	"github.com/0xalexb/hjarta-inject/producer"
	"github.com/0xalexb/hjarta-inject/site"
)

// ErrInvalidTarget is returned when Populate is not given a non-nil pointer to a struct.
var ErrInvalidTarget = errors.New("target must be a non-nil pointer to a struct")

// Populate assigns every config-tagged field of the struct target points to.
//
// Fields are resolved with Producer.ResolveNullable, so a struct-typed field in a
// named document without a property receives the whole document. A field whose
// value resolves to nothing keeps its current value.
//
// Supplier fields of type func() T panic when conversion fails; declare them as
// func() (T, error) to receive the error instead.
func Populate(p *producer.Producer, target any) error {
	value := reflect.ValueOf(target)
	if value.Kind() != reflect.Pointer || value.IsNil() || value.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: got %T", ErrInvalidTarget, target)
	}

	fields, err := site.Scan(value.Type(), p.Converter().Types())
	if err != nil {
		return fmt.Errorf("populating %T: %w", target, err)
	}

	for _, field := range fields {
		resolved, err := p.ResolveNullable(field.Site)
		if err != nil {
			return fmt.Errorf("populating %s: %w", field.Site, err)
		}

		err = assign(value.Elem().FieldByIndex(field.Index), resolved)
		if err != nil {
			return fmt.Errorf("populating %s: %w", field.Site, err)
		}
	}

	return nil
}

// Load returns a new T populated by Populate.
func Load[T any](p *producer.Producer) (*T, error) {
	target := new(T)

	err := Populate(p, target)
	if err != nil {
		return nil, err
	}

	return target, nil
}

// assign stores a converted value into dst, adapting the engine's value types
// (Optional, Set, Supplier, []any, map[string]any) to the field's Go type.
func assign(dst reflect.Value, value any) error {
	if value == nil {
		return nil
	}

	src := reflect.ValueOf(value)
	if src.Type().AssignableTo(dst.Type()) {
		dst.Set(src)

		return nil
	}

	switch typed := value.(type) {
	case convert.Optional:
		if dst.Kind() == reflect.Pointer {
			return assignOptional(dst, typed)
		}
	case *convert.Set:
		if dst.Kind() == reflect.Map {
			return assignSet(dst, typed)
		}
	case []any:
		if dst.Kind() == reflect.Slice {
			return assignList(dst, typed)
		}
	case map[string]any:
		if dst.Kind() == reflect.Map && dst.Type().Key().Kind() == reflect.String {
			return assignMap(dst, typed)
		}
	case convert.Supplier:
		if dst.Kind() == reflect.Func {
			dst.Set(supplierFunc(dst.Type(), typed))

			return nil
		}
	}

	switch {
	case dst.Kind() == reflect.Array && src.Kind() == reflect.Slice:
		if src.Len() > dst.Len() {
			return fmt.Errorf("%w: %d elements do not fit %s", convert.ErrTypeConversion, src.Len(), dst.Type())
		}

		for i := range src.Len() {
			err := assign(dst.Index(i), src.Index(i).Interface())
			if err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}

		return nil
	case isNumeric(src.Kind()) && isNumeric(dst.Kind()):
		dst.Set(src.Convert(dst.Type()))

		return nil
	}

	return fmt.Errorf("%w: cannot assign %T to %s", convert.ErrTypeConversion, value, dst.Type())
}

func assignOptional(dst reflect.Value, optional convert.Optional) error {
	inner, ok := optional.Get()
	if !ok {
		dst.SetZero()

		return nil
	}

	elem := reflect.New(dst.Type().Elem())

	err := assign(elem.Elem(), inner)
	if err != nil {
		return err
	}

	dst.Set(elem)

	return nil
}

func assignSet(dst reflect.Value, set *convert.Set) error {
	result := reflect.MakeMapWithSize(dst.Type(), set.Len())

	for _, item := range set.Values() {
		key := reflect.New(dst.Type().Key()).Elem()

		err := assign(key, item)
		if err != nil {
			return err
		}

		result.SetMapIndex(key, reflect.New(dst.Type().Elem()).Elem())
	}

	dst.Set(result)

	return nil
}

func assignList(dst reflect.Value, items []any) error {
	result := reflect.MakeSlice(dst.Type(), len(items), len(items))

	for i, item := range items {
		err := assign(result.Index(i), item)
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}

	dst.Set(result)

	return nil
}

func assignMap(dst reflect.Value, fields map[string]any) error {
	result := reflect.MakeMapWithSize(dst.Type(), len(fields))

	for key, item := range fields {
		elem := reflect.New(dst.Type().Elem()).Elem()

		err := assign(elem, item)
		if err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}

		result.SetMapIndex(reflect.ValueOf(key).Convert(dst.Type().Key()), elem)
	}

	dst.Set(result)

	return nil
}

func supplierFunc(typ reflect.Type, supplier convert.Supplier) reflect.Value {
	return reflect.MakeFunc(typ, func([]reflect.Value) []reflect.Value {
		out := reflect.New(typ.Out(0)).Elem()

		value, err := supplier()
		if err == nil {
			err = assign(out, value)
		}

		if err != nil {
			out = reflect.Zero(typ.Out(0))
		}

		if typ.NumOut() == 1 {
			if err != nil {
				panic(err)
			}

			return []reflect.Value{out}
		}

		return []reflect.Value{out, errorValue(err)}
	})
}

func isNumeric(kind reflect.Kind) bool {
	switch kind { //nolint:exhaustive // only numeric kinds matter
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
