package convert

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"

	"github.com/0xalexb/hjarta-inject/config"
	"github.com/0xalexb/hjarta-inject/shape"
)

// DefaultTagName is the struct tag used to match document keys to fields.
const DefaultTagName = "yaml"

// Converter converts raw nodes to typed values. It holds no per-conversion state
// and is safe for concurrent use.
type Converter struct {
	types    *Types
	tagName  string
	validate *validator.Validate
	logger   *slog.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithTypes sets the structured type registry.
func WithTypes(types *Types) Option {
	return func(c *Converter) {
		c.types = types
	}
}

// WithTagName sets the struct tag used for structured decoding.
func WithTagName(tagName string) Option {
	return func(c *Converter) {
		c.tagName = tagName
	}
}

// WithValidator replaces the struct validator.
func WithValidator(validate *validator.Validate) Option {
	return func(c *Converter) {
		c.validate = validate
	}
}

// WithLogger sets the logger used for decoding diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Converter.
func New(opts ...Option) *Converter {
	converter := &Converter{
		types:    nil,
		tagName:  DefaultTagName,
		validate: nil,
		logger:   slog.Default(),
	}

	for _, apply := range opts {
		apply(converter)
	}

	if converter.types == nil {
		converter.types = NewTypes()
	}

	if converter.validate == nil {
		converter.validate = validator.New(validator.WithRequiredStructEnabled())
	}

	return converter
}

// Types returns the structured type registry.
func (c *Converter) Types() *Types {
	return c.types
}

// Convert converts node to the shape described by desc.
//
// A nil node converts to the empty value of optional and collection shapes and to
// nil for every other shape.
func (c *Converter) Convert(node any, desc shape.Descriptor) (any, error) {
	if node == nil {
		return c.empty(desc)
	}

	switch desc.Kind() {
	case shape.KindScalar:
		return c.scalar(node, desc)
	case shape.KindList:
		return c.list(node, desc)
	case shape.KindSet:
		return c.set(node, desc)
	case shape.KindMap:
		return c.mapping(node, desc)
	case shape.KindOptional:
		value, err := c.Convert(node, desc.Elem())
		if err != nil {
			return nil, err
		}

		return Some(value), nil
	case shape.KindOptionalInt:
		return optionalInt(node), nil
	case shape.KindOptionalLong:
		return optionalLong(node), nil
	case shape.KindOptionalDouble:
		return optionalDouble(node), nil
	case shape.KindSupplier:
		elem := desc.Elem()

		return Supplier(func() (any, error) {
			return c.Convert(node, elem)
		}), nil
	case shape.KindStructured:
		return c.structured(node, desc)
	case shape.KindArray:
		return c.array(node, desc)
	case shape.KindInvalid:
	}

	return nil, fmt.Errorf("%w: unsupported type shape %s", ErrTypeConversion, desc)
}

func (c *Converter) empty(desc shape.Descriptor) (any, error) {
	switch desc.Kind() {
	case shape.KindList:
		return []any{}, nil
	case shape.KindSet:
		return NewSet(), nil
	case shape.KindMap:
		return map[string]any{}, nil
	case shape.KindOptional:
		return None(), nil
	case shape.KindOptionalInt:
		return OptionalInt{}, nil
	case shape.KindOptionalLong:
		return OptionalLong{}, nil
	case shape.KindOptionalDouble:
		return OptionalDouble{}, nil
	case shape.KindInvalid:
		return nil, fmt.Errorf("%w: unsupported type shape %s", ErrTypeConversion, desc)
	case shape.KindScalar, shape.KindSupplier, shape.KindStructured, shape.KindArray:
	}

	return nil, nil
}

func (c *Converter) scalar(node any, desc shape.Descriptor) (any, error) {
	if isContainer(node) {
		return nil, fmt.Errorf("%w: cannot convert %T to %s", ErrTypeConversion, node, desc)
	}

	var (
		value any
		err   error
	)

	switch desc.Scalar() {
	case shape.String:
		value, err = cast.ToStringE(node)
	case shape.Bool:
		value, err = cast.ToBoolE(node)
	case shape.Int:
		var number int64
		number, err = integer(node, math.MinInt32, math.MaxInt32)
		value = int32(number)
	case shape.Long:
		value, err = integer(node, math.MinInt64, math.MaxInt64)
	case shape.Float:
		value, err = cast.ToFloat32E(node)
	case shape.Double:
		value, err = cast.ToFloat64E(node)
	case shape.Short:
		var number int64
		number, err = integer(node, math.MinInt16, math.MaxInt16)
		value = int16(number)
	case shape.Byte:
		var number int64
		number, err = integer(node, math.MinInt8, math.MaxInt8)
		value = int8(number)
	case shape.Char:
		value, err = firstRune(node)
	case shape.ScalarInvalid:
		err = errors.New("invalid scalar kind")
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %s from %v: %w", ErrTypeConversion, desc, node, err)
	}

	return value, nil
}

// integer reads node as a whole number within [lo, hi]. Text is read in base 10 only,
// so "010" is ten.
func integer(node any, lo, hi int64) (int64, error) {
	if text, ok := node.(string); ok {
		number, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parsing %q: %w", text, err)
		}

		node = number
	}

	if !isNumber(node) {
		number, err := cast.ToInt64E(node)
		if err != nil {
			return 0, fmt.Errorf("integer: %w", err)
		}

		node = number
	}

	number, ok := integral(node, lo, hi)
	if !ok {
		return 0, fmt.Errorf("%v is out of range [%d, %d]", node, lo, hi)
	}

	return number, nil
}

func firstRune(node any) (rune, error) {
	text, err := cast.ToStringE(node)
	if err != nil {
		return 0, fmt.Errorf("char: %w", err)
	}

	for _, r := range text {
		return r, nil
	}

	return 0, errors.New("empty text has no character")
}

func (c *Converter) list(node any, desc shape.Descriptor) (any, error) {
	items, ok := node.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s requires a sequence, got %T", ErrTypeConversion, desc, node)
	}

	result := make([]any, 0, len(items))

	for i, item := range items {
		value, err := c.Convert(item, desc.Elem())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}

		result = append(result, value)
	}

	return result, nil
}

func (c *Converter) set(node any, desc shape.Descriptor) (any, error) {
	values, err := c.list(node, desc)
	if err != nil {
		return nil, err
	}

	items, _ := values.([]any)

	return NewSet(items...), nil
}

func (c *Converter) mapping(node any, desc shape.Descriptor) (any, error) {
	fields, ok := node.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s requires an object, got %T", ErrTypeConversion, desc, node)
	}

	result := make(map[string]any, len(fields))

	for key, field := range fields {
		value, err := c.Convert(field, desc.Elem())
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}

		result[key] = value
	}

	return result, nil
}

// array converts every element with the element shape and collects the results in a
// slice of the element's Go type.
func (c *Converter) array(node any, desc shape.Descriptor) (any, error) {
	typ, err := c.GoType(desc)
	if err != nil {
		return nil, err
	}

	items, ok := node.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s requires a sequence, got %T", ErrTypeConversion, desc, node)
	}

	result := reflect.MakeSlice(typ, len(items), len(items))

	for i, item := range items {
		value, err := c.Convert(item, desc.Elem())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}

		if value != nil {
			result.Index(i).Set(reflect.ValueOf(value))
		}
	}

	return result.Interface(), nil
}

func (c *Converter) structured(node any, desc shape.Descriptor) (any, error) {
	switch desc.TypeID() {
	case DurationTypeID:
		value, err := cast.ToDurationE(node)
		if err != nil {
			return nil, fmt.Errorf("%w: %s from %v: %w", ErrTypeConversion, desc, node, err)
		}

		return value, nil
	case TimeTypeID:
		value, err := cast.ToTimeE(node)
		if err != nil {
			return nil, fmt.Errorf("%w: %s from %v: %w", ErrTypeConversion, desc, node, err)
		}

		return value, nil
	}

	typ, err := c.GoType(desc)
	if err != nil {
		return nil, err
	}

	return c.Decode(node, typ)
}

// GoType returns the Go type Convert produces for desc.
func (c *Converter) GoType(desc shape.Descriptor) (reflect.Type, error) {
	switch desc.Kind() {
	case shape.KindScalar:
		return scalarType(desc.Scalar())
	case shape.KindList:
		return reflect.TypeFor[[]any](), nil
	case shape.KindSet:
		return reflect.TypeFor[*Set](), nil
	case shape.KindMap:
		return reflect.TypeFor[map[string]any](), nil
	case shape.KindOptional:
		return reflect.TypeFor[Optional](), nil
	case shape.KindOptionalInt:
		return reflect.TypeFor[OptionalInt](), nil
	case shape.KindOptionalLong:
		return reflect.TypeFor[OptionalLong](), nil
	case shape.KindOptionalDouble:
		return reflect.TypeFor[OptionalDouble](), nil
	case shape.KindSupplier:
		return reflect.TypeFor[Supplier](), nil
	case shape.KindStructured:
		typ, ok := c.types.Lookup(desc.TypeID())
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownType, desc.TypeID())
		}

		return typ, nil
	case shape.KindArray:
		elem, err := c.GoType(desc.Elem())
		if err != nil {
			return nil, err
		}

		return reflect.SliceOf(elem), nil
	case shape.KindInvalid:
	}

	return nil, fmt.Errorf("%w: unsupported type shape %s", ErrTypeConversion, desc)
}

func scalarType(scalar shape.Scalar) (reflect.Type, error) {
	switch scalar {
	case shape.String:
		return reflect.TypeFor[string](), nil
	case shape.Bool:
		return reflect.TypeFor[bool](), nil
	case shape.Int, shape.Char:
		return reflect.TypeFor[int32](), nil
	case shape.Long:
		return reflect.TypeFor[int64](), nil
	case shape.Float:
		return reflect.TypeFor[float32](), nil
	case shape.Double:
		return reflect.TypeFor[float64](), nil
	case shape.Short:
		return reflect.TypeFor[int16](), nil
	case shape.Byte:
		return reflect.TypeFor[int8](), nil
	case shape.ScalarInvalid:
	}

	return nil, fmt.Errorf("%w: invalid scalar kind", ErrTypeConversion)
}

// Decode decodes node into a new value of typ, then applies the SetDefaults and
// Validate hooks and struct tag validation.
func (c *Converter) Decode(node any, typ reflect.Type) (any, error) {
	target := reflect.New(typ)

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{ //nolint:exhaustruct // defaults are fine
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.TextUnmarshallerHookFunc(),
		),
		ErrorUnused: true,
		Result:      target.Interface(),
		TagName:     c.tagName,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: creating decoder for %s: %w", ErrTypeConversion, typ, err)
	}

	err = decoder.Decode(node)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %w", ErrTypeConversion, typ, err)
	}

	err = c.finish(target)
	if err != nil {
		return nil, err
	}

	return target.Elem().Interface(), nil
}

func (c *Converter) finish(target reflect.Value) error {
	value := target.Interface()

	if defaulter, ok := value.(config.Defaulter); ok {
		if defaulter.SetDefaults() {
			c.logger.Info("defaults applied", slog.String("type", TypeID(target.Elem().Type())))
		}
	}

	if validatable, ok := value.(config.Validator); ok {
		err := validatable.Validate()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
	}

	if target.Elem().Kind() == reflect.Struct {
		err := c.validate.Struct(value)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
	}

	return nil
}

func isContainer(node any) bool {
	switch node.(type) {
	case []any, map[string]any:
		return true
	}

	return false
}

func optionalInt(node any) OptionalInt {
	value, ok := integral(node, math.MinInt32, math.MaxInt32)
	if !ok {
		return OptionalInt{}
	}

	return SomeInt(int32(value))
}

func optionalLong(node any) OptionalLong {
	value, ok := integral(node, math.MinInt64, math.MaxInt64)
	if !ok {
		return OptionalLong{}
	}

	return SomeLong(value)
}

func optionalDouble(node any) OptionalDouble {
	if !isNumber(node) {
		return OptionalDouble{}
	}

	value, err := cast.ToFloat64E(node)
	if err != nil {
		return OptionalDouble{}
	}

	return SomeDouble(value)
}

// integral reports the value of a numeric node truncated toward zero, if it fits in [lo, hi].
func integral(node any, lo, hi int64) (int64, bool) {
	if !isNumber(node) {
		return 0, false
	}

	if unsigned, ok := node.(uint64); ok {
		if unsigned > math.MaxInt64 || int64(unsigned) > hi {
			return 0, false
		}

		return int64(unsigned), true
	}

	number, err := cast.ToFloat64E(node)
	if err != nil || math.IsNaN(number) || number < float64(lo) || number > float64(hi) {
		return 0, false
	}

	value, err := cast.ToInt64E(node)
	if err != nil {
		return 0, false
	}

	return value, true
}

func isNumber(node any) bool {
	switch node.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	}

	return false
}
