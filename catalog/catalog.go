package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/0xalexb/hjarta-inject/convert"
	"github.com/0xalexb/hjarta-inject/shape"
	"github.com/0xalexb/hjarta-inject/site"
)

// ErrMissingRequiredType is returned when a registration refers to a structured type
// that is not present in the type registry.
var ErrMissingRequiredType = errors.New("missing required type")

const (
	// Qualifier marks synthesized providers. Containers key them by (type, Qualifier).
	Qualifier = "config"
	// StructuredCreator names the generic creator that converts a document node into
	// the registered type.
	StructuredCreator = "structured"
	// FallbackImplementation identifies array registrations, which have no declared
	// type name of their own.
	FallbackImplementation = "hjarta.inject.structured-array"
	// ParamRequiredType is the single creator parameter: the identity of the target type.
	ParamRequiredType = "requiredType"
)

// Registration describes one synthesized provider.
type Registration struct {
	// Type is the provided shape.
	Type shape.Descriptor
	// Qualifier is always the Qualifier constant.
	Qualifier string
	// Implementation is the structured type ID, or FallbackImplementation for arrays.
	Implementation string
	// Creator is the creator that builds values for this registration.
	Creator string
	// Params holds the creator parameters.
	Params map[string]string
}

// RequiredType returns the requiredType creator parameter.
func (r Registration) RequiredType() string {
	return r.Params[ParamRequiredType]
}

// IsHandledNatively reports whether desc is served by the built-in producers.
func IsHandledNatively(desc shape.Descriptor) bool {
	switch desc.Kind() {
	case shape.KindScalar,
		shape.KindList,
		shape.KindSet,
		shape.KindMap,
		shape.KindOptional,
		shape.KindOptionalInt,
		shape.KindOptionalLong,
		shape.KindOptionalDouble,
		shape.KindSupplier:
		return true
	case shape.KindStructured:
		return convert.IsWellKnown(desc.TypeID())
	case shape.KindArray, shape.KindInvalid:
	}

	return false
}

// Option configures Build.
type Option func(*builder)

// WithLogger sets the logger receiving one debug record per registration.
func WithLogger(logger *slog.Logger) Option {
	return func(b *builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

type builder struct {
	logger *slog.Logger
}

// Build returns the registrations needed by sites, ordered by type identity.
//
// Sites without a document name, property or default do not take part and are skipped,
// as are sites whose shape is handled natively. Structured types, including array
// elements, must be present in types.
func Build(sites []site.Site, types *convert.Types, opts ...Option) ([]Registration, error) {
	b := builder{logger: slog.Default()}

	for _, apply := range opts {
		apply(&b)
	}

	byIdentity := make(map[string]shape.Descriptor)

	for _, s := range sites {
		if s.Qualifier.IsDefaulted() {
			continue
		}

		if !s.Type.IsValid() {
			return nil, fmt.Errorf("%w: %s has no type shape", ErrMissingRequiredType, s)
		}

		if IsHandledNatively(s.Type) {
			continue
		}

		byIdentity[s.Type.String()] = s.Type
	}

	registrations := make([]Registration, 0, len(byIdentity))

	for _, identity := range slices.Sorted(maps.Keys(byIdentity)) {
		desc := byIdentity[identity]

		err := requireTypes(desc, types)
		if err != nil {
			return nil, err
		}

		registration := newRegistration(desc)

		b.logger.Debug("config provider registered",
			slog.String("type", identity),
			slog.String("implementation", registration.Implementation))

		registrations = append(registrations, registration)
	}

	return registrations, nil
}

func newRegistration(desc shape.Descriptor) Registration {
	implementation := desc.TypeID()
	if desc.Kind() == shape.KindArray {
		implementation = FallbackImplementation
	}

	return Registration{
		Type:           desc,
		Qualifier:      Qualifier,
		Implementation: implementation,
		Creator:        StructuredCreator,
		Params:         map[string]string{ParamRequiredType: desc.String()},
	}
}

// requireTypes checks that every structured identity reachable from desc is known.
func requireTypes(desc shape.Descriptor, types *convert.Types) error {
	for current := desc; current.IsValid(); current = current.Elem() {
		if current.Kind() != shape.KindStructured {
			continue
		}

		id := current.TypeID()
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%w: %s has an empty type identity", ErrMissingRequiredType, desc)
		}

		if types == nil {
			if convert.IsWellKnown(id) {
				continue
			}

			return fmt.Errorf("%w: %s (no type registry)", ErrMissingRequiredType, id)
		}

		if _, ok := types.Lookup(id); !ok {
			return fmt.Errorf("%w: %s", ErrMissingRequiredType, id)
		}
	}

	return nil
}
