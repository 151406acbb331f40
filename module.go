package inject

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"

	"github.com/0xalexb/hjarta-inject/catalog"
	"github.com/0xalexb/hjarta-inject/config"
	"github.com/0xalexb/hjarta-inject/config/fetcher/file"
	"github.com/0xalexb/hjarta-inject/convert"
	"github.com/0xalexb/hjarta-inject/producer"
	"github.com/0xalexb/hjarta-inject/shape"
	"github.com/0xalexb/hjarta-inject/site"

	"go.uber.org/fx"
)

// ModuleName is the Fx module name of the configuration engine.
const ModuleName = "config"

// ConfigTag is the Fx tag of synthesized creators. Consume them with
// fx.ParamTags(inject.ConfigTag).
const ConfigTag = `name:"` + catalog.Qualifier + `"`

// ErrNilSample is returned when a target or type sample is an untyped nil.
var ErrNilSample = errors.New("sample value is nil")

// Creator is the signature of a synthesized creator for T. It resolves the value
// described by a qualifier: the node at its property, or the whole document when it
// has none, falling back to the default text when the node is absent.
type Creator[T any] = func(site.Qualifier) (T, error)

//nolint:gochecknoglobals // reflected signature types
var (
	qualifierType = reflect.TypeFor[site.Qualifier]()
	producerType  = reflect.TypeFor[*producer.Producer]()
	errorType     = reflect.TypeFor[error]()
)

// NewModule creates the Fx module of the configuration engine.
//
// The module provides *config.Store, *convert.Types, *convert.Converter,
// *producer.Producer and the catalog's []catalog.Registration. Every registration
// becomes a Creator tagged ConfigTag, and every target struct T is provided as a
// populated *T. Module options other than logging and modules are honored.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(opts ...Option) fx.Option {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	return newModule(&options, slog.Default())
}

//nolint:ireturn // fx.Option is the standard return type for Fx modules
func newModule(options *Options, logger *slog.Logger) fx.Option {
	types := convert.NewTypes()

	for _, sample := range options.Types {
		typ, err := sampleType(sample)
		if err != nil {
			return fx.Error(fmt.Errorf("registering type: %w", err))
		}

		types.Register(convert.TypeID(typ), typ)
	}

	sites := slices.Clone(options.Sites)
	targets := make([]reflect.Type, 0, len(options.Targets))

	for _, target := range options.Targets {
		typ, err := sampleType(target)
		if err != nil {
			return fx.Error(fmt.Errorf("scanning target: %w", err))
		}

		fields, err := site.Scan(typ, types)
		if err != nil {
			return fx.Error(fmt.Errorf("scanning target %s: %w", typ, err))
		}

		for _, field := range fields {
			sites = append(sites, field.Site)
		}

		targets = append(targets, typ)
	}

	registrations, err := catalog.Build(sites, types, catalog.WithLogger(logger))
	if err != nil {
		return fx.Error(fmt.Errorf("building config catalog: %w", err))
	}

	converter := convert.New(convert.WithTypes(types), convert.WithLogger(logger))
	backend := selectBackend(options)

	moduleOpts := []fx.Option{
		fx.Supply(types, converter, registrations),
		fx.Provide(func() *config.Store {
			return config.NewStore(backend, config.WithLogger(logger))
		}),
		fx.Provide(func(store *config.Store, converter *convert.Converter) *producer.Producer {
			return producer.New(store, converter, producer.WithLogger(logger))
		}),
	}

	for _, registration := range registrations {
		goType, err := converter.GoType(registration.Type)
		if err != nil {
			return fx.Error(fmt.Errorf("registering %s: %w", registration.Type, err))
		}

		moduleOpts = append(moduleOpts, fx.Provide(
			fx.Annotate(newCreatorConstructor(registration.Type, goType), fx.ResultTags(ConfigTag)),
		))
	}

	for _, typ := range targets {
		moduleOpts = append(moduleOpts, fx.Provide(newTargetConstructor(typ)))
	}

	if len(options.Preload) > 0 {
		names := slices.Clone(options.Preload)

		moduleOpts = append(moduleOpts, fx.Invoke(func(lifecycle fx.Lifecycle, store *config.Store) {
			lifecycle.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					for _, name := range names {
						doc := store.Load(name)
						logger.Info("config document preloaded",
							slog.String("name", name), slog.Int("entries", doc.Len()))
					}

					return nil
				},
			})
		}))
	}

	return fx.Module(ModuleName, moduleOpts...)
}

//nolint:ireturn // nil selects empty documents
func selectBackend(options *Options) config.Backend {
	switch {
	case options.Backend != nil:
		return options.Backend
	case options.ConfigDir != "":
		return file.NewBackend(options.ConfigDir)
	default:
		return nil
	}
}

func sampleType(sample any) (reflect.Type, error) {
	typ := reflect.TypeOf(sample)
	if typ == nil {
		return nil, ErrNilSample
	}

	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	return typ, nil
}

// newCreatorConstructor builds func(*producer.Producer) func(site.Qualifier) (T, error)
// for the Go type T of desc.
func newCreatorConstructor(desc shape.Descriptor, goType reflect.Type) any {
	creatorType := reflect.FuncOf([]reflect.Type{qualifierType}, []reflect.Type{goType, errorType}, false)
	constructorType := reflect.FuncOf([]reflect.Type{producerType}, []reflect.Type{creatorType}, false)

	return reflect.MakeFunc(constructorType, func(args []reflect.Value) []reflect.Value {
		p, _ := args[0].Interface().(*producer.Producer)

		creator := reflect.MakeFunc(creatorType, func(in []reflect.Value) []reflect.Value {
			qualifier, _ := in[0].Interface().(site.Qualifier)
			out := reflect.New(goType).Elem()

			value, err := p.ResolveNullable(site.Site{
				Qualifier: qualifier,
				Declaring: "",
				Member:    "",
				Type:      desc,
			})
			if err == nil && value != nil {
				out.Set(reflect.ValueOf(value))
			}

			return []reflect.Value{out, errorValue(err)}
		})

		return []reflect.Value{creator}
	}).Interface()
}

// newTargetConstructor builds func(*producer.Producer) (*T, error) returning a populated T.
func newTargetConstructor(typ reflect.Type) any {
	constructorType := reflect.FuncOf(
		[]reflect.Type{producerType},
		[]reflect.Type{reflect.PointerTo(typ), errorType},
		false,
	)

	return reflect.MakeFunc(constructorType, func(args []reflect.Value) []reflect.Value {
		p, _ := args[0].Interface().(*producer.Producer)
		target := reflect.New(typ)

		err := Populate(p, target.Interface())
		if err != nil {
			return []reflect.Value{reflect.Zero(target.Type()), errorValue(err)}
		}

		return []reflect.Value{target, errorValue(nil)}
	}).Interface()
}

// Shape describes T the way a struct field of type T is described.
// It panics when T has no configuration shape.
func Shape[T any]() shape.Descriptor {
	desc, err := site.Describe(reflect.TypeFor[T](), nil)
	if err != nil {
		panic(err)
	}

	return desc
}

func errorValue(err error) reflect.Value {
	if err == nil {
		return reflect.Zero(errorType)
	}

	return reflect.ValueOf(&err).Elem()
}
