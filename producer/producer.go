package producer

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/0xalexb/hjarta-inject/config"
	yamlparser "github.com/0xalexb/hjarta-inject/config/parser/yaml"
	"github.com/0xalexb/hjarta-inject/convert"
	"github.com/0xalexb/hjarta-inject/shape"
	"github.com/0xalexb/hjarta-inject/site"
)

// ErrUnresolvableSite is returned when no key can be derived for a site that requires one.
var ErrUnresolvableSite = errors.New("unresolvable injection site")

// ErrMalformedDefault is returned when a substituted default text cannot be parsed or converted.
var ErrMalformedDefault = errors.New("malformed default value")

// DefaultParser parses default texts into raw nodes.
type DefaultParser interface {
	ParseValue(text string) (any, error)
}

// Producer resolves request sites against a Store. It is safe for concurrent use.
type Producer struct {
	store     *config.Store
	converter *convert.Converter
	parser    DefaultParser
	logger    *slog.Logger
}

// Option configures a Producer.
type Option func(*Producer)

// WithDefaultParser replaces the YAML default text parser.
func WithDefaultParser(parser DefaultParser) Option {
	return func(p *Producer) {
		p.parser = parser
	}
}

// WithLogger sets the logger used for resolution diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Producer) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a Producer.
func New(store *config.Store, converter *convert.Converter, opts ...Option) *Producer {
	producer := &Producer{
		store:     store,
		converter: converter,
		parser:    yamlparser.NewParser(),
		logger:    slog.Default(),
	}

	for _, apply := range opts {
		apply(producer)
	}

	return producer
}

// Store returns the document store.
func (p *Producer) Store() *config.Store {
	return p.store
}

// Converter returns the value converter.
func (p *Producer) Converter() *convert.Converter {
	return p.converter
}

// Resolve returns the typed value requested by s.
//
// The node at the derived key is converted to s.Type. When the key is absent or holds
// null, the site's default text is parsed and converted instead. Resolve fails with
// ErrUnresolvableSite when no key can be derived.
func (p *Producer) Resolve(s site.Site) (any, error) {
	key, ok := site.ResolveKey(s)
	if !ok {
		return nil, fmt.Errorf("%w: %s: no property given and none can be derived", ErrUnresolvableSite, s)
	}

	doc := p.store.Load(s.Qualifier.DocumentName())
	node, _ := doc.Lookup(key)

	return p.convert(s, key, node)
}

// ResolveNullable is Resolve for callers that accept a missing key.
//
// When no key can be derived, structured and array requests convert the whole document
// and every other shape resolves to nil.
func (p *Producer) ResolveNullable(s site.Site) (any, error) {
	if _, ok := site.ResolveKey(s); ok {
		return p.Resolve(s)
	}

	switch s.Type.Kind() {
	case shape.KindStructured, shape.KindArray:
	default:
		return nil, nil //nolint:nilnil // a missing key resolves to no value
	}

	var node any

	doc := p.store.Load(s.Qualifier.DocumentName())
	if !doc.IsEmpty() {
		node = doc.Root()
	}

	return p.convert(s, "", node)
}

func (p *Producer) convert(s site.Site, key string, node any) (any, error) {
	name := s.Qualifier.DocumentName()

	if node != nil {
		value, err := p.converter.Convert(node, s.Type)
		if err != nil {
			return nil, fmt.Errorf("document %q key %q: %w", name, key, err)
		}

		return value, nil
	}

	text, hasDefault := site.ResolveDefault(s)
	if !hasDefault {
		return p.converter.Convert(nil, s.Type) //nolint:wrapcheck // nil conversion only fails for invalid shapes
	}

	p.logger.Debug("config value absent, using default",
		slog.String("document", name), slog.String("key", key), slog.String("default", text))

	node, err := p.parseDefault(s.Type, text)
	if err != nil {
		return nil, fmt.Errorf("%w: document %q key %q default %q: %w", ErrMalformedDefault, name, key, text, err)
	}

	value, err := p.converter.Convert(node, s.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: document %q key %q default %q: %w", ErrMalformedDefault, name, key, text, err)
	}

	return value, nil
}

// parseDefault keeps default texts of string and char targets verbatim.
func (p *Producer) parseDefault(desc shape.Descriptor, text string) (any, error) {
	if desc.IsScalar(shape.String) || desc.IsScalar(shape.Char) {
		return text, nil
	}

	node, err := p.parser.ParseValue(text)
	if err != nil {
		return nil, fmt.Errorf("parsing default: %w", err)
	}

	return node, nil
}

// Typed resolves s and asserts the result to T. A nil result yields the zero T.
func Typed[T any](p *Producer, s site.Site) (T, error) {
	var zero T

	value, err := p.Resolve(s)
	if err != nil {
		return zero, err
	}

	if value == nil {
		return zero, nil
	}

	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s resolved to %T, not %T", convert.ErrTypeConversion, s, value, zero)
	}

	return typed, nil
}
