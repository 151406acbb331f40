package shape

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSyntax is returned when a descriptor text cannot be parsed.
var ErrSyntax = errors.New("invalid type shape")

//nolint:gochecknoglobals // lookup table
var scalarByName = map[string]Scalar{
	"string":  String,
	"bool":    Bool,
	"boolean": Bool,
	"int":     Int,
	"integer": Int,
	"long":    Long,
	"float":   Float,
	"double":  Double,
	"short":   Short,
	"byte":    Byte,
	"char":    Char,
}

// Parse reads the textual notation produced by Descriptor.String.
// Names that are neither scalars nor known containers parse as structured
// type identifiers.
func Parse(text string) (Descriptor, error) {
	p := parser{input: text}

	desc, err := p.descriptor()
	if err != nil {
		return Descriptor{}, err
	}

	p.skipSpace()

	if p.pos != len(p.input) {
		return Descriptor{}, fmt.Errorf("%w: unexpected %q in %q", ErrSyntax, p.input[p.pos:], text)
	}

	return desc, nil
}

// MustParse is like Parse but panics on error. Intended for static tables.
func MustParse(text string) Descriptor {
	desc, err := Parse(text)
	if err != nil {
		panic(err)
	}

	return desc
}

type parser struct {
	input string
	pos   int
}

func (p *parser) descriptor() (Descriptor, error) {
	p.skipSpace()

	if strings.HasPrefix(p.input[p.pos:], "[]") {
		p.pos += 2

		elem, err := p.descriptor()
		if err != nil {
			return Descriptor{}, err
		}

		return ArrayOf(elem), nil
	}

	name := p.name()
	if name == "" {
		return Descriptor{}, fmt.Errorf("%w: missing type name at offset %d in %q", ErrSyntax, p.pos, p.input)
	}

	p.skipSpace()

	if p.peek() != '<' {
		return p.simple(name), nil
	}

	p.pos++

	args, err := p.arguments()
	if err != nil {
		return Descriptor{}, err
	}

	return p.generic(name, args)
}

func (p *parser) simple(name string) Descriptor {
	if scalar, ok := scalarByName[name]; ok {
		return ScalarOf(scalar)
	}

	switch name {
	case "optionalInt":
		return OptionalInt()
	case "optionalLong":
		return OptionalLong()
	case "optionalDouble":
		return OptionalDouble()
	}

	return StructuredOf(name)
}

func (p *parser) generic(name string, args []Descriptor) (Descriptor, error) {
	single := func(build func(Descriptor) Descriptor) (Descriptor, error) {
		if len(args) != 1 {
			return Descriptor{}, fmt.Errorf("%w: %s takes one type argument, got %d", ErrSyntax, name, len(args))
		}

		return build(args[0]), nil
	}

	switch name {
	case "list":
		return single(ListOf)
	case "set":
		return single(SetOf)
	case "optional":
		return single(OptionalOf)
	case "supplier":
		return single(SupplierOf)
	case "map":
		switch len(args) {
		case 1:
			return MapOf(args[0]), nil
		case 2:
			if !args[0].IsScalar(String) {
				return Descriptor{}, fmt.Errorf("%w: map keys must be string, got %s", ErrSyntax, args[0])
			}

			return MapOf(args[1]), nil
		default:
			return Descriptor{}, fmt.Errorf("%w: map takes one or two type arguments, got %d", ErrSyntax, len(args))
		}
	}

	return Descriptor{}, fmt.Errorf("%w: %q is not a generic container", ErrSyntax, name)
}

func (p *parser) arguments() ([]Descriptor, error) {
	var args []Descriptor

	for {
		arg, err := p.descriptor()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		p.skipSpace()

		switch p.peek() {
		case ',':
			p.pos++
		case '>':
			p.pos++

			return args, nil
		default:
			return nil, fmt.Errorf("%w: expected ',' or '>' at offset %d in %q", ErrSyntax, p.pos, p.input)
		}
	}
}

func (p *parser) name() string {
	start := p.pos

	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == '<' || c == '>' || c == ',' || c == ' ' || c == '[' {
			break
		}

		p.pos++
	}

	return p.input[start:p.pos]
}

func (p *parser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}

	return p.input[p.pos]
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}
