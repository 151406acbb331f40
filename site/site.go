package site

import (
	"strings"

	"github.com/0xalexb/hjarta-inject/shape"
)

// DefaultName is the document consulted when a qualifier names none. For this
// document a missing property is derived from the declaring type and member names.
const DefaultName = "values"

// Unconfigured marks a qualifier without an explicit default.
const Unconfigured = "hjarta.inject.unconfigured-default"

// Qualifier carries the raw fields of a configuration request.
type Qualifier struct {
	// Name is the logical document name. Empty means DefaultName.
	Name string
	// Property is the explicit flattened key path.
	Property string
	// Default is the default text, or Unconfigured.
	Default string
}

// NewQualifier returns a qualifier for document name with no property and no default.
func NewQualifier(name string) Qualifier {
	return Qualifier{
		Name:     name,
		Property: "",
		Default:  Unconfigured,
	}
}

// WithProperty returns a copy of q with the property set.
func (q Qualifier) WithProperty(property string) Qualifier {
	q.Property = property

	return q
}

// WithDefault returns a copy of q with the default text set.
func (q Qualifier) WithDefault(text string) Qualifier {
	q.Default = text

	return q
}

// DocumentName returns the trimmed document name, or DefaultName when none is given.
func (q Qualifier) DocumentName() string {
	name := strings.TrimSpace(q.Name)
	if name == "" {
		return DefaultName
	}

	return name
}

// IsDefaulted reports whether q carries no explicit name, property or default.
// Such sites do not take part in configuration injection.
func (q Qualifier) IsDefaulted() bool {
	return strings.TrimSpace(q.Name) == "" &&
		strings.TrimSpace(q.Property) == "" &&
		!q.hasDefault()
}

func (q Qualifier) hasDefault() bool {
	text := strings.TrimSpace(q.Default)

	return text != "" && text != Unconfigured
}

// Site is a single request for a configuration value.
type Site struct {
	Qualifier Qualifier
	// Declaring is the name of the type declaring the member, possibly package-qualified.
	Declaring string
	// Member is the field or parameter name.
	Member string
	// Type is the requested shape.
	Type shape.Descriptor
}

// String identifies the site for diagnostics.
func (s Site) String() string {
	var sb strings.Builder

	if s.Declaring != "" || s.Member != "" {
		sb.WriteString(s.Declaring)
		sb.WriteByte('.')
		sb.WriteString(s.Member)
		sb.WriteByte(' ')
	}

	sb.WriteString(s.Type.String())
	sb.WriteString(" from ")
	sb.WriteString(s.Qualifier.DocumentName())

	if property := strings.TrimSpace(s.Qualifier.Property); property != "" {
		sb.WriteByte(':')
		sb.WriteString(property)
	}

	return sb.String()
}
