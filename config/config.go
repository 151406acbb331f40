package config

// Backend fetches a named nested configuration document.
//
// A nil or empty map means the document does not exist; Store treats that the
// same as an empty document. Implementations must be safe for concurrent use.
type Backend interface {
	Fetch(name string) (map[string]any, error)
}

// BackendFunc adapts a function to the Backend interface.
type BackendFunc func(name string) (map[string]any, error)

// Fetch calls f(name).
func (f BackendFunc) Fetch(name string) (map[string]any, error) {
	return f(name)
}

// Parser decodes raw document bytes into a generic tree of maps, slices and scalars.
// See config/parser/yaml for the goccy/go-yaml implementation.
type Parser interface {
	Parse(data []byte) (map[string]any, error)
}

// Validator defines an interface for validating structured configuration values.
type Validator interface {
	Validate() error
}

// Defaulter defines an interface for setting default values in structured configuration values.
type Defaulter interface {
	SetDefaults() (changed bool)
}
