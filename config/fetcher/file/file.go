package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/0xalexb/hjarta-inject/config"
	yamlparser "github.com/0xalexb/hjarta-inject/config/parser/yaml"
)

// ErrPathIsDirectory is returned when a document path points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// ErrInvalidName is returned when a document name would resolve outside the backend directory.
var ErrInvalidName = errors.New("invalid document name")

// DefaultExtensions are tried in order when resolving a document name to a file.
//
//nolint:gochecknoglobals // read-only default
var DefaultExtensions = []string{".yaml", ".yml", ".json"}

// Backend implements config.Backend over a directory of document files.
// The document "values" is read from <dir>/values.yaml, values.yml or values.json,
// whichever exists first.
type Backend struct {
	dir        string
	extensions []string
	parser     config.Parser
}

// Option configures a Backend.
type Option func(*Backend)

// WithParser replaces the YAML parser.
func WithParser(parser config.Parser) Option {
	return func(b *Backend) {
		b.parser = parser
	}
}

// WithExtensions replaces the list of file extensions tried for each name.
func WithExtensions(extensions ...string) Option {
	return func(b *Backend) {
		b.extensions = extensions
	}
}

// NewBackend creates a directory backend.
func NewBackend(dir string, opts ...Option) *Backend {
	backend := &Backend{
		dir:        filepath.Clean(dir),
		extensions: DefaultExtensions,
		parser:     yamlparser.NewParser(),
	}

	for _, apply := range opts {
		apply(backend)
	}

	return backend
}

// Fetch reads and parses the document file for name.
// A missing or empty file yields a nil tree and no error.
func (b *Backend) Fetch(name string) (map[string]any, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == ".." {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	for _, ext := range b.extensions {
		fpath := filepath.Join(b.dir, name+ext)

		stat, err := os.Stat(fpath)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("stat file %q: %w", fpath, err)
		}

		if stat.IsDir() {
			return nil, fmt.Errorf("path %q: %w", fpath, ErrPathIsDirectory)
		}

		return b.read(fpath)
	}

	return nil, nil
}

func (b *Backend) read(fpath string) (map[string]any, error) {
	data, err := os.ReadFile(fpath) // #nosec G304 -- name is validated and joined to the backend directory
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", fpath, err)
	}

	tree, err := b.parser.Parse(data)
	if errors.Is(err, yamlparser.ErrEmptyData) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("parsing file %q: %w", fpath, err)
	}

	return tree, nil
}

var _ config.Backend = (*Backend)(nil)
