package yaml

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/0xalexb/hjarta-inject/config"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// ErrNotMapping is returned when the document root is not a mapping.
var ErrNotMapping = errors.New("document root is not a mapping")

// Parser implements config.Parser interface for YAML data.
// JSON documents are valid YAML and parse the same way.
type Parser struct{}

// NewParser creates a new YAML parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes a YAML document into a generic tree.
// A document consisting only of "null" or comments yields an empty tree.
func (p *Parser) Parse(data []byte) (map[string]any, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	var root any

	err := yaml.Unmarshal(data, &root)
	if err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	if root == nil {
		return map[string]any{}, nil
	}

	tree, isMapping := config.Normalize(root).(map[string]any)
	if !isMapping {
		return nil, fmt.Errorf("%w: got %T", ErrNotMapping, root)
	}

	return tree, nil
}

// ParseValue decodes a single inline value such as a default text.
// YAML flow syntax is a superset of JSON, so `8080`, `true`, `[1, 2]` and
// `{"x": 1}` all decode to the matching node; bare words decode to strings.
// Blank text decodes to nil.
func (p *Parser) ParseValue(text string) (any, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil //nolint:nilnil // blank text is an explicit null node
	}

	var node any

	err := yaml.Unmarshal([]byte(text), &node)
	if err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return config.Normalize(node), nil
}

var _ config.Parser = (*Parser)(nil)
