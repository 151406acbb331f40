// Package viper provides a config.Backend that locates named documents with spf13/viper.
//
// Viper searches each configured path for a file called <name> with any extension it
// supports (yaml, json, toml, ...). When an environment prefix is set, environment
// variables override keys present in the file: with prefix "APP", the key db.timeout
// is read from APP_DB_TIMEOUT.
//
// Viper treats keys case-insensitively and returns them lowercased.
package viper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/0xalexb/hjarta-inject/config"
)

// Backend implements config.Backend with one viper instance per fetch.
type Backend struct {
	paths      []string
	configType string
	envPrefix  string
}

// Option configures a Backend.
type Option func(*Backend)

// WithPaths adds directories searched for document files.
func WithPaths(paths ...string) Option {
	return func(b *Backend) {
		b.paths = append(b.paths, paths...)
	}
}

// WithConfigType forces the file format when files carry no extension.
func WithConfigType(configType string) Option {
	return func(b *Backend) {
		b.configType = configType
	}
}

// WithEnvPrefix enables environment overrides for keys present in the document.
func WithEnvPrefix(prefix string) Option {
	return func(b *Backend) {
		b.envPrefix = prefix
	}
}

// NewBackend creates a viper backend. Without WithPaths the working directory is searched.
func NewBackend(opts ...Option) *Backend {
	backend := &Backend{
		paths:      nil,
		configType: "",
		envPrefix:  "",
	}

	for _, apply := range opts {
		apply(backend)
	}

	if len(backend.paths) == 0 {
		backend.paths = []string{"."}
	}

	return backend
}

// Fetch reads the document called name. A document that cannot be found yields a nil tree.
func (b *Backend) Fetch(name string) (map[string]any, error) {
	instance := viper.New()
	instance.SetConfigName(name)

	for _, path := range b.paths {
		instance.AddConfigPath(path)
	}

	if b.configType != "" {
		instance.SetConfigType(b.configType)
	}

	if b.envPrefix != "" {
		instance.SetEnvPrefix(b.envPrefix)
		instance.SetEnvKeyReplacer(strings.NewReplacer(config.PathSeparator, "_"))
		instance.AutomaticEnv()
	}

	err := instance.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("reading config %q: %w", name, err)
	}

	return instance.AllSettings(), nil
}

var _ config.Backend = (*Backend)(nil)
