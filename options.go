package inject

import (
	"github.com/0xalexb/hjarta-inject/config"
	"github.com/0xalexb/hjarta-inject/site"

	"go.uber.org/fx"
)

// Options holds configuration settings for the application.
type Options struct {
	Modules   []fx.Option
	LogLevel  string
	LogFormat string
	// Backend fetches documents. It takes precedence over ConfigDir.
	Backend config.Backend
	// ConfigDir is served by a file backend when no Backend is set.
	ConfigDir string
	// Targets are struct values whose tagged fields are scanned for request sites.
	// Each target type is also provided to the container, populated.
	Targets []any
	// Sites are request sites declared without a struct.
	Sites []site.Site
	// Types are structured types available for conversion, given as sample values.
	Types []any
	// Preload names documents loaded when the application starts.
	Preload []string
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithLogLevel sets the log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFormat selects "json" (default) or "text" log output.
func WithLogFormat(format string) Option {
	return func(opts *Options) {
		opts.LogFormat = format
	}
}

// WithBackend sets the document backend.
func WithBackend(backend config.Backend) Option {
	return func(opts *Options) {
		opts.Backend = backend
	}
}

// WithConfigDir reads documents from <dir>/<name>.yaml, .yml or .json.
func WithConfigDir(dir string) Option {
	return func(opts *Options) {
		opts.ConfigDir = dir
	}
}

// WithTargets registers structs whose config-tagged fields are injected.
// Pass a zero value or a pointer, e.g. WithTargets(ServerSettings{}).
func WithTargets(targets ...any) Option {
	return func(opts *Options) {
		opts.Targets = append(opts.Targets, targets...)
	}
}

// WithSites registers request sites that are not backed by struct fields.
func WithSites(sites ...site.Site) Option {
	return func(opts *Options) {
		opts.Sites = append(opts.Sites, sites...)
	}
}

// WithTypes registers structured types by sample value, e.g. WithTypes(Point{}).
func WithTypes(samples ...any) Option {
	return func(opts *Options) {
		opts.Types = append(opts.Types, samples...)
	}
}

// WithPreload loads the named documents on application start.
func WithPreload(names ...string) Option {
	return func(opts *Options) {
		opts.Preload = append(opts.Preload, names...)
	}
}
