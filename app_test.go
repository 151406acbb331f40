package inject_test

import (
	"context"
	"log/slog"
	"testing"

	inject "github.com/0xalexb/hjarta-inject"
	"github.com/0xalexb/hjarta-inject/config"
	"github.com/0xalexb/hjarta-inject/config/fetcher/static"
	"github.com/0xalexb/hjarta-inject/logging"
	"github.com/0xalexb/hjarta-inject/producer"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func TestNewApp_CreatesAppWithDefaultLogLevel(t *testing.T) {
	t.Parallel()

	app := inject.NewApp()
	require.NotNil(t, app)
	require.NoError(t, app.Err())
}

func TestNewApp_WithLogLevel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		level string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			app := inject.NewApp(inject.WithLogLevel(tc.level))
			require.NotNil(t, app)
		})
	}
}

func TestNewApp_WithModules(t *testing.T) {
	t.Parallel()

	var invoked bool

	module := fx.Module("test",
		fx.Invoke(func() {
			invoked = true
		}),
	)

	app := inject.NewApp(inject.WithModules(module))
	require.NotNil(t, app)

	err := app.Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Stop() })
	require.True(t, invoked)
}

func TestNewApp_LoggerIsAvailableInFxContainer(t *testing.T) {
	t.Parallel()

	var capturedLogger *slog.Logger

	module := fx.Module("test",
		fx.Invoke(func(logger *slog.Logger) {
			capturedLogger = logger
		}),
	)

	app := inject.NewApp(
		inject.WithLogLevel("debug"),
		inject.WithModules(module),
	)
	require.NotNil(t, app)

	err := app.Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Stop() })
	require.NotNil(t, capturedLogger)
}

func TestNewApp_LoggerConfigIsSupplied(t *testing.T) {
	t.Parallel()

	var capturedConfig logging.LoggerConfig

	module := fx.Module("test",
		fx.Invoke(func(config logging.LoggerConfig) {
			capturedConfig = config
		}),
	)

	app := inject.NewApp(
		inject.WithLogLevel("warn"),
		inject.WithLogFormat("text"),
		inject.WithModules(module),
	)
	require.NotNil(t, app)

	err := app.Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Stop() })
	require.Equal(t, "warn", capturedConfig.Level)
	require.Equal(t, "text", capturedConfig.Format)
}

func TestNewApp_ProvidesEngine(t *testing.T) {
	t.Parallel()

	var (
		store    *config.Store
		resolved *producer.Producer
	)

	app := inject.NewApp(
		inject.WithLogLevel("error"),
		inject.WithBackend(static.NewBackend(map[string]map[string]any{
			"values": {"app": map[string]any{"name": "demo"}},
		})),
		inject.WithModules(fx.Invoke(func(s *config.Store, p *producer.Producer) {
			store = s
			resolved = p
		})),
	)

	err := app.Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Stop() })

	require.NotNil(t, resolved)
	require.Same(t, store, resolved.Store())

	value, ok := store.Load("values").Lookup("app.name")
	require.True(t, ok)
	require.Equal(t, "demo", value)
}

func TestApp_Stop(t *testing.T) {
	t.Parallel()

	var stopCalled bool

	module := fx.Module("test",
		fx.Invoke(func(lc fx.Lifecycle) {
			lc.Append(fx.Hook{
				OnStop: func(_ context.Context) error {
					stopCalled = true

					return nil
				},
			})
		}),
	)

	app := inject.NewApp(inject.WithModules(module))
	require.NotNil(t, app)

	err := app.Start()
	require.NoError(t, err)

	err = app.Stop()
	require.NoError(t, err)
	require.True(t, stopCalled, "OnStop hook should be called")
}

func TestApp_StopOnNilApp(t *testing.T) {
	t.Parallel()

	var app *inject.App

	err := app.Stop()
	require.Error(t, err)
}

func TestApp_StartOnNilApp(t *testing.T) {
	t.Parallel()

	var app *inject.App

	err := app.Start()
	require.Error(t, err)
}

func TestApp_ErrOnNilApp(t *testing.T) {
	t.Parallel()

	var app *inject.App

	require.Error(t, app.Err())
}

func TestApp_RunOnNilApp(t *testing.T) {
	t.Parallel()

	var app *inject.App

	require.NotPanics(t, func() {
		app.Run()
	})
}

func TestApp_Run(t *testing.T) {
	t.Parallel()

	module := fx.Module("test",
		fx.Invoke(func(shutdowner fx.Shutdowner) {
			go func() {
				_ = shutdowner.Shutdown()
			}()
		}),
	)

	app := inject.NewApp(inject.WithModules(module))
	require.NotNil(t, app)

	require.NotPanics(t, func() {
		app.Run()
	})
}
