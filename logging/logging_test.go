package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/0xalexb/hjarta-inject/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logging.NewLogger(logging.LoggerConfig{Level: "info", Format: ""}, &buf)

	logger.Info("document loaded", slog.String("name", "values"))

	var entry map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "output should be valid JSON")
	assert.Equal(t, "document loaded", entry["msg"])
	assert.Equal(t, "values", entry["name"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestNewLogger_TextOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logging.NewLogger(logging.LoggerConfig{Level: "debug", Format: "TEXT"}, &buf)

	logger.Debug("config value absent", slog.String("key", "app.port"))

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, `msg="config value absent"`)
	assert.Contains(t, out, "key=app.port")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		level    string
		expected slog.Level
	}{
		{name: "debug", level: "debug", expected: slog.LevelDebug},
		{name: "upper info", level: "INFO", expected: slog.LevelInfo},
		{name: "warn", level: "Warn", expected: slog.LevelWarn},
		{name: "warning", level: "warning", expected: slog.LevelWarn},
		{name: "error", level: " error ", expected: slog.LevelError},
		{name: "empty", level: "", expected: slog.LevelInfo},
		{name: "unknown", level: "verbose", expected: slog.LevelInfo},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, testCase.expected, logging.ParseLevel(testCase.level))
		})
	}
}

func TestNewLogger_FiltersBelowLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logging.NewLogger(logging.LoggerConfig{Level: "warn", Format: logging.FormatJSON}, &buf)

	logger.Info("dropped")
	logger.Debug("dropped")
	require.Empty(t, buf.String())

	logger.Warn("kept")
	require.Contains(t, buf.String(), "kept")
}
