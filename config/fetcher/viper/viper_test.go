package viper_test

import (
	"os"
	"path/filepath"
	"testing"

	viperbackend "github.com/0xalexb/hjarta-inject/config/fetcher/viper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDocument(t *testing.T, dir, file, content string) {
	t.Helper()

	err := os.WriteFile(filepath.Join(dir, file), []byte(content), 0o600)
	require.NoError(t, err)
}

func TestBackend_Fetch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDocument(t, dir, "values.yaml", `
server:
  port: 9090
  hosts: [a, b]
`)

	tree, err := viperbackend.NewBackend(viperbackend.WithPaths(dir)).Fetch("values")

	require.NoError(t, err)

	server, ok := tree["server"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 9090, server["port"])
	assert.Len(t, server["hosts"], 2)
}

func TestBackend_Fetch_JSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDocument(t, dir, "db.json", `{"timeout": 30}`)

	tree, err := viperbackend.NewBackend(viperbackend.WithPaths(dir)).Fetch("db")

	require.NoError(t, err)
	assert.EqualValues(t, 30, tree["timeout"])
}

func TestBackend_Fetch_NotFound(t *testing.T) {
	t.Parallel()

	tree, err := viperbackend.NewBackend(viperbackend.WithPaths(t.TempDir())).Fetch("absent")

	require.NoError(t, err)
	assert.Nil(t, tree)
}

func TestBackend_Fetch_Malformed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDocument(t, dir, "broken.yaml", "key: [unclosed")

	_, err := viperbackend.NewBackend(viperbackend.WithPaths(dir)).Fetch("broken")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestBackend_Fetch_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	writeDocument(t, dir, "values.yaml", "server:\n  port: 9090\n")

	t.Setenv("HJARTA_SERVER_PORT", "7070")

	tree, err := viperbackend.NewBackend(
		viperbackend.WithPaths(dir),
		viperbackend.WithEnvPrefix("HJARTA"),
	).Fetch("values")

	require.NoError(t, err)

	server, ok := tree["server"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "7070", server["port"])
}
