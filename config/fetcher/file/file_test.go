package file

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()

	err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600)
	require.NoError(t, err)
}

func TestBackend_Fetch_YAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "values.yaml", `
name: test-app
db:
  timeout: 30
`)

	tree, err := NewBackend(dir).Fetch("values")

	require.NoError(t, err)
	assert.Equal(t, "test-app", tree["name"])
	assert.Contains(t, tree, "db")
}

func TestBackend_Fetch_ExtensionOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "app.yml", "source: yml\n")
	writeFile(t, dir, "app.json", `{"source": "json"}`)

	tree, err := NewBackend(dir).Fetch("app")
	require.NoError(t, err)
	assert.Equal(t, "yml", tree["source"])

	tree, err = NewBackend(dir, WithExtensions(".json")).Fetch("app")
	require.NoError(t, err)
	assert.Equal(t, "json", tree["source"])
}

func TestBackend_Fetch_MissingFile(t *testing.T) {
	t.Parallel()

	tree, err := NewBackend(t.TempDir()).Fetch("absent")

	require.NoError(t, err)
	assert.Nil(t, tree)
}

func TestBackend_Fetch_EmptyFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "empty.yaml", "")

	tree, err := NewBackend(dir).Fetch("empty")

	require.NoError(t, err)
	assert.Nil(t, tree)
}

func TestBackend_Fetch_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	err := os.Mkdir(filepath.Join(dir, "nested.yaml"), 0o700)
	require.NoError(t, err)

	_, err = NewBackend(dir).Fetch("nested")

	require.ErrorIs(t, err, ErrPathIsDirectory)
}

func TestBackend_Fetch_InvalidName(t *testing.T) {
	t.Parallel()

	backend := NewBackend(t.TempDir())

	for _, name := range []string{"", "..", "../etc/passwd", `a\b`} {
		_, err := backend.Fetch(name)
		require.ErrorIs(t, err, ErrInvalidName, "name %q", name)
	}
}

func TestBackend_Fetch_MalformedFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "broken.yaml", "key: [unclosed")

	_, err := NewBackend(dir).Fetch("broken")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yaml")
}

type stubParser struct {
	err error
}

func (p stubParser) Parse([]byte) (map[string]any, error) {
	if p.err != nil {
		return nil, p.err
	}

	return map[string]any{"parsed": true}, nil
}

func TestBackend_WithParser(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "custom.yaml", "anything")

	tree, err := NewBackend(dir, WithParser(stubParser{})).Fetch("custom")
	require.NoError(t, err)
	assert.Equal(t, true, tree["parsed"])

	parseErr := errors.New("parse failed")

	_, err = NewBackend(dir, WithParser(stubParser{err: parseErr})).Fetch("custom")
	require.ErrorIs(t, err, parseErr)
}
