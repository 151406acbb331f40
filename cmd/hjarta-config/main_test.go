package main

import (
	"bytes"
	"testing"

	"github.com/0xalexb/hjarta-inject/convert"
	"github.com/0xalexb/hjarta-inject/shape"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testdataDir = "../../testdata"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), err
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := newRootCommand()

	assert.Equal(t, "hjarta-config", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}

	assert.ElementsMatch(t, []string{"flatten", "get", "version"}, names)
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "flatten", "--dir", testdataDir, "values")

	require.NoError(t, err)
	assert.Contains(t, out, "Server.Host = api.example.com\n")
	assert.Contains(t, out, "http.port = 9000\n")
	assert.Contains(t, out, "http.limits.read = 10\n")
	assert.NotContains(t, out, "http\n")

	out, err = execute(t, "flatten", "--all", "--dir", testdataDir, "values")

	require.NoError(t, err)
	assert.Contains(t, out, "http\n")
	assert.Contains(t, out, "http.limits\n")
}

func TestFlatten_MissingDocumentIsEmpty(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "flatten", "--dir", testdataDir, "absent")

	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestGet(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "scalar",
			args:     []string{"--type", "int", "values", "http.port"},
			expected: "9000\n",
		},
		{
			name:     "list",
			args:     []string{"--type", "list<string>", "values", "http.hosts"},
			expected: "- a.example.com\n- b.example.com\n",
		},
		{
			name:     "set",
			args:     []string{"--type", "set<string>", "values", "http.tags"},
			expected: "- edge\n- public\n",
		},
		{
			name:     "default",
			args:     []string{"--type", "int", "--default", "8080", "values", "http.missing"},
			expected: "8080\n",
		},
		{
			name:     "primitive zero",
			args:     []string{"--type", "bool", "values", "http.debug"},
			expected: "false\n",
		},
		{
			name:     "absent optional",
			args:     []string{"--type", "optional<string>", "values", "http.backup"},
			expected: "null\n",
		},
		{
			name:     "present numeric optional",
			args:     []string{"--type", "optionalLong", "values", "http.port"},
			expected: "9000\n",
		},
		{
			name:     "char",
			args:     []string{"--type", "char", "values", "Server.Host"},
			expected: "a\n",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			args := append([]string{"get", "--dir", testdataDir}, testCase.args...)

			out, err := execute(t, args...)

			require.NoError(t, err)
			assert.Equal(t, testCase.expected, out)
		})
	}
}

func TestGet_Duration(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "get", "--dir", testdataDir, "--type", "time.Duration", "--default", "1m30s",
		"values", "http.timeout")

	require.NoError(t, err)
	assert.Contains(t, out, "1m30s")
}

func TestGet_ViperBackend(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "get", "--backend", "viper", "--dir", testdataDir, "--type", "long",
		"values", "http.port")

	require.NoError(t, err)
	assert.Equal(t, "9000\n", out)
}

func TestGet_Errors(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "get", "--dir", testdataDir, "--type", "int", "values", "Server.Host")
	require.ErrorIs(t, err, convert.ErrTypeConversion)

	_, err = execute(t, "get", "--dir", testdataDir, "--type", "list<", "values", "http.port")
	require.ErrorIs(t, err, shape.ErrSyntax)

	_, err = execute(t, "get", "--backend", "etcd", "values", "http.port")
	require.ErrorIs(t, err, errUnknownBackend)

	_, err = execute(t, "get", "values")
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "hjarta-config version: dev")
	assert.Contains(t, out, "Go version: go")
}
