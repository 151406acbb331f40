package catalog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/0xalexb/hjarta-inject/catalog"
	"github.com/0xalexb/hjarta-inject/convert"
	"github.com/0xalexb/hjarta-inject/shape"
	"github.com/0xalexb/hjarta-inject/site"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

func request(name string, desc shape.Descriptor) site.Site {
	return site.Site{
		Qualifier: site.NewQualifier(name).WithProperty("key"),
		Declaring: "Holder",
		Member:    "field",
		Type:      desc,
	}
}

func TestIsHandledNatively(t *testing.T) {
	t.Parallel()

	tests := []struct {
		shape  string
		native bool
	}{
		{shape: "int", native: true},
		{shape: "char", native: true},
		{shape: "string", native: true},
		{shape: "list<int>", native: true},
		{shape: "set<string>", native: true},
		{shape: "map<string,list<int>>", native: true},
		{shape: "optional<Point>", native: true},
		{shape: "optionalInt", native: true},
		{shape: "optionalLong", native: true},
		{shape: "optionalDouble", native: true},
		{shape: "supplier<int>", native: true},
		{shape: "time.Duration", native: true},
		{shape: "time.Time", native: true},
		{shape: "[]int", native: false},
		{shape: "[]time.Duration", native: false},
		{shape: "acme.Point", native: false},
	}

	for _, tt := range tests {
		t.Run(tt.shape, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.native, catalog.IsHandledNatively(shape.MustParse(tt.shape)))
		})
	}
}

func TestBuild_ArrayCollapsesToOneRegistration(t *testing.T) {
	t.Parallel()

	sites := make([]site.Site, 0, 10)
	for range 10 {
		sites = append(sites, request("values", shape.ArrayOf(shape.ScalarOf(shape.Int))))
	}

	registrations, err := catalog.Build(sites, convert.NewTypes())

	require.NoError(t, err)
	require.Len(t, registrations, 1)

	registration := registrations[0]
	assert.Equal(t, "[]int", registration.Type.String())
	assert.Equal(t, catalog.Qualifier, registration.Qualifier)
	assert.Equal(t, catalog.FallbackImplementation, registration.Implementation)
	assert.Equal(t, catalog.StructuredCreator, registration.Creator)
	assert.Equal(t, map[string]string{catalog.ParamRequiredType: "[]int"}, registration.Params)
	assert.Equal(t, "[]int", registration.RequiredType())
}

func TestBuild_StructuredTypes(t *testing.T) {
	t.Parallel()

	types := convert.NewTypes()
	pointID := convert.Register[Point](types)

	sites := []site.Site{
		request("values", shape.StructuredOf(pointID)),
		request("geometry", shape.StructuredOf(pointID)),
		request("geometry", shape.ArrayOf(shape.StructuredOf(pointID))),
		request("values", shape.ScalarOf(shape.Int)),
		request("values", shape.ListOf(shape.StructuredOf(pointID))),
		request("values", shape.StructuredOf(convert.DurationTypeID)),
	}

	registrations, err := catalog.Build(sites, types)

	require.NoError(t, err)
	require.Len(t, registrations, 2)

	assert.Equal(t, "[]"+pointID, registrations[0].Type.String())
	assert.Equal(t, catalog.FallbackImplementation, registrations[0].Implementation)

	assert.Equal(t, pointID, registrations[1].Type.String())
	assert.Equal(t, pointID, registrations[1].Implementation)
	assert.Equal(t, pointID, registrations[1].RequiredType())
}

func TestBuild_SkipsDefaultedQualifiers(t *testing.T) {
	t.Parallel()

	defaulted := site.Site{
		Qualifier: site.Qualifier{Name: "", Property: "", Default: site.Unconfigured},
		Declaring: "Holder",
		Member:    "ids",
		Type:      shape.ArrayOf(shape.ScalarOf(shape.Long)),
	}

	blank := defaulted
	blank.Qualifier.Default = "  "

	withDefault := defaulted
	withDefault.Qualifier.Default = "[1]"

	registrations, err := catalog.Build([]site.Site{defaulted, blank}, nil)

	require.NoError(t, err)
	assert.Empty(t, registrations)

	registrations, err = catalog.Build([]site.Site{defaulted, withDefault}, nil)

	require.NoError(t, err)
	require.Len(t, registrations, 1)
	assert.Equal(t, "[]long", registrations[0].Type.String())
}

func TestBuild_MissingRequiredType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		desc shape.Descriptor
	}{
		{name: "structured", desc: shape.StructuredOf("acme.Missing")},
		{name: "array element", desc: shape.ArrayOf(shape.StructuredOf("acme.Missing"))},
		{name: "invalid shape", desc: shape.Descriptor{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := catalog.Build([]site.Site{request("values", tt.desc)}, convert.NewTypes())

			require.ErrorIs(t, err, catalog.ErrMissingRequiredType)
		})
	}
}

func TestBuild_DeterministicOrder(t *testing.T) {
	t.Parallel()

	types := convert.NewTypes()
	pointID := convert.Register[Point](types)

	forward := []site.Site{
		request("values", shape.ArrayOf(shape.ScalarOf(shape.String))),
		request("values", shape.StructuredOf(pointID)),
		request("values", shape.ArrayOf(shape.ScalarOf(shape.Bool))),
	}
	backward := []site.Site{forward[2], forward[1], forward[0]}

	first, err := catalog.Build(forward, types)
	require.NoError(t, err)

	second, err := catalog.Build(backward, types)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuild_LogsRegistrations(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := catalog.Build(
		[]site.Site{request("values", shape.ArrayOf(shape.ScalarOf(shape.Int)))},
		nil,
		catalog.WithLogger(logger),
	)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "config provider registered")
	assert.Contains(t, buf.String(), `"type":"[]int"`)
}
