package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestParseDescriptor(t *testing.T) {
	t.Run("full descriptor", func(t *testing.T) {
		desc, err := ParseDescriptor([]byte(`{
			"id": "foo",
			"type": "application",
			"value": {
				"language": "cpp",
				"public": true,
				"use": ["bar", "baz", "bar"],
				"use-private": ["qux"]
			},
			"gen": {"scope": "ns", "c4cpp": false}
		}`))
		require.NoError(t, err)

		p := desc.Project
		assert.Equal(t, "foo", p.ID)
		assert.Equal(t, Application, p.Type)
		assert.Equal(t, "cpp", p.Language)
		assert.True(t, p.Public)
		assert.Equal(t, []string{"bar", "baz", "bar"}, p.Use, "duplicates are preserved")
		assert.Equal(t, []string{"qux"}, p.UsePrivate)

		require.Len(t, desc.Attributes, 2)
		assert.True(t, desc.Attributes["scope"].RawEquals(cty.StringVal("ns")))
		assert.True(t, desc.Attributes["c4cpp"].RawEquals(cty.False))
	})

	t.Run("defaults", func(t *testing.T) {
		desc, err := ParseDescriptor([]byte(`{"id": "lib", "type": "package"}`))
		require.NoError(t, err)

		p := desc.Project
		assert.Equal(t, Package, p.Type)
		assert.Equal(t, DefaultLanguage, p.Language)
		assert.True(t, p.Public, "packages are public by default")
		assert.Empty(t, p.Use)
		assert.Empty(t, desc.Attributes)
	})

	t.Run("applications are private by default", func(t *testing.T) {
		desc, err := ParseDescriptor([]byte(`{"id": "app", "value": {"use": []}}`))
		require.NoError(t, err)
		assert.Equal(t, Application, desc.Project.Type)
		assert.False(t, desc.Project.Public)
		assert.Empty(t, desc.Project.Use)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := ParseDescriptor([]byte(`{"type": "package"}`))
		assert.ErrorIs(t, err, ErrMissingID)

		_, err = ParseDescriptor([]byte(`["not", "an", "object"]`))
		assert.ErrorContains(t, err, "must be a JSON object")

		_, err = ParseDescriptor([]byte(`{"id": "x", "value": {"use": [1]}}`))
		assert.ErrorContains(t, err, "use must only contain strings")

		_, err = ParseDescriptor([]byte(`{"id": "x", "value": {"public": "yes"}}`))
		assert.ErrorContains(t, err, "value.public must be a bool")

		_, err = ParseDescriptor([]byte(`{"id": `))
		assert.Error(t, err)
	})
}

func TestLoadDescriptor(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DescriptorFile), []byte(`{"id": "foo", "type": "package"}`), 0o644))

	desc, err := LoadDescriptor(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, desc.Project.Path)
	assert.Equal(t, "foo", desc.Project.ID)

	_, err = LoadDescriptor(t.TempDir())
	assert.ErrorContains(t, err, "failed to read project descriptor")
}

func TestParseType(t *testing.T) {
	assert.Equal(t, Package, ParseType("package"))
	assert.Equal(t, Package, ParseType(" Library "))
	assert.Equal(t, Application, ParseType("application"))
	assert.Equal(t, Application, ParseType(""))
	assert.Equal(t, "package", Package.String())
	assert.Equal(t, "application", Application.String())
}
