package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "corto", cfg.Generator.Command)
	assert.Equal(t, "corto", cfg.Generator.Package)
	assert.Equal(t, "bake", cfg.SubBuild.Command)
	assert.NotNil(t, cfg.Attributes)
	assert.Empty(t, cfg.Packages.Roots)
}
