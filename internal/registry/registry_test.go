package registry

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/gendriver/internal/config"
	"github.com/vk/gendriver/internal/driver"
	"github.com/vk/gendriver/internal/project"
)

func noopHook(context.Context, driver.API, *config.Config, *project.Project) error { return nil }

func noopRule(context.Context, driver.API, *config.Config, *project.Project, string, string) error {
	return nil
}

type testModule struct{}

func (testModule) Register(r *Registry) {
	r.RegisterInit(noopHook)
	r.RegisterClean(noopHook)
	r.RegisterPrebuild(noopHook)
	r.IgnorePath("c")
	r.IgnorePath("cpp")
	r.RegisterPattern("gen-src", ".bake_cache/gen//*.c|*.cpp")
	r.RegisterRule("GEN", []string{"model.*"}, "$gen-src", noopRule)
}

func TestRegistry_Module(t *testing.T) {
	r := New()
	testModule{}.Register(r)

	assert.Len(t, r.InitHooks, 1)
	assert.Len(t, r.CleanHooks, 1)
	assert.Len(t, r.PrebuildHooks, 1)
	assert.Equal(t, []string{"c", "cpp"}, r.IgnoredPaths())

	p, ok := r.Pattern("gen-src")
	require.True(t, ok)
	assert.Equal(t, ".bake_cache/gen//*.c|*.cpp", p.Expr)

	rules := r.Rules()
	require.Len(t, rules, 1)
	assert.Equal(t, "GEN", rules[0].Name)
	assert.Equal(t, "$gen-src", rules[0].TargetRef)
	assert.Equal(t, p.Parsed, rules[0].Target)
}

func TestRegistry_IsIgnored(t *testing.T) {
	r := New()
	r.IgnorePath("c")
	r.IgnorePath("c/")

	assert.Equal(t, []string{"c"}, r.IgnoredPaths(), "paths are normalized and deduplicated")
	assert.True(t, r.IsIgnored("c"))
	assert.True(t, r.IsIgnored(filepath.Join("c", "src")))
	assert.False(t, r.IsIgnored("cpp"))
	assert.False(t, r.IsIgnored("src"))
}

func TestRegistry_Panics(t *testing.T) {
	t.Run("duplicate pattern", func(t *testing.T) {
		r := New()
		r.RegisterPattern("p", "*.c")
		assert.PanicsWithValue(t, "pattern with name 'p' already registered", func() {
			r.RegisterPattern("p", "*.c")
		})
	})

	t.Run("duplicate rule", func(t *testing.T) {
		r := New()
		r.RegisterRule("R", []string{"a"}, "*.c", noopRule)
		assert.Panics(t, func() { r.RegisterRule("R", []string{"a"}, "*.c", noopRule) })
	})

	t.Run("unknown target pattern", func(t *testing.T) {
		r := New()
		assert.PanicsWithValue(t, "rule 'R': unknown pattern 'missing'", func() {
			r.RegisterRule("R", []string{"a"}, "$missing", noopRule)
		})
	})

	t.Run("missing action or inputs", func(t *testing.T) {
		r := New()
		assert.Panics(t, func() { r.RegisterRule("R", []string{"a"}, "*.c", nil) })
		assert.Panics(t, func() { r.RegisterRule("R", nil, "*.c", noopRule) })
	})
}
