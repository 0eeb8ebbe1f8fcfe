package host

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/gendriver/internal/config"
	"github.com/vk/gendriver/internal/driver"
	"github.com/vk/gendriver/internal/project"
	"github.com/vk/gendriver/internal/registry"
)

func noopRule(context.Context, driver.API, *config.Config, *project.Project, string, string) error {
	return nil
}

func writeAt(t *testing.T, root, rel string, mod time.Time) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	require.NoError(t, os.Chtimes(path, mod, mod))
}

func testRule(t *testing.T) (*registry.Registry, *registry.Rule) {
	t.Helper()
	r := registry.New()
	r.RegisterPattern("gen-src", ".bake_cache/gen//*.c|*.cpp")
	r.RegisterRule("GEN", []string{"model.*", "project.json"}, "$gen-src", noopRule)
	return r, r.Rules()[0]
}

func TestEvaluateRule(t *testing.T) {
	base := time.Now().Add(-time.Hour).Truncate(time.Second)

	t.Run("no inputs", func(t *testing.T) {
		r, rule := testRule(t)
		st, err := evaluateRule(t.TempDir(), rule, r.IsIgnored)
		require.NoError(t, err)
		assert.Empty(t, st.inputs)
		assert.False(t, st.stale)
	})

	t.Run("no outputs", func(t *testing.T) {
		root := t.TempDir()
		writeAt(t, root, "project.json", base)
		writeAt(t, root, "model.json", base.Add(time.Minute))

		r, rule := testRule(t)
		st, err := evaluateRule(root, rule, r.IsIgnored)
		require.NoError(t, err)
		assert.Equal(t, []string{"model.json", "project.json"}, st.inputs)
		assert.Equal(t, "model.json", st.newest)
		assert.True(t, st.stale)
	})

	t.Run("outputs up to date", func(t *testing.T) {
		root := t.TempDir()
		writeAt(t, root, "project.json", base)
		writeAt(t, root, ".bake_cache/gen/a.c", base.Add(time.Minute))
		writeAt(t, root, ".bake_cache/gen/sub/b.cpp", base.Add(2*time.Minute))
		writeAt(t, root, ".bake_cache/gen/notes.txt", base.Add(-time.Minute))

		r, rule := testRule(t)
		st, err := evaluateRule(root, rule, r.IsIgnored)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(".bake_cache", "gen", "a.c"),
			filepath.Join(".bake_cache", "gen", "sub", "b.cpp"),
		}, st.outputs)
		assert.False(t, st.stale)
	})

	t.Run("input newer than oldest output", func(t *testing.T) {
		root := t.TempDir()
		writeAt(t, root, ".bake_cache/gen/a.c", base)
		writeAt(t, root, ".bake_cache/gen/b.c", base.Add(2*time.Minute))
		writeAt(t, root, "project.json", base.Add(time.Minute))

		r, rule := testRule(t)
		st, err := evaluateRule(root, rule, r.IsIgnored)
		require.NoError(t, err)
		assert.True(t, st.stale)
	})

	t.Run("ignored directories are not outputs", func(t *testing.T) {
		root := t.TempDir()
		writeAt(t, root, "project.json", base)
		writeAt(t, root, ".bake_cache/gen/skip/a.c", base.Add(time.Minute))

		r, rule := testRule(t)
		r.IgnorePath(".bake_cache/gen/skip")
		st, err := evaluateRule(root, rule, r.IsIgnored)
		require.NoError(t, err)
		assert.Empty(t, st.outputs)
		assert.True(t, st.stale)
	})
}
