package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, root string, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestMatchDir(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "model.xml")
	touch(t, root, "model.json")
	touch(t, root, "project.json")
	require.NoError(t, os.Mkdir(filepath.Join(root, "model.d"), 0o755))

	names, err := MatchDir(root, "model.*")
	require.NoError(t, err)
	assert.Equal(t, []string{"model.json", "model.xml"}, names, "directories are skipped and names sorted")

	names, err = MatchDir(root, "*.cpp")
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = MatchDir(filepath.Join(root, "missing"), "model.*")
	assert.Error(t, err)

	_, err = MatchDir(root, "[")
	assert.ErrorContains(t, err, "invalid pattern")
}

func TestMatchDir_Symlinks(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "shared/model.json")
	require.NoError(t, os.Mkdir(filepath.Join(root, "shared", "dir"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(root, "shared", "model.json"), filepath.Join(root, "model.json")))
	require.NoError(t, os.Symlink(filepath.Join(root, "shared", "dir"), filepath.Join(root, "model.d")))
	require.NoError(t, os.Symlink(filepath.Join(root, "gone"), filepath.Join(root, "model.xml")))

	names, err := MatchDir(root, "model.*")
	require.NoError(t, err)
	assert.Equal(t, []string{"model.json"}, names, "only links to regular files match")
}

func TestIsDir(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "file")
	assert.True(t, IsDir(root))
	assert.False(t, IsDir(filepath.Join(root, "file")))
	assert.False(t, IsDir(filepath.Join(root, "missing")))
}

func TestParsePattern(t *testing.T) {
	p, err := ParsePattern(".bake_cache/gen//*.c|*.cpp|*.cxx")
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash(".bake_cache/gen"), p.Dir)
	assert.True(t, p.Recursive)
	assert.Equal(t, []string{"*.c", "*.cpp", "*.cxx"}, p.Globs)

	p, err = ParsePattern("model.*")
	require.NoError(t, err)
	assert.False(t, p.Recursive)
	assert.Equal(t, []string{"model.*"}, p.Globs)

	_, err = ParsePattern("src//")
	assert.ErrorContains(t, err, "has no globs")

	_, err = ParsePattern("[")
	assert.ErrorContains(t, err, "invalid glob")
}

func TestPattern_Match(t *testing.T) {
	root := t.TempDir()
	touch(t, root, ".bake_cache/gen/load.c")
	touch(t, root, ".bake_cache/gen/nested/api.cpp")
	touch(t, root, ".bake_cache/gen/skip/hidden.c")
	touch(t, root, ".bake_cache/gen/readme.md")
	touch(t, root, "src/main.c")

	p, err := ParsePattern(".bake_cache/gen//*.c|*.cpp|*.cxx")
	require.NoError(t, err)

	files, err := p.Match(root, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.FromSlash(".bake_cache/gen/load.c"),
		filepath.FromSlash(".bake_cache/gen/nested/api.cpp"),
		filepath.FromSlash(".bake_cache/gen/skip/hidden.c"),
	}, files)

	skip := func(rel string) bool { return filepath.Base(rel) == "skip" }
	files, err = p.Match(root, skip)
	require.NoError(t, err)
	assert.Len(t, files, 2)

	missing, err := ParsePattern("nope//*.c")
	require.NoError(t, err)
	files, err = missing.Match(root, nil)
	require.NoError(t, err)
	assert.Empty(t, files)

	flat, err := ParsePattern("src/*.c|src/*.c")
	require.NoError(t, err)
	files, err = flat.Match(root, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.FromSlash("src/main.c")}, files)
}
