package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/gendriver/internal/attr"
	"github.com/vk/gendriver/internal/project"
)

// FakeDriver is a recording implementation of driver.API for hook tests.
type FakeDriver struct {
	Attrs    *attr.Set
	Project  *project.Project
	Packages map[string]bool

	// Uses records every Use call, in order.
	Uses     []string
	Commands []string
	Builds   []string
	Removed  []string

	ExecErr   error
	BuildErr  map[string]error
	RemoveErr map[string]error
}

// NewFakeDriver returns a driver bound to p whose package universe holds
// packages.
func NewFakeDriver(p *project.Project, packages ...string) *FakeDriver {
	known := make(map[string]bool, len(packages))
	for _, id := range packages {
		known[id] = true
	}
	return &FakeDriver{
		Attrs:     attr.New(),
		Project:   p,
		Packages:  known,
		BuildErr:  make(map[string]error),
		RemoveErr: make(map[string]error),
	}
}

func (f *FakeDriver) GetAttrBool(key string) bool        { return f.Attrs.Bool(key) }
func (f *FakeDriver) SetAttrBool(key string, value bool) { f.Attrs.SetBool(key, value) }
func (f *FakeDriver) GetAttrString(key string) string    { return f.Attrs.String(key) }
func (f *FakeDriver) SetAttrString(key, value string)    { f.Attrs.SetString(key, value) }
func (f *FakeDriver) HasAttr(key string) bool            { return f.Attrs.Has(key) }
func (f *FakeDriver) Exists(id string) bool              { return f.Packages[id] }

// Use records the dependency and appends it to the bound project, as a host would.
func (f *FakeDriver) Use(id string) {
	f.Uses = append(f.Uses, id)
	if f.Project != nil {
		f.Project.Use = append(f.Project.Use, id)
	}
}

// Exec records cmd and returns ExecErr.
func (f *FakeDriver) Exec(_ context.Context, cmd string) error {
	f.Commands = append(f.Commands, cmd)
	return f.ExecErr
}

// Build records path and returns the error configured for it, if any.
func (f *FakeDriver) Build(_ context.Context, path string) error {
	f.Builds = append(f.Builds, path)
	return f.BuildErr[path]
}

// Remove records path and returns the error configured for it, if any.
func (f *FakeDriver) Remove(path string) error {
	f.Removed = append(f.Removed, path)
	return f.RemoveErr[path]
}

// NewProjectDir creates a temporary project root containing files, given as
// slash-separated relative paths mapped to their contents.
func NewProjectDir(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}
