package gen

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/gendriver/internal/attr"
	"github.com/vk/gendriver/internal/config"
	"github.com/vk/gendriver/internal/project"
	"github.com/vk/gendriver/internal/testutil"
)

func fooProject(use ...string) *project.Project {
	return &project.Project{
		ID:       "foo",
		Path:     "/src/foo",
		Language: "cpp",
		Public:   true,
		Type:     project.Application,
		Use:      use,
	}
}

func TestBuildCommand_NoModel(t *testing.T) {
	p := fooProject("bar")
	d := testutil.NewFakeDriver(p)
	d.SetAttrBool(attr.C4Cpp, true)

	got := BuildCommand("corto", d, p).String()
	assert.Equal(t,
		"corto pp -g c/interface -g c/project --name foo --attr c=src --attr cpp=src --attr h=include --attr hpp=include --attr hidden=.bake_cache/gen --attr app=true --c4cpp --use bar",
		got)
}

func TestBuildCommand_OnlySelfReferenceOmitsUse(t *testing.T) {
	p := fooProject("foo/c")
	d := testutil.NewFakeDriver(p)
	d.SetAttrBool(attr.C4Cpp, true)

	line := BuildCommand("corto", d, p)
	assert.False(t, line.Has("--use"))
	assert.NotContains(t, line.String(), "--use")
	assert.Equal(t,
		"corto pp -g c/interface -g c/project --name foo --attr c=src --attr cpp=src --attr h=include --attr hpp=include --attr hidden=.bake_cache/gen --attr app=true --c4cpp",
		line.String())
}

func TestBuildCommand_WithModel(t *testing.T) {
	p := fooProject()
	d := testutil.NewFakeDriver(p)
	d.SetAttrString(attr.Model, "model.json")
	d.SetAttrString(attr.Scope, "ns")

	line := BuildCommand("corto", d, p)
	want := []string{
		"corto", "pp", "project.json", "model.json",
		"--path", "/src/foo", "--scope", "ns", "--lang", "cpp",
		"--name", "foo",
	}
	if diff := cmp.Diff(want, line.Argv()[:len(want)]); diff != "" {
		t.Errorf("command prefix mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, line.String(), "corto pp project.json model.json --path /src/foo --scope ns --lang cpp")
	assert.Empty(t, line.Values("-g"))
}

func TestBuildCommand_Scope(t *testing.T) {
	p := fooProject()

	t.Run("defaults to project id", func(t *testing.T) {
		d := testutil.NewFakeDriver(p)
		d.SetAttrString(attr.Model, "model.xml")
		assert.Equal(t, []string{"foo"}, BuildCommand("corto", d, p).Values("--scope"))
	})

	t.Run("empty scope attribute is ignored", func(t *testing.T) {
		d := testutil.NewFakeDriver(p)
		d.SetAttrString(attr.Model, "model.xml")
		d.SetAttrString(attr.Scope, "")
		assert.Equal(t, []string{"foo"}, BuildCommand("corto", d, p).Values("--scope"))
	})
}

func TestBuildCommand_Visibility(t *testing.T) {
	testCases := []struct {
		name      string
		public    bool
		typ       project.Type
		wantAttrs []string
	}{
		{"public package", true, project.Package, nil},
		{"private package", false, project.Package, []string{"local=true"}},
		{"public app", true, project.Application, []string{"app=true"}},
		{"private app", false, project.Application, []string{"local=true", "app=true"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := &project.Project{ID: "x", Path: "/x", Language: "c", Public: tc.public, Type: tc.typ}
			d := testutil.NewFakeDriver(p)

			attrs := BuildCommand("corto", d, p).Values("--attr")
			base := []string{"c=src", "cpp=src", "h=include", "hpp=include", "hidden=.bake_cache/gen"}
			if diff := cmp.Diff(append(base, tc.wantAttrs...), attrs); diff != "" {
				t.Errorf("--attr values mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildCommand_SelfReferenceFiltering(t *testing.T) {
	p := fooProject("bar", "foo/c", "baz", "foo/cpp", "foo.c", "foo.cpp", "foobar/c")
	p.UsePrivate = []string{"foo/cpp", "qux", "foo/c"}
	d := testutil.NewFakeDriver(p)

	line := BuildCommand("corto", d, p)
	assert.Equal(t, []string{"bar,baz,foobar/c"}, line.Values("--use"))
	assert.Equal(t, []string{"qux"}, line.Values("--use-private"))

	p.UsePrivate = []string{"foo/c"}
	line = BuildCommand("corto", d, p)
	assert.False(t, line.Has("--use-private"))
}

func TestBuildCommand_NoC4CppWhenUnset(t *testing.T) {
	p := fooProject()
	p.Language = "c"
	d := testutil.NewFakeDriver(p)
	assert.False(t, BuildCommand("corto", d, p).Has("--c4cpp"))
}

func TestGenSource(t *testing.T) {
	ctx := context.Background()

	t.Run("executes the command once", func(t *testing.T) {
		p := fooProject("bar")
		d := testutil.NewFakeDriver(p)
		cfg := config.Default()
		cfg.Generator.Command = "/opt/bin/corto"

		require.NoError(t, GenSource(ctx, d, cfg, p, "project.json", ""))
		require.Len(t, d.Commands, 1)
		assert.Contains(t, d.Commands[0], "/opt/bin/corto pp -g c/interface")
	})

	t.Run("nil config uses defaults", func(t *testing.T) {
		p := fooProject()
		d := testutil.NewFakeDriver(p)
		require.NoError(t, GenSource(ctx, d, nil, p, "", ""))
		require.Len(t, d.Commands, 1)
		assert.Contains(t, d.Commands[0], "corto pp ")
	})

	t.Run("exec failure is returned without retry", func(t *testing.T) {
		p := fooProject()
		d := testutil.NewFakeDriver(p)
		d.ExecErr = errors.New("exit status 1")

		err := GenSource(ctx, d, config.Default(), p, "model.json", "")
		require.Error(t, err)
		assert.ErrorIs(t, err, d.ExecErr)
		assert.Len(t, d.Commands, 1)
	})
}
