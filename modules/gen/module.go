// Package gen is the driver that generates, builds and cleans
// language-interface sources for projects that declare a data model.
package gen

import (
	"github.com/vk/gendriver/internal/config"
	"github.com/vk/gendriver/internal/project"
	"github.com/vk/gendriver/internal/registry"
)

// Names and paths shared by the hooks.
const (
	ModelGlob        = "model.*"
	CacheDir         = ".bake_cache/gen"
	GenSourcePattern = "gen-src"
	GenSourceExpr    = CacheDir + "//*.c|*.cpp|*.cxx"
	RuleName         = "GENERATED-SOURCES"

	LangC   = "c"
	LangCpp = "cpp"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the driver hooks, ignored paths, pattern and rule.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterInit(Init)
	r.RegisterClean(Clean)
	r.RegisterPrebuild(BuildGenerated)

	// Generated sub-projects are built by BuildGenerated, not discovered.
	r.IgnorePath(LangC)
	r.IgnorePath(LangCpp)

	r.RegisterPattern(GenSourcePattern, GenSourceExpr)
	r.RegisterRule(RuleName,
		[]string{ModelGlob, project.DescriptorFile},
		"$"+GenSourcePattern,
		GenSource)
}

func configOrDefault(cfg *config.Config) *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}
