package gen

import (
	"context"

	"github.com/vk/gendriver/internal/attr"
	"github.com/vk/gendriver/internal/config"
	"github.com/vk/gendriver/internal/ctxlog"
	"github.com/vk/gendriver/internal/driver"
	"github.com/vk/gendriver/internal/project"
)

// Build-time tools every project needs.
var baseTools = []string{
	"driver.gen.c.project",
	"driver.gen.c.interface",
}

// Build-time tools only needed when the project has a model.
var modelTools = []string{
	"driver.gen.c.type",
	"driver.gen.c.api",
	"driver.gen.c.cpp",
}

// Init injects the generator toolchain and build-time tool dependencies, and
// wires in the per-language companion package of every declared dependency
// that has one.
func Init(ctx context.Context, d driver.API, cfg *config.Config, p *project.Project) error {
	logger := ctxlog.FromContext(ctx)
	cfg = configOrDefault(cfg)

	d.Use(cfg.Generator.Package)

	if !d.HasAttr(attr.UseGeneratedAPI) {
		d.SetAttrBool(attr.UseGeneratedAPI, true)
	}

	if p.Language == LangCpp {
		d.SetAttrBool(attr.C4Cpp, true)
	}

	p.UseBuild = append(p.UseBuild, baseTools...)

	if model := FindModel(ctx, d, p); model != "" {
		logger.Debug("Model found.", "project", p.ID, "model", model)
		p.UseBuild = append(p.UseBuild, modelTools...)
	}

	if !d.GetAttrBool(attr.UseGeneratedAPI) {
		return nil
	}

	// Only the dependencies declared so far are scanned; companions added
	// below are not themselves expanded.
	declared := append([]string(nil), p.Use...)
	for _, dep := range declared {
		companion := dep + "." + p.Language
		if !d.Exists(companion) {
			logger.Debug("No companion package.", "project", p.ID, "dependency", dep, "candidate", companion)
			continue
		}
		logger.Debug("Adding companion package.", "project", p.ID, "dependency", companion)
		d.Use(companion)
	}
	return nil
}
