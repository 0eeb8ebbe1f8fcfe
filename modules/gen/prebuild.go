package gen

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vk/gendriver/internal/attr"
	"github.com/vk/gendriver/internal/config"
	"github.com/vk/gendriver/internal/ctxlog"
	"github.com/vk/gendriver/internal/driver"
	"github.com/vk/gendriver/internal/fsutil"
	"github.com/vk/gendriver/internal/project"
)

// BuildGenerated builds the generated c and cpp sub-projects, in that order,
// and makes their packages available to the project being built.
func BuildGenerated(ctx context.Context, d driver.API, _ *config.Config, p *project.Project) error {
	logger := ctxlog.FromContext(ctx)

	for _, lang := range []string{LangC, LangCpp} {
		dir := filepath.Join(p.Path, lang)
		if !fsutil.IsDir(dir) {
			continue
		}
		logger.Debug("Building generated project.", "project", p.ID, "lang", lang, "path", dir)
		if err := d.Build(ctx, dir); err != nil {
			return fmt.Errorf("failed to build generated %s project for %s: %w", lang, p.ID, err)
		}
	}

	if d.GetAttrBool(attr.UseGeneratedAPI) && p.Public {
		d.Use(p.ID + "." + LangC)
		if p.Language == LangCpp {
			d.Use(p.ID + "." + LangCpp)
		}
	}
	return nil
}
