package gen

import (
	"context"

	"github.com/vk/gendriver/internal/attr"
	"github.com/vk/gendriver/internal/ctxlog"
	"github.com/vk/gendriver/internal/driver"
	"github.com/vk/gendriver/internal/fsutil"
	"github.com/vk/gendriver/internal/project"
)

// FindModel looks for a model.* file directly inside the project root and
// stores its name under the model attribute. When several files match, the
// lexically first one wins. A failed directory scan marks the project as
// failed and yields no model.
func FindModel(ctx context.Context, d driver.Attributes, p *project.Project) string {
	logger := ctxlog.FromContext(ctx)

	names, err := fsutil.MatchDir(p.Path, ModelGlob)
	if err != nil {
		logger.Error("Model discovery failed.", "project", p.ID, "path", p.Path, "error", err)
		p.Error = true
		return ""
	}

	if len(names) > 0 {
		if len(names) > 1 {
			logger.Warn("Multiple model files found, using the first.", "project", p.ID, "model", names[0], "candidates", names)
		}
		d.SetAttrString(attr.Model, names[0])
	}

	return d.GetAttrString(attr.Model)
}
