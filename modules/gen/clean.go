package gen

import (
	"context"
	"errors"
	"io/fs"

	"github.com/vk/gendriver/internal/config"
	"github.com/vk/gendriver/internal/driver"
	"github.com/vk/gendriver/internal/project"
)

// cleanTargets are the generated artifacts removed by Clean.
var cleanTargets = []string{
	"include/_type.h",
	"include/_load.h",
	"include/_interface.h",
	"include/_api.h",
	"include/_cpp.h",
	"include/_binding.h",
	LangC,
	LangCpp,
}

// Clean removes generated headers and sub-projects. Every target is
// attempted; failures other than a missing path are returned together.
func Clean(_ context.Context, d driver.API, _ *config.Config, _ *project.Project) error {
	var errs []error
	for _, path := range cleanTargets {
		if err := d.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
