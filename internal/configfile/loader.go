// Package configfile selects the configuration format from the file
// extension and delegates to the matching loader.
package configfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/gendriver/internal/config"
	"github.com/vk/gendriver/internal/hcl"
	"github.com/vk/gendriver/internal/tomlcfg"
)

const tomlExt = ".toml"

// DefaultNames are the configuration files looked up in a project root, in
// order of preference.
var DefaultNames = []string{config.DefaultFileName, "gendriver.toml"}

// Loader implements config.Loader and config.TemplateWriter over the HCL and
// TOML loaders.
type Loader struct {
	hcl  *hcl.Loader
	toml *tomlcfg.Loader
}

var (
	_ config.Loader         = (*Loader)(nil)
	_ config.TemplateWriter = (*Loader)(nil)
)

// NewLoader creates a loader that understands every supported format.
func NewLoader() *Loader {
	return &Loader{hcl: hcl.NewLoader(), toml: tomlcfg.NewLoader()}
}

// Load loads paths with the TOML loader when every path is a .toml file and
// with the HCL loader when none is. Mixing formats is an error.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Config, error) {
	var tomlPaths int
	for _, p := range paths {
		if isTOML(p) {
			tomlPaths++
		}
	}
	switch tomlPaths {
	case 0:
		return l.hcl.Load(ctx, paths...)
	case len(paths):
		return l.toml.Load(ctx, paths...)
	default:
		return nil, fmt.Errorf("cannot mix TOML and HCL configuration: %s", strings.Join(paths, ", "))
	}
}

// WriteTemplate writes a default configuration in the format implied by path.
func (l *Loader) WriteTemplate(path string, overwrite bool) error {
	if isTOML(path) {
		return l.toml.WriteTemplate(path, overwrite)
	}
	return l.hcl.WriteTemplate(path, overwrite)
}

// Find returns the first default configuration file present in dir, or the
// path of the preferred one when none exists.
func Find(dir string) string {
	for _, name := range DefaultNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return filepath.Join(dir, DefaultNames[0])
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), tomlExt)
}
