package tomlcfg

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/vk/gendriver/internal/config"
)

type templateFile struct {
	Generator templateGenerator `toml:"generator"`
	SubBuild  templateSubBuild  `toml:"subbuild"`
	Packages  templatePackages  `toml:"packages"`
}

type templateGenerator struct {
	Command string `toml:"command"`
	Package string `toml:"package"`
}

type templateSubBuild struct {
	Command string `toml:"command"`
}

type templatePackages struct {
	Roots []string `toml:"roots"`
	Known []string `toml:"known"`
}

// Render serializes the generator, sub-build and package settings of cfg.
func Render(cfg *config.Config) ([]byte, error) {
	var buf bytes.Buffer
	err := toml.NewEncoder(&buf).Encode(templateFile{
		Generator: templateGenerator{Command: cfg.Generator.Command, Package: cfg.Generator.Package},
		SubBuild:  templateSubBuild{Command: cfg.SubBuild.Command},
		Packages: templatePackages{
			Roots: append([]string{}, cfg.Packages.Roots...),
			Known: append([]string{}, cfg.Packages.Known...),
		},
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTemplate writes the default configuration to path. An existing file
// is only replaced when overwrite is set.
func (l *Loader) WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	data, err := Render(config.Default())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
