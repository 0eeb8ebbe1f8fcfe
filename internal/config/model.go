package config

import (
	"github.com/zclconf/go-cty/cty"
)

// Defaults applied when no configuration file overrides them.
const (
	DefaultGeneratorCommand = "corto"
	DefaultGeneratorPackage = "corto"
	DefaultSubBuildCommand  = "bake"
	DefaultFileName         = "gendriver.hcl"
)

// Config is the driver configuration shared by every hook of a build pass.
type Config struct {
	Generator Generator
	SubBuild  SubBuild
	Packages  Packages
	// Attributes are default attribute values applied to every project
	// before its own descriptor attributes.
	Attributes map[string]cty.Value
}

// Generator describes the external code generator.
type Generator struct {
	// Command is the generator executable.
	Command string
	// Package is the toolchain package every project depends on.
	Package string
}

// SubBuild describes how generated sub-projects are built.
type SubBuild struct {
	Command string
}

// Packages describes the package universe used for existence checks.
type Packages struct {
	// Roots are directories whose immediate subdirectories are package ids.
	Roots []string
	// Known lists package ids that exist regardless of Roots.
	Known []string
}

// Default returns a configuration populated with built-in defaults.
func Default() *Config {
	return &Config{
		Generator: Generator{
			Command: DefaultGeneratorCommand,
			Package: DefaultGeneratorPackage,
		},
		SubBuild:   SubBuild{Command: DefaultSubBuildCommand},
		Attributes: make(map[string]cty.Value),
	}
}
