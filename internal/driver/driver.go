// Package driver defines the contract between a host build orchestrator and
// the driver plugins it loads: the capabilities the host exposes to a plugin
// and the hook signatures a plugin registers.
package driver

import (
	"context"

	"github.com/vk/gendriver/internal/config"
	"github.com/vk/gendriver/internal/project"
)

// Attributes is the read/write view of the current project's attribute set.
type Attributes interface {
	GetAttrBool(key string) bool
	SetAttrBool(key string, value bool)
	GetAttrString(key string) string
	SetAttrString(key string, value string)
	HasAttr(key string) bool
}

// API is the set of host capabilities available to a hook. An API value is
// bound to a single project for the duration of one hook invocation and must
// not be retained.
type API interface {
	Attributes

	// Use declares a dependency of the current project.
	Use(id string)
	// Exists reports whether a package with the given id is known to the host.
	Exists(id string) bool
	// Exec runs a command line and blocks until it exits.
	Exec(ctx context.Context, cmd string) error
	// Remove deletes a file or directory relative to the project root.
	// Removing a path that does not exist is not an error.
	Remove(path string) error
	// Build runs a full sub-build of the project at path.
	Build(ctx context.Context, path string) error
}

// Hook is the signature of init, clean and prebuild callbacks.
type Hook func(ctx context.Context, d API, cfg *config.Config, p *project.Project) error

// RuleFunc is the action of a file generation rule. source and target are
// the matched input and output paths relative to the project root; target is
// empty when no output exists yet.
type RuleFunc func(ctx context.Context, d API, cfg *config.Config, p *project.Project, source, target string) error
