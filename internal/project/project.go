// Package project defines the build project model shared between the host
// and driver hooks, and the loader for the on-disk project.json descriptor.
package project

import "strings"

// Type distinguishes libraries from executables.
type Type int

const (
	// Application is an executable project.
	Application Type = iota
	// Package is a library project that other projects can use.
	Package
)

// String returns the descriptor spelling of the type.
func (t Type) String() string {
	if t == Package {
		return "package"
	}
	return "application"
}

// ParseType maps a descriptor type name onto a Type. Unknown names are
// treated as applications.
func ParseType(name string) Type {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "package", "library":
		return Package
	default:
		return Application
	}
}

// Project is the host-owned state of a single project for one build pass.
type Project struct {
	ID       string
	Path     string
	Language string
	Public   bool
	Type     Type

	// Use lists public dependencies in declaration order. Duplicates are kept.
	Use []string
	// UsePrivate lists dependencies that are not re-exported.
	UsePrivate []string
	// UseBuild lists build-time tool dependencies.
	UseBuild []string

	// Error is set by hooks that fail without returning an error, such as
	// model discovery. The host must stop building the project when it is set.
	Error bool
}
