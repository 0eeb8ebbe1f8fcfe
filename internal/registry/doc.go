// Package registry provides the central "glue" for the driver system.
//
// Driver modules register their lifecycle hooks, the project paths the host
// must not discover as independent projects, named file patterns, and file
// generation rules. The host reads the registry back when it runs a build
// pass. Registration happens once at startup; duplicate names are
// programmer errors and panic.
package registry
