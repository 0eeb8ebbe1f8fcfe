// Package host is a minimal, single-project implementation of the driver
// API. It owns the attribute set and the package universe, runs external
// commands, and drives registered hooks and rules through one build or clean
// pass. It does not resolve dependencies between projects.
package host
