// Package config defines the format-agnostic driver configuration, along
// with the Loader interface implemented by concrete configuration formats.
//
// The `config.Config` is what driver hooks receive on every invocation.
// Concrete loaders, such as the HCL one, live in separate packages.
package config
