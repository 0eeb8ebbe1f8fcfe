package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given paths, merging later files over
	// earlier ones, on top of Default(). Paths that do not exist are skipped.
	Load(ctx context.Context, paths ...string) (*Config, error)
}

// TemplateWriter is implemented by loaders that can emit a starter
// configuration file in their own format.
type TemplateWriter interface {
	WriteTemplate(path string, overwrite bool) error
}
