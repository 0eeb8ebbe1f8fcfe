package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/gendriver/internal/config"
	"github.com/vk/gendriver/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file found in paths and merges them, in order, over
// the built-in defaults.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Config, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	cfg := config.Default()

	hclFiles, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()
	evalCtx := buildEvalContext(ctx, os.Environ())

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		if err := l.merge(cfg, &root, evalCtx); err != nil {
			return nil, fmt.Errorf("invalid configuration in %s: %w", file, err)
		}
		logger.Debug("Merged configuration file.", "file", file)
	}

	logger.Debug("HCL loading complete.",
		"generator", cfg.Generator.Command,
		"subbuild", cfg.SubBuild.Command,
		"package_roots", len(cfg.Packages.Roots),
		"attributes", len(cfg.Attributes),
	)
	return cfg, nil
}

// findAllHCLFiles returns the .hcl files named by paths. Directories are
// scanned one level deep, in lexical order.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})

	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue // It's not an error if a configured path doesn't exist.
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			if filepath.Ext(path) == ".hcl" {
				add(path)
			}
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("error reading directory %s: %w", path, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && filepath.Ext(entry.Name()) == ".hcl" {
				add(filepath.Join(path, entry.Name()))
			}
		}
	}
	return allFiles, nil
}

// WriteTemplate implements config.TemplateWriter.
func (l *Loader) WriteTemplate(path string, overwrite bool) error {
	return WriteTemplate(path, overwrite)
}
