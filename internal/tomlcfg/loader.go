// Package tomlcfg loads the driver configuration from TOML files.
package tomlcfg

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/vk/gendriver/internal/config"
	"github.com/vk/gendriver/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

type fileConfig struct {
	Generator struct {
		Command string `toml:"command"`
		Package string `toml:"package"`
	} `toml:"generator"`
	SubBuild struct {
		Command string `toml:"command"`
	} `toml:"subbuild"`
	Packages struct {
		Roots []string `toml:"roots"`
		Known []string `toml:"known"`
	} `toml:"packages"`
	Attributes map[string]any `toml:"attributes"`
}

// Loader is the TOML implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new TOML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load decodes each existing file in paths and merges it, in order, over the
// built-in defaults.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Config, error) {
	logger := ctxlog.FromContext(ctx)
	cfg := config.Default()

	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		var raw fileConfig
		meta, err := toml.DecodeFile(path, &raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TOML file %s: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			logger.Warn("Unknown configuration keys ignored.", "file", path, "keys", fmt.Sprint(undecoded))
		}
		if err := merge(cfg, &raw, meta); err != nil {
			return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
		}
		logger.Debug("Merged configuration file.", "file", path)
	}
	return cfg, nil
}

func merge(cfg *config.Config, raw *fileConfig, meta toml.MetaData) error {
	if meta.IsDefined("generator", "command") {
		v, err := nonEmpty("generator.command", raw.Generator.Command)
		if err != nil {
			return err
		}
		cfg.Generator.Command = v
	}
	if meta.IsDefined("generator", "package") {
		v, err := nonEmpty("generator.package", raw.Generator.Package)
		if err != nil {
			return err
		}
		cfg.Generator.Package = v
	}
	if meta.IsDefined("subbuild", "command") {
		v, err := nonEmpty("subbuild.command", raw.SubBuild.Command)
		if err != nil {
			return err
		}
		cfg.SubBuild.Command = v
	}

	cfg.Packages.Roots = append(cfg.Packages.Roots, trimAll(raw.Packages.Roots)...)
	cfg.Packages.Known = append(cfg.Packages.Known, trimAll(raw.Packages.Known)...)

	names := make([]string, 0, len(raw.Attributes))
	for name := range raw.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		val, err := toValue(raw.Attributes[name])
		if err != nil {
			return fmt.Errorf("attribute %q: %w", name, err)
		}
		cfg.Attributes[name] = val
	}
	return nil
}

// toValue converts a decoded TOML scalar into a cty value.
func toValue(v any) (cty.Value, error) {
	switch t := v.(type) {
	case bool:
		return cty.BoolVal(t), nil
	case string:
		return cty.StringVal(t), nil
	case int64:
		return cty.NumberIntVal(t), nil
	case float64:
		return cty.NumberFloatVal(t), nil
	default:
		return cty.NilVal, fmt.Errorf("unsupported value of type %T", v)
	}
}

func nonEmpty(field, s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", fmt.Errorf("%s must not be empty", field)
	}
	return v, nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
