// This file translates the HCL schema structs into the format-agnostic
// config.Config.

package hcl

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/gendriver/internal/config"
)

// merge folds one decoded file into cfg. Values set in the file replace the
// current ones; package lists are appended.
func (l *Loader) merge(cfg *config.Config, root *fileRoot, evalCtx *hcl.EvalContext) error {
	if g := root.Generator; g != nil {
		if g.Command != nil {
			v, err := nonEmpty("generator.command", g.Command)
			if err != nil {
				return err
			}
			cfg.Generator.Command = v
		}
		if g.Package != nil {
			v, err := nonEmpty("generator.package", g.Package)
			if err != nil {
				return err
			}
			cfg.Generator.Package = v
		}
	}

	if s := root.SubBuild; s != nil && s.Command != nil {
		v, err := nonEmpty("subbuild.command", s.Command)
		if err != nil {
			return err
		}
		cfg.SubBuild.Command = v
	}

	if p := root.Packages; p != nil {
		cfg.Packages.Roots = append(cfg.Packages.Roots, trimAll(p.Roots)...)
		cfg.Packages.Known = append(cfg.Packages.Known, trimAll(p.Known)...)
	}

	if a := root.Attributes; a != nil && a.Body != nil {
		attrs, diags := a.Body.JustAttributes()
		if diags.HasErrors() {
			return diags
		}
		for name, attr := range attrs {
			val, diags := attr.Expr.Value(evalCtx)
			if diags.HasErrors() {
				return fmt.Errorf("attribute %q: %w", name, diags)
			}
			cfg.Attributes[name] = val
		}
	}
	return nil
}

// nonEmpty returns the trimmed value of s, or an error naming field when the
// result is empty.
func nonEmpty(field string, s *string) (string, error) {
	v := strings.TrimSpace(*s)
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
