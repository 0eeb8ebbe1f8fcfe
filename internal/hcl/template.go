package hcl

import (
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/gendriver/internal/config"
	"github.com/zclconf/go-cty/cty"
)

// Render serializes cfg as an HCL configuration file.
func Render(cfg *config.Config) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	gen := body.AppendNewBlock("generator", nil).Body()
	gen.SetAttributeValue("command", cty.StringVal(cfg.Generator.Command))
	gen.SetAttributeValue("package", cty.StringVal(cfg.Generator.Package))
	body.AppendNewline()

	sub := body.AppendNewBlock("subbuild", nil).Body()
	sub.SetAttributeValue("command", cty.StringVal(cfg.SubBuild.Command))
	body.AppendNewline()

	pkgs := body.AppendNewBlock("packages", nil).Body()
	pkgs.SetAttributeValue("roots", stringList(cfg.Packages.Roots))
	pkgs.SetAttributeValue("known", stringList(cfg.Packages.Known))

	if len(cfg.Attributes) > 0 {
		body.AppendNewline()
		attrs := body.AppendNewBlock("attributes", nil).Body()
		names := make([]string, 0, len(cfg.Attributes))
		for name := range cfg.Attributes {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			attrs.SetAttributeValue(name, cfg.Attributes[name])
		}
	}

	return f.Bytes()
}

// WriteTemplate writes the default configuration to path. An existing file
// is only replaced when overwrite is set.
func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, Render(config.Default()), 0o644)
}

func stringList(values []string) cty.Value {
	if len(values) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(values))
	for i, v := range values {
		vals[i] = cty.StringVal(v)
	}
	return cty.ListVal(vals)
}
