package hcl

import (
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/gendriver/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// buildEvalContext creates the evaluation context for configuration files.
// The process environment is available as the `env` object, so a file can
// write `roots = ["${env.HOME}/bake/meta"]`.
func buildEvalContext(ctx context.Context, environ []string) *hcl.EvalContext {
	logger := ctxlog.FromContext(ctx)

	envMap := make(map[string]cty.Value)
	for _, e := range environ {
		name, value, ok := strings.Cut(e, "=")
		if !ok || name == "" {
			continue
		}
		envMap[name] = cty.StringVal(value)
	}
	logger.Debug("Built HCL evaluation context.", "env_vars", len(envMap))

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(envMap),
		},
	}
}
