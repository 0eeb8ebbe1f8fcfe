package gen

import (
	"context"
	"fmt"

	"github.com/vk/gendriver/internal/attr"
	"github.com/vk/gendriver/internal/command"
	"github.com/vk/gendriver/internal/config"
	"github.com/vk/gendriver/internal/ctxlog"
	"github.com/vk/gendriver/internal/driver"
	"github.com/vk/gendriver/internal/project"
)

// Output locations passed to the generator, in order.
var outputAttrs = []string{
	"c=src",
	"cpp=src",
	"h=include",
	"hpp=include",
	"hidden=" + CacheDir,
}

// BuildCommand assembles the generator invocation for p. With a model the
// generator processes the model for the project's language; without one it
// only generates the interface and project scaffolding.
func BuildCommand(generator string, d driver.Attributes, p *project.Project) *command.Line {
	line := command.New(generator).Arg("pp")

	if model := d.GetAttrString(attr.Model); model != "" {
		scope := p.ID
		if s := d.GetAttrString(attr.Scope); s != "" {
			scope = s
		}
		line.Arg(project.DescriptorFile, model).
			Flag("--path", p.Path).
			Flag("--scope", scope).
			Flag("--lang", p.Language)
	} else {
		line.Flag("-g", "c/interface").Flag("-g", "c/project")
	}

	line.Flag("--name", p.ID)
	for _, a := range outputAttrs {
		line.Flag("--attr", a)
	}

	if !p.Public {
		line.Flag("--attr", "local=true")
	}
	if p.Type != project.Package {
		line.Flag("--attr", "app=true")
	}
	if d.GetAttrBool(attr.C4Cpp) {
		line.Switch("--c4cpp")
	}

	line.List("--use", withoutSelf(p.ID, p.Use))
	line.List("--use-private", withoutSelf(p.ID, p.UsePrivate))
	return line
}

// GenSource is the action of the generated-sources rule: it runs the
// generator once. Failures are returned as is; nothing is retried.
func GenSource(ctx context.Context, d driver.API, cfg *config.Config, p *project.Project, source, target string) error {
	logger := ctxlog.FromContext(ctx)
	cfg = configOrDefault(cfg)

	cmd := BuildCommand(cfg.Generator.Command, d, p).String()
	logger.Debug("Generating sources.", "project", p.ID, "source", source, "target", target, "command", cmd)

	if err := d.Exec(ctx, cmd); err != nil {
		return fmt.Errorf("generator failed for project %s: %w", p.ID, err)
	}
	return nil
}

// withoutSelf drops references to the project's own generated companion
// packages, which may not exist yet when the generator runs.
func withoutSelf(id string, deps []string) []string {
	self := map[string]struct{}{
		id + "/" + LangC:   {},
		id + "/" + LangCpp: {},
		id + "." + LangC:   {},
		id + "." + LangCpp: {},
	}
	var out []string
	for _, dep := range deps {
		if _, skip := self[dep]; skip {
			continue
		}
		out = append(out, dep)
	}
	return out
}
