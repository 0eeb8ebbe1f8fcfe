package app

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/vk/gendriver/internal/attr"
	"github.com/vk/gendriver/internal/config"
	"github.com/vk/gendriver/internal/ctxlog"
	"github.com/vk/gendriver/internal/host"
	"github.com/vk/gendriver/internal/project"
	"github.com/zclconf/go-cty/cty"
)

// ErrNoTemplate is returned by init-config when the loader cannot emit a
// configuration template.
var ErrNoTemplate = errors.New("configuration loader cannot write templates")

// Run executes the configured action against the project.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "action", a.appConfig.Action, "project", a.appConfig.ProjectPath)

	if a.appConfig.Action == ActionInitConfig {
		return a.initConfig()
	}

	desc, err := project.LoadDescriptor(a.appConfig.ProjectPath)
	if err != nil {
		return err
	}
	p := desc.Project

	attrs := attr.New()
	if err := seedAttributes(attrs, a.config.Attributes); err != nil {
		return fmt.Errorf("invalid configuration attributes: %w", err)
	}
	if err := seedAttributes(attrs, desc.Attributes); err != nil {
		return fmt.Errorf("invalid attributes in %s: %w", project.DescriptorFile, err)
	}

	h := host.New(a.config, p,
		host.WithAttributes(attrs),
		host.WithRunner(a.runner),
		host.WithDryRun(a.appConfig.DryRun),
	)
	lc := host.NewLifecycle(a.registry, h)

	a.logger.Info("🚀 Starting driver action.", "action", a.appConfig.Action, "project", p.ID, "language", p.Language)
	switch a.appConfig.Action {
	case ActionBuild:
		err = lc.Build(ctx)
	case ActionGen:
		if err = lc.Init(ctx); err == nil {
			err = lc.Generate(ctx, true)
		}
	case ActionClean:
		err = lc.Clean(ctx)
	default:
		err = fmt.Errorf("unknown action %q", a.appConfig.Action)
	}
	if err != nil {
		return fmt.Errorf("%s failed for project %s: %w", a.appConfig.Action, p.ID, err)
	}

	a.logger.Info("🏁 Driver action finished.", "action", a.appConfig.Action, "project", p.ID, "commands", len(h.Executed()))
	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) initConfig() error {
	writer, ok := a.loader.(config.TemplateWriter)
	if !ok {
		return ErrNoTemplate
	}
	path := defaultConfigPath(a.appConfig)
	if err := writer.WriteTemplate(path, a.appConfig.Force); err != nil {
		return fmt.Errorf("failed to write configuration template: %w", err)
	}
	a.logger.Info("Configuration template written.", "path", path)
	return nil
}

// seedAttributes copies values into s in key order.
func seedAttributes(s *attr.Set, values map[string]cty.Value) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := s.Set(k, values[k]); err != nil {
			return err
		}
	}
	return nil
}
