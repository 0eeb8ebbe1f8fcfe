package host

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/gendriver/internal/ctxlog"
	"github.com/vk/gendriver/internal/driver"
	"github.com/vk/gendriver/internal/registry"
)

// ErrProjectFailed is returned when a hook flagged the project as failed
// without returning an error of its own.
var ErrProjectFailed = errors.New("project marked as failed")

// Lifecycle drives the hooks and rules of a registry against one host.
type Lifecycle struct {
	reg  *registry.Registry
	host *Host
}

// NewLifecycle binds reg to h.
func NewLifecycle(reg *registry.Registry, h *Host) *Lifecycle {
	return &Lifecycle{reg: reg, host: h}
}

// Init runs every init hook.
func (l *Lifecycle) Init(ctx context.Context) error {
	return l.runHooks(ctx, "init", l.reg.InitHooks)
}

// Generate runs the action of every applicable rule. Unless force is set,
// only stale rules run.
func (l *Lifecycle) Generate(ctx context.Context, force bool) error {
	logger := ctxlog.FromContext(ctx)
	p := l.host.Project()

	for _, rule := range l.reg.Rules() {
		st, err := evaluateRule(p.Path, rule, l.reg.IsIgnored)
		if err != nil {
			return err
		}
		if len(st.inputs) == 0 {
			logger.Debug("Rule has no inputs, skipping.", "rule", rule.Name, "project", p.ID)
			continue
		}
		if !st.stale && !force {
			logger.Debug("Rule is up to date.", "rule", rule.Name, "project", p.ID, "outputs", len(st.outputs))
			continue
		}

		target := ""
		if len(st.outputs) > 0 {
			target = st.outputs[0]
		}
		logger.Info("Running rule.", "rule", rule.Name, "project", p.ID, "source", st.newest)
		if err := rule.Fn(ctx, l.host, l.host.Config(), p, st.newest, target); err != nil {
			return fmt.Errorf("rule %s failed: %w", rule.Name, err)
		}
		if p.Error {
			return fmt.Errorf("rule %s: %w", rule.Name, ErrProjectFailed)
		}
	}
	return nil
}

// Prebuild runs every prebuild hook.
func (l *Lifecycle) Prebuild(ctx context.Context) error {
	return l.runHooks(ctx, "prebuild", l.reg.PrebuildHooks)
}

// Build runs a full pass: init hooks, stale rules, then prebuild hooks.
func (l *Lifecycle) Build(ctx context.Context) error {
	if err := l.Init(ctx); err != nil {
		return err
	}
	if err := l.Generate(ctx, false); err != nil {
		return err
	}
	return l.Prebuild(ctx)
}

// Clean runs every clean hook.
func (l *Lifecycle) Clean(ctx context.Context) error {
	return l.runHooks(ctx, "clean", l.reg.CleanHooks)
}

func (l *Lifecycle) runHooks(ctx context.Context, stage string, hooks []driver.Hook) error {
	logger := ctxlog.FromContext(ctx)
	p := l.host.Project()
	if p.Error {
		return fmt.Errorf("%s: %w", stage, ErrProjectFailed)
	}

	logger.Debug("Running hooks.", "stage", stage, "project", p.ID, "count", len(hooks))
	for i, hook := range hooks {
		if err := hook(ctx, l.host, l.host.Config(), p); err != nil {
			return fmt.Errorf("%s hook %d failed: %w", stage, i, err)
		}
		if p.Error {
			return fmt.Errorf("%s hook %d: %w", stage, i, ErrProjectFailed)
		}
	}
	return nil
}
