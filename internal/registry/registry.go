package registry

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/vk/gendriver/internal/driver"
	"github.com/vk/gendriver/internal/fsutil"
)

// Module is the interface that all driver modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Pattern is a named file pattern expression.
type Pattern struct {
	Name   string
	Expr   string
	Parsed fsutil.Pattern
}

// Rule maps input globs to an output pattern and the action that produces it.
type Rule struct {
	Name   string
	Inputs []string
	// TargetRef is the target as registered, e.g. "$gen-src".
	TargetRef string
	Target    fsutil.Pattern
	Fn        driver.RuleFunc
}

// Registry holds everything driver modules registered for one host instance.
type Registry struct {
	InitHooks     []driver.Hook
	CleanHooks    []driver.Hook
	PrebuildHooks []driver.Hook

	ignored  []string
	patterns map[string]*Pattern
	rules    []*Rule
	ruleSet  map[string]struct{}
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		patterns: make(map[string]*Pattern),
		ruleSet:  make(map[string]struct{}),
	}
}

// RegisterInit adds a hook that runs once per project before dependency resolution.
func (r *Registry) RegisterInit(fn driver.Hook) {
	slog.Debug("Registering init hook.")
	r.InitHooks = append(r.InitHooks, fn)
}

// RegisterClean adds a hook that runs on a clean request.
func (r *Registry) RegisterClean(fn driver.Hook) {
	slog.Debug("Registering clean hook.")
	r.CleanHooks = append(r.CleanHooks, fn)
}

// RegisterPrebuild adds a hook that runs immediately before the project is compiled.
func (r *Registry) RegisterPrebuild(fn driver.Hook) {
	slog.Debug("Registering prebuild hook.")
	r.PrebuildHooks = append(r.PrebuildHooks, fn)
}

// IgnorePath excludes a project-relative path from project discovery.
func (r *Registry) IgnorePath(path string) {
	clean := filepath.Clean(filepath.FromSlash(path))
	for _, p := range r.ignored {
		if p == clean {
			return
		}
	}
	slog.Debug("Registering ignored path.", "path", clean)
	r.ignored = append(r.ignored, clean)
}

// IgnoredPaths returns the ignored paths in registration order.
func (r *Registry) IgnoredPaths() []string {
	out := make([]string, len(r.ignored))
	copy(out, r.ignored)
	return out
}

// IsIgnored reports whether rel is, or lies below, an ignored path.
func (r *Registry) IsIgnored(rel string) bool {
	clean := filepath.Clean(filepath.FromSlash(rel))
	for _, p := range r.ignored {
		if clean == p || strings.HasPrefix(clean, p+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// RegisterPattern registers a named pattern expression.
func (r *Registry) RegisterPattern(name, expr string) {
	if _, exists := r.patterns[name]; exists {
		panic(fmt.Sprintf("pattern with name '%s' already registered", name))
	}
	parsed, err := fsutil.ParsePattern(expr)
	if err != nil {
		panic(fmt.Sprintf("pattern '%s': %v", name, err))
	}
	slog.Debug("Registering pattern.", "name", name, "expr", expr)
	r.patterns[name] = &Pattern{Name: name, Expr: expr, Parsed: parsed}
}

// Pattern returns a registered pattern by name.
func (r *Registry) Pattern(name string) (*Pattern, bool) {
	p, ok := r.patterns[name]
	return p, ok
}

// RegisterRule registers a generation rule. target is either a pattern
// expression or a "$name" reference to a registered pattern.
func (r *Registry) RegisterRule(name string, inputs []string, target string, fn driver.RuleFunc) {
	if _, exists := r.ruleSet[name]; exists {
		panic(fmt.Sprintf("rule with name '%s' already registered", name))
	}
	if fn == nil {
		panic(fmt.Sprintf("rule '%s' has no action", name))
	}
	if len(inputs) == 0 {
		panic(fmt.Sprintf("rule '%s' has no inputs", name))
	}
	pattern, err := r.resolveTarget(target)
	if err != nil {
		panic(fmt.Sprintf("rule '%s': %v", name, err))
	}
	slog.Debug("Registering rule.", "name", name, "inputs", inputs, "target", target)
	r.ruleSet[name] = struct{}{}
	r.rules = append(r.rules, &Rule{
		Name:      name,
		Inputs:    append([]string(nil), inputs...),
		TargetRef: target,
		Target:    pattern,
		Fn:        fn,
	})
}

// Rules returns the registered rules in registration order.
func (r *Registry) Rules() []*Rule {
	return r.rules
}

func (r *Registry) resolveTarget(target string) (fsutil.Pattern, error) {
	if name, ok := strings.CutPrefix(target, "$"); ok {
		p, exists := r.patterns[name]
		if !exists {
			return fsutil.Pattern{}, fmt.Errorf("unknown pattern '%s'", name)
		}
		return p.Parsed, nil
	}
	return fsutil.ParsePattern(target)
}
