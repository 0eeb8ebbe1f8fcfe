package host

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/gendriver/internal/attr"
	"github.com/vk/gendriver/internal/command"
	"github.com/vk/gendriver/internal/config"
	"github.com/vk/gendriver/internal/ctxlog"
	"github.com/vk/gendriver/internal/driver"
	"github.com/vk/gendriver/internal/project"
)

var (
	// ErrEmptyCommand is returned by Exec for a blank command line.
	ErrEmptyCommand = errors.New("empty command")
	// ErrOutsideProject is returned by Remove for paths that leave the project root.
	ErrOutsideProject = errors.New("path is outside the project")
	// ErrProjectRoot is returned by Remove for paths that name the project root itself.
	ErrProjectRoot = errors.New("refusing to remove the project root")
)

var _ driver.API = (*Host)(nil)

// Host implements driver.API for a single project.
type Host struct {
	cfg      *config.Config
	project  *project.Project
	attrs    *attr.Set
	packages *Packages
	runner   CommandRunner
	dryRun   bool

	executed []string
}

// Option configures a Host.
type Option func(*Host)

// WithRunner replaces the process runner.
func WithRunner(r CommandRunner) Option {
	return func(h *Host) { h.runner = r }
}

// WithPackages replaces the package universe built from the configuration.
func WithPackages(p *Packages) Option {
	return func(h *Host) { h.packages = p }
}

// WithAttributes binds an existing attribute set.
func WithAttributes(s *attr.Set) Option {
	return func(h *Host) { h.attrs = s }
}

// WithDryRun records commands without running them.
func WithDryRun(dryRun bool) Option {
	return func(h *Host) { h.dryRun = dryRun }
}

// New creates a host for p. A nil cfg means config.Default().
func New(cfg *config.Config, p *project.Project, opts ...Option) *Host {
	if cfg == nil {
		cfg = config.Default()
	}
	h := &Host{
		cfg:     cfg,
		project: p,
		attrs:   attr.New(),
		runner:  ExecRunner{},
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.packages == nil {
		h.packages = NewPackages(cfg.Packages.Roots, cfg.Packages.Known)
	}
	return h
}

// Config returns the driver configuration.
func (h *Host) Config() *config.Config { return h.cfg }

// Project returns the bound project.
func (h *Host) Project() *project.Project { return h.project }

// Attributes returns the project's attribute set.
func (h *Host) Attributes() *attr.Set { return h.attrs }

// Executed returns every command line passed to Exec or Build, in order,
// whether or not it was actually run.
func (h *Host) Executed() []string {
	return append([]string(nil), h.executed...)
}

func (h *Host) GetAttrBool(key string) bool     { return h.attrs.Bool(key) }
func (h *Host) SetAttrBool(key string, v bool)  { h.attrs.SetBool(key, v) }
func (h *Host) GetAttrString(key string) string { return h.attrs.String(key) }
func (h *Host) SetAttrString(key, v string)     { h.attrs.SetString(key, v) }
func (h *Host) HasAttr(key string) bool         { return h.attrs.Has(key) }

// Use appends id to the project's public dependencies.
func (h *Host) Use(id string) {
	h.project.Use = append(h.project.Use, id)
}

// Exists reports whether id is in the package universe.
func (h *Host) Exists(id string) bool {
	return h.packages.Exists(id)
}

// Exec splits cmd with shell word rules and runs it in the project root.
func (h *Host) Exec(ctx context.Context, cmd string) error {
	argv, err := command.Split(cmd)
	if err != nil {
		return fmt.Errorf("invalid command %q: %w", cmd, err)
	}
	if len(argv) == 0 {
		return ErrEmptyCommand
	}
	return h.run(ctx, argv)
}

// Build runs the configured sub-build command for the project at path.
func (h *Host) Build(ctx context.Context, path string) error {
	argv, err := command.Split(h.cfg.SubBuild.Command)
	if err != nil {
		return fmt.Errorf("invalid sub-build command %q: %w", h.cfg.SubBuild.Command, err)
	}
	if len(argv) == 0 {
		return ErrEmptyCommand
	}
	return h.run(ctx, append(argv, path))
}

// Remove deletes path, resolved against the project root, with everything
// below it. The root itself is never removed.
func (h *Host) Remove(path string) error {
	rel := filepath.Clean(filepath.FromSlash(path))
	if rel == "." {
		return fmt.Errorf("remove %q: %w", path, ErrProjectRoot)
	}
	if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("remove %s: %w", path, ErrOutsideProject)
	}
	if h.dryRun {
		return nil
	}
	return os.RemoveAll(filepath.Join(h.project.Path, rel))
}

func (h *Host) run(ctx context.Context, argv []string) error {
	logger := ctxlog.FromContext(ctx)
	line := command.New(argv[0]).Arg(argv[1:]...).String()
	h.executed = append(h.executed, line)

	if h.dryRun {
		logger.Info("Dry run, command not executed.", "command", line)
		return nil
	}

	logger.Debug("Executing command.", "command", line, "dir", h.project.Path)
	stdout, stderr, code, err := h.runner.Run(ctx, h.project.Path, argv[0], argv[1:]...)
	if len(stdout) > 0 {
		logger.Debug("Command output.", "command", argv[0], "stdout", string(stdout))
	}
	if err != nil {
		if msg := strings.TrimSpace(string(stderr)); msg != "" {
			return fmt.Errorf("command %s exited with code %d: %s: %w", argv[0], code, msg, err)
		}
		return fmt.Errorf("command %s exited with code %d: %w", argv[0], code, err)
	}
	return nil
}
