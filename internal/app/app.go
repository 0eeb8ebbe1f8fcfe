package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/gendriver/internal/config"
	"github.com/vk/gendriver/internal/configfile"
	"github.com/vk/gendriver/internal/ctxlog"
	"github.com/vk/gendriver/internal/host"
	"github.com/vk/gendriver/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	registry  *registry.Registry
	config    *config.Config
	appConfig *Config
	loader    config.Loader
	runner    host.CommandRunner
}

// NewApp is the constructor for the main application. It loads the driver
// configuration and registers the driver modules; with no modules given, the
// core modules are used.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	cfg := config.Default()
	if appConfig.Action != ActionInitConfig {
		// An explicit path must exist; the default one is optional.
		path := defaultConfigPath(appConfig)
		if appConfig.ConfigPath != "" {
			if _, err := os.Stat(path); err != nil {
				return nil, fmt.Errorf("failed to load configuration: %w", err)
			}
		}

		loaded, err := loader.Load(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded
		logger.Debug("Configuration loaded.", "path", path)
	}

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All driver modules registered.", "count", len(modules))

	return &App{
		outW:      outW,
		logger:    logger,
		registry:  reg,
		config:    cfg,
		appConfig: appConfig,
		loader:    loader,
		runner:    host.ExecRunner{},
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// DriverConfig returns the loaded driver configuration.
func (a *App) DriverConfig() *config.Config {
	return a.config
}

// UseRunner replaces the process runner used for generator and sub-build
// commands.
func (a *App) UseRunner(r host.CommandRunner) {
	a.runner = r
}

func defaultConfigPath(appConfig *Config) string {
	if appConfig.ConfigPath != "" {
		return appConfig.ConfigPath
	}
	return configfile.Find(appConfig.ProjectPath)
}
