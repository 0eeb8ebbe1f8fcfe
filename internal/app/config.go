package app

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Actions understood by App.Run.
const (
	ActionBuild      = "build"
	ActionGen        = "gen"
	ActionClean      = "clean"
	ActionInitConfig = "init-config"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Action      string
	ProjectPath string
	// ConfigPath is the driver configuration file. When empty, the default
	// file in the project root is used if it exists.
	ConfigPath string

	LogFormat string
	LogLevel  string
	DryRun    bool
	// Force allows init-config to replace an existing file.
	Force bool
}

func NewConfig(cfg Config) (*Config, error) {
	switch cfg.Action {
	case ActionBuild, ActionGen, ActionClean, ActionInitConfig:
	case "":
		return nil, errors.New("Action is a required configuration field and cannot be empty")
	default:
		return nil, fmt.Errorf("unknown action %q", cfg.Action)
	}

	if cfg.ProjectPath == "" {
		cfg.ProjectPath = "."
	}
	abs, err := filepath.Abs(cfg.ProjectPath)
	if err != nil {
		return nil, fmt.Errorf("invalid project path %q: %w", cfg.ProjectPath, err)
	}
	cfg.ProjectPath = abs

	return &cfg, nil
}
