package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/gendriver/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("gendriver", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
gendriver - Generates, builds and cleans model-driven language bindings.

Usage:
  gendriver [options] <build|gen|clean|init-config> [PROJECT_PATH]

Actions:
  build        Run init hooks, regenerate stale sources, build generated projects.
  gen          Run init hooks and always run the generator.
  clean        Remove generated headers and projects.
  init-config  Write a default config (.hcl or .toml, from -config) into the project.

Arguments:
  PROJECT_PATH
    Directory containing project.json. Defaults to the current directory.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to the driver configuration (.hcl or .toml). Defaults to PROJECT_PATH/gendriver.hcl or gendriver.toml when present.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	dryRunFlag := flagSet.Bool("dry-run", false, "Log generator and sub-build commands instead of running them.")
	forceFlag := flagSet.Bool("force", false, "Allow init-config to overwrite an existing file.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No action provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	if flagSet.NArg() > 2 {
		return nil, false, &ExitError{Code: 2, Message: "too many arguments: expected an action and an optional project path"}
	}

	action := strings.ToLower(flagSet.Arg(0))
	path := flagSet.Arg(1)
	slog.Debug("Action determined.", "action", action, "path", path)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		Action:      action,
		ProjectPath: path,
		ConfigPath:  *configFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
		DryRun:      *dryRunFlag,
		Force:       *forceFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
