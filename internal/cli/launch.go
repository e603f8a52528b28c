package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/automua/automua-run/internal/config"
	"github.com/automua/automua-run/internal/launcher"
	"github.com/automua/automua-run/internal/logging"
)

// ExitCodeError carries the exit status main should use. Err is nil when the
// tool itself chose a non-zero status.
type ExitCodeError struct {
	Code int
	Err  error
}

func (e *ExitCodeError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

var newLauncher = launcher.New

// Launch loads configuration and hands args to the tool untouched. It returns
// the exit code for the process and the error that caused a launcher failure.
func Launch(ctx context.Context, args []string) (int, error) {
	cfg, err := loadConfig(false)
	if err != nil {
		return launcher.ExitFailure, err
	}
	return newLauncher(cfg).Run(ctx, args)
}

// launchError turns a launcher result into the error a cobra command returns.
func launchError(code int, err error) error {
	if code == 0 && err == nil {
		return nil
	}
	return &ExitCodeError{Code: code, Err: err}
}

// loadConfig loads and validates configuration and applies the log level.
// verbose forces at least info-level logging.
func loadConfig(verbose bool) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if verbose && level > slog.LevelInfo {
		level = slog.LevelInfo
	}
	logging.SetLevel(level)
	if cfg.HomeDir == "" {
		logging.Logger().Debug("launcher home unresolved, using defaults and environment only")
	}
	return cfg, nil
}
