// Package bootstrap creates the launcher home on first use.
package bootstrap

import (
	"errors"
	"fmt"
	"os"

	"github.com/automua/automua-run/internal/config"
	"github.com/automua/automua-run/internal/store"
)

// Initialize creates the launcher home and a minimal config.toml if missing.
// It reports whether a new config file was written.
func Initialize(cfg *config.Config) (bool, error) {
	if cfg.HomeDir == "" {
		return false, errors.New("launcher home is unknown: set AUTOMUA_RUN_HOME or HOME")
	}
	if err := os.MkdirAll(cfg.HomeDir, 0o755); err != nil {
		return false, fmt.Errorf("create directory %q: %w", cfg.HomeDir, err)
	}

	body, err := config.DefaultUserConfigTOML()
	if err != nil {
		return false, err
	}
	created, err := store.WriteFileIfMissing(cfg.ConfigPath(), []byte(body), 0o644)
	if err != nil {
		return false, fmt.Errorf("write config file: %w", err)
	}
	return created, nil
}
