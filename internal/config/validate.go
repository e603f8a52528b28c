package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validatable is implemented by config sections that can self-validate.
type Validatable interface {
	Validate() error
}

func validateMode(mode string) error {
	switch mode {
	case ModeProduction, ModeDevelopment:
		return nil
	default:
		return fmt.Errorf("invalid mode %q (allowed: %q, %q)", mode, ModeProduction, ModeDevelopment)
	}
}

// Validate checks the virtualenv location.
func (c VenvConfig) Validate() error {
	if strings.TrimSpace(c.Dir) == "" {
		return errors.New("dir is required")
	}
	return nil
}

// Validate checks the values exported to the application.
func (c AppConfig) Validate() error {
	var errs []error
	if err := validateMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(c.EntryPoint) == "" {
		errs = append(errs, errors.New("entry_point is required"))
	}
	return errors.Join(errs...)
}

// Validate checks the tool command.
func (c ToolConfig) Validate() error {
	if strings.TrimSpace(c.Command) == "" {
		return errors.New("command is required")
	}
	if c.WaitDelay < 0 {
		return errors.New("wait_delay must be >= 0")
	}
	return nil
}

// Validate checks the log level name.
func (c LogConfig) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Level)) {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("invalid level %q", c.Level)
	}
}

// Validate validates the whole configuration and reports every problem found.
func (cfg *Config) Validate() error {
	var errs []error

	sections := []struct {
		name string
		v    Validatable
	}{
		{"venv", cfg.Venv},
		{"app", cfg.App},
		{"tool", cfg.Tool},
		{"log", cfg.Log},
	}
	for _, section := range sections {
		if err := section.v.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", section.name, err))
		}
	}

	return errors.Join(errs...)
}
