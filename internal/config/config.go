// Package config loads launcher configuration from hardcoded defaults, an
// optional TOML file and AUTOMUA_RUN_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	// ModeProduction is the hardcoded configuration mode handed to the app.
	ModeProduction = "production"
	// ModeDevelopment enables the framework's development behavior.
	ModeDevelopment = "development"
)

// EnvPrefix prefixes every environment override, e.g. AUTOMUA_RUN_VENV_DIR.
const EnvPrefix = "AUTOMUA_RUN"

// Config is the runtime configuration loaded from defaults, config.toml, and env vars.
type Config struct {
	// HomeDir is resolved from AUTOMUA_RUN_HOME and not read from config.
	HomeDir string     `mapstructure:"-"`
	Venv    VenvConfig `mapstructure:"venv"`
	App     AppConfig  `mapstructure:"app"`
	Tool    ToolConfig `mapstructure:"tool"`
	Log     LogConfig  `mapstructure:"log"`
}

// VenvConfig locates the Python virtualenv to activate.
type VenvConfig struct {
	// Dir is resolved against the working directory when relative.
	Dir string `mapstructure:"dir"`
}

// AppConfig holds the values exported to the application.
type AppConfig struct {
	Mode       string `mapstructure:"mode"`
	EntryPoint string `mapstructure:"entry_point"`
	// ConfigPath is exported as AUTOMUA_CONFIG only when non-empty.
	ConfigPath string `mapstructure:"config_path"`
}

// ToolConfig describes the external CLI the launcher hands over to.
type ToolConfig struct {
	Command   string        `mapstructure:"command"`
	Exec      bool          `mapstructure:"exec"`
	WaitDelay time.Duration `mapstructure:"wait_delay"`
}

// LogConfig controls launcher log output.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

var defaultConfig = Config{
	Venv: VenvConfig{
		Dir: "venv",
	},
	App: AppConfig{
		Mode:       ModeProduction,
		EntryPoint: "automua.server:app",
		ConfigPath: "",
	},
	Tool: ToolConfig{
		Command:   "flask",
		Exec:      false,
		WaitDelay: 5 * time.Second,
	},
	Log: LogConfig{
		Level: "warn",
	},
}

// Default returns a copy of the hardcoded defaults.
func Default() *Config {
	cfg := defaultConfig
	return &cfg
}

// homeDir returns the launcher home directory.
// Uses AUTOMUA_RUN_HOME if set, otherwise defaults to ~/.automua-run.
func homeDir() (string, error) {
	if dir := os.Getenv(homeEnvVar); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return defaultHomePath(home), nil
}

// Load merges hardcoded defaults, the config file and environment overrides
// in that order. A missing config file is not an error, and neither is an
// unresolvable home: HomeDir is left empty and no file is read.
func Load() (*Config, error) {
	homeDir := resolveHomeDir()

	v, err := newViper(homeDir)
	if err != nil {
		return nil, err
	}

	var cfg Config
	decodeHook := mapstructure.ComposeDecodeHookFunc(
		expandEnvStringHook(),
		mapstructure.StringToTimeDurationHookFunc(),
	)

	if err := v.Unmarshal(&cfg, func(c *mapstructure.DecoderConfig) {
		c.DecodeHook = decodeHook
	}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.HomeDir = homeDir

	return &cfg, nil
}

// Write writes the merged configuration to w in TOML format.
func Write(w io.Writer) error {
	if w == nil {
		return errors.New("writer is required")
	}

	v, err := newViper(resolveHomeDir())
	if err != nil {
		return err
	}

	// Keep duration fields human-readable in generated TOML.
	v.Set("tool.wait_delay", v.GetDuration("tool.wait_delay").String())

	if err := v.WriteConfigTo(w); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// DefaultUserConfigTOML renders the minimal bootstrap user config as TOML.
func DefaultUserConfigTOML() (string, error) {
	v := viper.New()
	v.SetConfigType("toml")

	v.Set("venv.dir", defaultConfig.Venv.Dir)
	v.Set("app.mode", defaultConfig.App.Mode)
	v.Set("app.entry_point", defaultConfig.App.EntryPoint)
	v.Set("tool.command", defaultConfig.Tool.Command)

	var out bytes.Buffer
	if err := v.WriteConfigTo(&out); err != nil {
		return "", fmt.Errorf("write default user config: %w", err)
	}
	return out.String(), nil
}

// resolveHomeDir is homeDir without the error; "" means no launcher home.
func resolveHomeDir() string {
	dir, err := homeDir()
	if err != nil {
		return ""
	}
	return dir
}

func newViper(homeDir string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if homeDir == "" {
		return v, nil
	}

	v.SetConfigFile(homeConfigPath(homeDir))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("venv.dir", defaultConfig.Venv.Dir)

	v.SetDefault("app.mode", defaultConfig.App.Mode)
	v.SetDefault("app.entry_point", defaultConfig.App.EntryPoint)
	v.SetDefault("app.config_path", defaultConfig.App.ConfigPath)

	v.SetDefault("tool.command", defaultConfig.Tool.Command)
	v.SetDefault("tool.exec", defaultConfig.Tool.Exec)
	v.SetDefault("tool.wait_delay", defaultConfig.Tool.WaitDelay)

	v.SetDefault("log.level", defaultConfig.Log.Level)
}

func expandEnvStringHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.String {
			return data, nil
		}
		value, ok := data.(string)
		if !ok {
			return data, nil
		}
		return os.ExpandEnv(value), nil
	}
}
