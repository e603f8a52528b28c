package config

import "path/filepath"

const (
	// Layout under AUTOMUA_RUN_HOME.
	ConfigFilePath = "config.toml"

	homeEnvVar     = "AUTOMUA_RUN_HOME"
	defaultHomeDir = ".automua-run"
)

func homeConfigPath(home string) string {
	return filepath.Join(home, ConfigFilePath)
}

func defaultHomePath(home string) string {
	return filepath.Join(home, defaultHomeDir)
}

// ConfigPath returns the config file location under the launcher home, or
// "" when the home is unknown.
func (c *Config) ConfigPath() string {
	if c.HomeDir == "" {
		return ""
	}
	return homeConfigPath(c.HomeDir)
}
