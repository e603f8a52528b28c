package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, homeDir, body string) {
	t.Helper()
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(homeDir, ConfigFilePath), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoad_DefaultsApplyWithoutConfigFile(t *testing.T) {
	homeDir := filepath.Join(t.TempDir(), ".automua-run")
	t.Setenv("AUTOMUA_RUN_HOME", homeDir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.HomeDir != homeDir {
		t.Fatalf("expected home dir %q, got %q", homeDir, cfg.HomeDir)
	}
	if cfg.App.Mode != ModeProduction {
		t.Fatalf("expected default mode %q, got %q", ModeProduction, cfg.App.Mode)
	}
	if cfg.App.EntryPoint != defaultConfig.App.EntryPoint {
		t.Fatalf("expected default entry point %q, got %q", defaultConfig.App.EntryPoint, cfg.App.EntryPoint)
	}
	if cfg.App.ConfigPath != "" {
		t.Fatalf("expected config path override to be inactive, got %q", cfg.App.ConfigPath)
	}
	if cfg.Venv.Dir != "venv" {
		t.Fatalf("expected default venv dir, got %q", cfg.Venv.Dir)
	}
	if cfg.Tool.Command != "flask" || cfg.Tool.Exec {
		t.Fatalf("expected default tool flask without exec, got %+v", cfg.Tool)
	}
	if cfg.Tool.WaitDelay != 5*time.Second {
		t.Fatalf("expected default wait delay 5s, got %v", cfg.Tool.WaitDelay)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate: %v", err)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	homeDir := filepath.Join(t.TempDir(), ".automua-run")
	t.Setenv("AUTOMUA_RUN_HOME", homeDir)
	writeConfigFile(t, homeDir, `
[venv]
dir = "/srv/automua/venv"

[app]
mode = "development"
config_path = "/etc/automua.conf"

[tool]
command = "python -m flask"
wait_delay = "250ms"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Venv.Dir != "/srv/automua/venv" {
		t.Fatalf("expected venv dir from file, got %q", cfg.Venv.Dir)
	}
	if cfg.App.Mode != ModeDevelopment {
		t.Fatalf("expected mode from file, got %q", cfg.App.Mode)
	}
	if cfg.App.ConfigPath != "/etc/automua.conf" {
		t.Fatalf("expected config path from file, got %q", cfg.App.ConfigPath)
	}
	if cfg.App.EntryPoint != defaultConfig.App.EntryPoint {
		t.Fatalf("expected entry point to keep default, got %q", cfg.App.EntryPoint)
	}
	if cfg.Tool.Command != "python -m flask" {
		t.Fatalf("expected tool command from file, got %q", cfg.Tool.Command)
	}
	if cfg.Tool.WaitDelay != 250*time.Millisecond {
		t.Fatalf("expected wait delay 250ms, got %v", cfg.Tool.WaitDelay)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	homeDir := filepath.Join(t.TempDir(), ".automua-run")
	t.Setenv("AUTOMUA_RUN_HOME", homeDir)
	writeConfigFile(t, homeDir, `
[venv]
dir = "from-file"
`)
	t.Setenv("AUTOMUA_RUN_VENV_DIR", "from-env")
	t.Setenv("AUTOMUA_RUN_TOOL_EXEC", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Venv.Dir != "from-env" {
		t.Fatalf("expected env override, got %q", cfg.Venv.Dir)
	}
	if !cfg.Tool.Exec {
		t.Fatalf("expected tool.exec from env")
	}
}

func TestLoad_ExpandsEnvVarsInStringValues(t *testing.T) {
	homeDir := filepath.Join(t.TempDir(), ".automua-run")
	t.Setenv("AUTOMUA_RUN_HOME", homeDir)
	t.Setenv("AUTOMUA_ROOT", "/opt/automua")
	writeConfigFile(t, homeDir, `
[venv]
dir = "$AUTOMUA_ROOT/venv"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Venv.Dir != "/opt/automua/venv" {
		t.Fatalf("expected expanded venv dir, got %q", cfg.Venv.Dir)
	}
}

func TestLoad_MalformedFileFails(t *testing.T) {
	homeDir := filepath.Join(t.TempDir(), ".automua-run")
	t.Setenv("AUTOMUA_RUN_HOME", homeDir)
	writeConfigFile(t, homeDir, "[venv\ndir = ")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for malformed config file")
	}
}

func TestWrite_PrintsMergedConfig(t *testing.T) {
	homeDir := filepath.Join(t.TempDir(), ".automua-run")
	t.Setenv("AUTOMUA_RUN_HOME", homeDir)
	writeConfigFile(t, homeDir, `
[app]
entry_point = "automua.server:create_app()"
`)

	var out bytes.Buffer
	if err := Write(&out); err != nil {
		t.Fatalf("write config: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "[app]") || !strings.Contains(got, "automua.server:create_app()") {
		t.Fatalf("expected merged app section, got %q", got)
	}
	if !strings.Contains(got, "[tool]") || !strings.Contains(got, "wait_delay = '5s'") {
		t.Fatalf("expected defaults with readable duration, got %q", got)
	}
}

func TestDefaultUserConfigTOML(t *testing.T) {
	got, err := DefaultUserConfigTOML()
	if err != nil {
		t.Fatalf("render default user config: %v", err)
	}
	for _, want := range []string{"[venv]", "[app]", "mode = 'production'", "[tool]", "command = 'flask'"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in default user config, got %q", want, got)
		}
	}
}

func TestLoad_WithoutHomeUsesDefaultsAndEnv(t *testing.T) {
	t.Setenv("AUTOMUA_RUN_HOME", "")
	t.Setenv("HOME", "")
	t.Setenv("AUTOMUA_RUN_VENV_DIR", "/srv/automua/venv")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HomeDir != "" || cfg.ConfigPath() != "" {
		t.Fatalf("expected no launcher home, got %q (config %q)", cfg.HomeDir, cfg.ConfigPath())
	}
	if cfg.Venv.Dir != "/srv/automua/venv" {
		t.Fatalf("expected env override to apply, got %q", cfg.Venv.Dir)
	}
	if cfg.App.Mode != ModeProduction {
		t.Fatalf("expected default mode %q, got %q", ModeProduction, cfg.App.Mode)
	}
}
