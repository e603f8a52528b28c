package cli

import (
	"os"
	"path/filepath"
	"testing"
)

// fakeFlask records its arguments one per line and exits with $TOOL_EXIT.
const fakeFlask = `#!/bin/sh
for arg in "$@"; do
	printf '%s\n' "$arg"
done > "$RECORD_DIR/args"
exit "${TOOL_EXIT:-0}"
`

func createTestHome(t *testing.T) string {
	t.Helper()
	homeDir := filepath.Join(t.TempDir(), ".automua-run")
	t.Setenv("AUTOMUA_RUN_HOME", homeDir)
	return homeDir
}

// createTestVenv builds a virtualenv with a fake flask and points the
// launcher at it through the environment.
func createTestVenv(t *testing.T) (venvDir, recordDir string) {
	t.Helper()
	root := t.TempDir()
	venvDir = filepath.Join(root, "venv")
	if err := os.MkdirAll(filepath.Join(venvDir, "bin"), 0o755); err != nil {
		t.Fatalf("mkdir venv: %v", err)
	}
	if err := os.WriteFile(filepath.Join(venvDir, "pyvenv.cfg"), []byte("home = /usr/bin\n"), 0o644); err != nil {
		t.Fatalf("write pyvenv.cfg: %v", err)
	}
	if err := os.WriteFile(filepath.Join(venvDir, "bin", "flask"), []byte(fakeFlask), 0o755); err != nil {
		t.Fatalf("write fake flask: %v", err)
	}
	recordDir = filepath.Join(root, "record")
	if err := os.MkdirAll(recordDir, 0o755); err != nil {
		t.Fatalf("mkdir record dir: %v", err)
	}

	t.Setenv("AUTOMUA_RUN_VENV_DIR", venvDir)
	t.Setenv("RECORD_DIR", recordDir)
	return venvDir, recordDir
}

func writeConfig(t *testing.T, homeDir, body string) {
	t.Helper()
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(homeDir, "config.toml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}
