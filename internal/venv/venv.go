// Package venv activates a Python virtualenv for a child process the same way
// its bin/activate script does for an interactive shell.
package venv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	// ErrNotFound is returned when the virtualenv directory does not exist.
	ErrNotFound = errors.New("virtualenv not found")
	// ErrInvalid is returned when the directory exists but is not a virtualenv.
	ErrInvalid = errors.New("not a virtualenv")
)

const (
	// VirtualEnvVar names the activated environment for Python tooling.
	VirtualEnvVar = "VIRTUAL_ENV"
	pathVar       = "PATH"
	pythonHomeVar = "PYTHONHOME"
	pyvenvCfg     = "pyvenv.cfg"
)

// Env is an activated virtualenv.
type Env struct {
	// Root is the absolute virtualenv directory.
	Root string
	// BinDir holds the environment's executables.
	BinDir string
}

// Activate resolves dir against the working directory and checks it looks
// like a virtualenv.
func Activate(dir string) (*Env, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrNotFound)
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve virtualenv %q: %w", dir, err)
	}

	info, err := os.Stat(root)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, root)
	}
	if err != nil {
		return nil, fmt.Errorf("stat virtualenv %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalid, root)
	}

	binDir := filepath.Join(root, binDirName())
	if info, err := os.Stat(binDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalid, binDir)
	}
	if !exists(filepath.Join(root, pyvenvCfg)) && !exists(filepath.Join(binDir, activateScript())) {
		return nil, fmt.Errorf("%w: %s has neither %s nor %s", ErrInvalid, root, pyvenvCfg, activateScript())
	}

	return &Env{Root: root, BinDir: binDir}, nil
}

// Apply returns base with the virtualenv activated: VIRTUAL_ENV set, the bin
// directory first on PATH and PYTHONHOME removed.
func (e *Env) Apply(base []string) []string {
	out := make([]string, 0, len(base)+2)
	path := ""
	for _, kv := range base {
		name, value, _ := strings.Cut(kv, "=")
		switch {
		case envNameEqual(name, pathVar):
			path = value
			continue
		case envNameEqual(name, pythonHomeVar), envNameEqual(name, VirtualEnvVar):
			continue
		}
		out = append(out, kv)
	}

	if path == "" {
		path = e.BinDir
	} else {
		path = e.BinDir + string(os.PathListSeparator) + path
	}
	return append(out, VirtualEnvVar+"="+e.Root, pathVar+"="+path)
}

func binDirName() string {
	if runtime.GOOS == "windows" {
		return "Scripts"
	}
	return "bin"
}

func activateScript() string {
	if runtime.GOOS == "windows" {
		return "activate.bat"
	}
	return "activate"
}

func envNameEqual(a, b string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
