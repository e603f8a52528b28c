// Package store centralizes the launcher's own file writes.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// WriteFile atomically replaces a file's contents, creating parent
// directories as needed.
func WriteFile(path string, data []byte, perm fs.FileMode) error {
	cleanPath, err := cleanPath(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(cleanPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(cleanPath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file for %q: %w", cleanPath, err)
	}
	tempPath := tempFile.Name()
	defer func() {
		os.Remove(tempPath)
	}()

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("write temp file for %q: %w", cleanPath, err)
	}
	if err := tempFile.Chmod(perm); err != nil {
		tempFile.Close()
		return fmt.Errorf("chmod temp file for %q: %w", cleanPath, err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file for %q: %w", cleanPath, err)
	}
	if err := os.Rename(tempPath, cleanPath); err != nil {
		return fmt.Errorf("replace file %q: %w", cleanPath, err)
	}

	return nil
}

// WriteFileIfMissing writes data only when path does not exist yet. It
// reports whether the file was created.
func WriteFileIfMissing(path string, data []byte, perm fs.FileMode) (bool, error) {
	cleanPath, err := cleanPath(path)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(cleanPath); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat %q: %w", cleanPath, err)
	}

	if err := WriteFile(cleanPath, data, perm); err != nil {
		return false, err
	}
	return true, nil
}

func cleanPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is required")
	}
	return filepath.Clean(trimmed), nil
}
