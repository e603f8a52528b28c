package launcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// resolveTool finds name inside the virtualenv first and then on pathList,
// the PATH of the child environment. Names containing a separator are used
// as given. Relative PATH entries are skipped, as exec.LookPath does.
func resolveTool(name, binDir, pathList string) (string, error) {
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		abs, err := filepath.Abs(name)
		if err != nil {
			return "", fmt.Errorf("resolve tool %q: %w", name, err)
		}
		if !isExecutable(abs) {
			return "", fmt.Errorf("%w: %s", ErrToolNotFound, abs)
		}
		return abs, nil
	}

	dirs := []string{binDir}
	dirs = append(dirs, filepath.SplitList(pathList)...)
	for _, dir := range dirs {
		if dir == "" || !filepath.IsAbs(dir) {
			continue
		}
		for _, candidate := range executableNames(name) {
			path := filepath.Join(dir, candidate)
			if isExecutable(path) {
				return path, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %q in %s or PATH", ErrToolNotFound, name, binDir)
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return hasExecBits(info.Mode())
}
