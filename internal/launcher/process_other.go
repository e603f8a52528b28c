//go:build !unix

package launcher

import (
	"io/fs"
	"os"
	"path/filepath"
)

var (
	relayedSignals  []os.Signal
	absorbedSignals = []os.Signal{os.Interrupt}
)

func execTool(*Invocation) error {
	return errExecUnsupported
}

func exitStatus(state *os.ProcessState) int {
	return state.ExitCode()
}

func executableNames(name string) []string {
	if filepath.Ext(name) != "" {
		return []string{name}
	}
	return []string{name + ".exe", name + ".cmd", name + ".bat", name}
}

func hasExecBits(fs.FileMode) bool {
	return true
}
