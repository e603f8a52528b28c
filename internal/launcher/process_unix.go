//go:build unix

package launcher

import (
	"io/fs"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// The terminal delivers SIGINT and SIGQUIT to the whole foreground group, so
// the tool already has them; the launcher only has to survive them.
var (
	relayedSignals  = []os.Signal{unix.SIGTERM, unix.SIGHUP}
	absorbedSignals = []os.Signal{unix.SIGINT, unix.SIGQUIT}
)

// execTool replaces the current process image. It only returns on failure.
func execTool(inv *Invocation) error {
	return unix.Exec(inv.Path, inv.Args, inv.Env)
}

// exitStatus reports a signal death as 128+N like a shell does.
func exitStatus(state *os.ProcessState) int {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return state.ExitCode()
}

func executableNames(name string) []string {
	return []string{name}
}

func hasExecBits(mode fs.FileMode) bool {
	return mode&0o111 != 0
}
