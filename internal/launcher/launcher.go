// Package launcher starts the automua web application: it activates the
// virtualenv, exports the application settings and hands the untouched
// argument vector to the framework CLI.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/automua/automua-run/internal/config"
	"github.com/automua/automua-run/internal/logging"
	"github.com/automua/automua-run/internal/venv"
	"github.com/google/shlex"
)

const (
	// ModeEnvVar selects the framework configuration mode.
	ModeEnvVar = "FLASK_ENV"
	// AppEnvVar names the application object the framework loads.
	AppEnvVar = "FLASK_APP"
	// ConfigEnvVar points the application at its configuration file.
	ConfigEnvVar = "AUTOMUA_CONFIG"

	// ExitFailure is returned when the launcher fails before the tool starts.
	ExitFailure = 1
)

var (
	// ErrToolNotFound is returned when the tool is neither in the virtualenv nor on PATH.
	ErrToolNotFound = errors.New("tool not found")

	errExecUnsupported = errors.New("exec mode is not supported on this platform")
)

// Launcher holds everything needed to start the tool.
type Launcher struct {
	VenvDir    string
	Mode       string
	EntryPoint string
	// ConfigPath is exported as AUTOMUA_CONFIG when non-empty.
	ConfigPath string
	Command    string
	Exec       bool
	WaitDelay  time.Duration

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Environ supplies the inherited environment. Defaults to os.Environ.
	Environ func() []string
}

// Invocation is a fully prepared tool start.
type Invocation struct {
	Venv *venv.Env
	// Path is the resolved executable.
	Path string
	// Args is the full argv, Args[0] included.
	Args []string
	Env  []string
}

// New builds a launcher wired to the process standard streams.
func New(cfg *config.Config) *Launcher {
	return &Launcher{
		VenvDir:    cfg.Venv.Dir,
		Mode:       cfg.App.Mode,
		EntryPoint: cfg.App.EntryPoint,
		ConfigPath: cfg.App.ConfigPath,
		Command:    cfg.Tool.Command,
		Exec:       cfg.Tool.Exec,
		WaitDelay:  cfg.Tool.WaitDelay,
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Environ:    os.Environ,
	}
}

// Prepare activates the virtualenv, builds the child environment and
// resolves the tool. args are appended to the tool command as they are.
func (l *Launcher) Prepare(args []string) (*Invocation, error) {
	env, err := venv.Activate(l.VenvDir)
	if err != nil {
		return nil, fmt.Errorf("activate environment: %w", err)
	}
	logging.Logger().Info("activated virtualenv", "root", env.Root)

	childEnv, err := BuildEnvironment(env.Apply(l.environ()), l.Mode, l.EntryPoint, l.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("configure: %w", err)
	}

	parts, err := shlex.Split(l.Command)
	if err != nil {
		return nil, fmt.Errorf("parse tool command %q: %w", l.Command, err)
	}
	if len(parts) == 0 {
		return nil, errors.New("tool command is empty")
	}

	path, err := resolveTool(parts[0], env.BinDir, lookupEnv(childEnv, "PATH"))
	if err != nil {
		return nil, err
	}

	argv := make([]string, 0, len(parts)+len(args))
	argv = append(argv, parts...)
	argv = append(argv, args...)

	return &Invocation{
		Venv: env,
		Path: path,
		Args: argv,
		Env:  childEnv,
	}, nil
}

// Run prepares the invocation and runs the tool to completion. The returned
// code is the tool's exit code, or ExitFailure when the tool never started.
func (l *Launcher) Run(ctx context.Context, args []string) (int, error) {
	inv, err := l.Prepare(args)
	if err != nil {
		return ExitFailure, err
	}

	if l.Exec {
		logging.Logger().Debug("replacing launcher with tool", "path", inv.Path, "args", inv.Args[1:])
		err := execTool(inv)
		if !errors.Is(err, errExecUnsupported) {
			return ExitFailure, fmt.Errorf("exec %s: %w", inv.Path, err)
		}
		logging.Logger().Warn("exec mode unavailable, running tool as a child process")
	}

	return l.spawn(ctx, inv)
}

func (l *Launcher) spawn(ctx context.Context, inv *Invocation) (int, error) {
	cmd := exec.CommandContext(ctx, inv.Path)
	cmd.Args = inv.Args
	cmd.Env = inv.Env
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr
	cmd.WaitDelay = l.WaitDelay

	logging.Logger().Debug("starting tool", "path", inv.Path, "args", inv.Args[1:])
	relay := catchSignals()
	if err := cmd.Start(); err != nil {
		relay.stop()
		return ExitFailure, fmt.Errorf("start %s: %w", inv.Path, err)
	}

	relay.relayTo(cmd.Process)
	waitErr := cmd.Wait()
	relay.stop()

	if cmd.ProcessState == nil {
		return ExitFailure, fmt.Errorf("wait for %s: %w", inv.Path, waitErr)
	}
	code := exitStatus(cmd.ProcessState)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return code, fmt.Errorf("tool interrupted: %w", ctxErr)
	}
	logging.Logger().Debug("tool exited", "code", code)
	return code, nil
}

func (l *Launcher) environ() []string {
	if l.Environ == nil {
		return os.Environ()
	}
	return l.Environ()
}

// BuildEnvironment sets the configuration mode and entry point on base and,
// when configPath is non-empty, the configuration file override.
func BuildEnvironment(base []string, mode, entryPoint, configPath string) ([]string, error) {
	switch mode {
	case config.ModeProduction, config.ModeDevelopment:
	default:
		return nil, fmt.Errorf("invalid mode %q", mode)
	}
	if strings.TrimSpace(entryPoint) == "" {
		return nil, errors.New("entry point is required")
	}

	env := setEnv(base, ModeEnvVar, mode)
	env = setEnv(env, AppEnvVar, entryPoint)
	if strings.TrimSpace(configPath) != "" {
		env = setEnv(env, ConfigEnvVar, configPath)
	}
	return env, nil
}

// setEnv replaces every existing entry for name with a single name=value.
func setEnv(env []string, name, value string) []string {
	out := make([]string, 0, len(env)+1)
	for _, kv := range env {
		if k, _, _ := strings.Cut(kv, "="); k == name {
			continue
		}
		out = append(out, kv)
	}
	return append(out, name+"="+value)
}

func lookupEnv(env []string, name string) string {
	value := ""
	for _, kv := range env {
		if k, v, ok := strings.Cut(kv, "="); ok && k == name {
			value = v
		}
	}
	return value
}
