package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/automua/automua-run/internal/launcher"
	"github.com/spf13/cobra"
)

func newCheckCmd(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "check [-- args...]",
		Short: "Activate and configure without starting the tool",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*verbose)
			if err != nil {
				return err
			}
			inv, err := newLauncher(cfg).Prepare(args)
			if err != nil {
				return err
			}
			return writeInvocation(cmd.OutOrStdout(), inv)
		},
	}
}

func writeInvocation(w io.Writer, inv *launcher.Invocation) error {
	argv := append([]string{inv.Path}, inv.Args[1:]...)
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = shellQuote(arg)
	}

	lines := []string{
		"virtualenv: " + inv.Venv.Root,
		"command:    " + strings.Join(quoted, " "),
	}
	for _, name := range []string{launcher.ModeEnvVar, launcher.AppEnvVar, launcher.ConfigEnvVar} {
		for _, kv := range inv.Env {
			if strings.HasPrefix(kv, name+"=") {
				lines = append(lines, kv)
			}
		}
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

func shellQuote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n'\"\\$`*?[]{}()<>|&;#~") {
		return s
	}
	return strconv.Quote(s)
}
