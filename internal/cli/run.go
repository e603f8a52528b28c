package cli

import (
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [args...]",
		Short: "Start the tool, forwarding every argument unchanged",
		Args:  cobra.ArbitraryArgs,
		// Flags belong to the tool, -v and --help included; use log.level
		// for launcher verbosity.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(false)
			if err != nil {
				return err
			}
			l := newLauncher(cfg)
			l.Stdin = cmd.InOrStdin()
			l.Stdout = cmd.OutOrStdout()
			l.Stderr = cmd.ErrOrStderr()
			return launchError(l.Run(cmd.Context(), args))
		},
	}
}
