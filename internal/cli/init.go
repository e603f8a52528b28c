package cli

import (
	"fmt"

	"github.com/automua/automua-run/internal/bootstrap"
	"github.com/automua/automua-run/internal/config"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the launcher home and a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			created, err := bootstrap.Initialize(cfg)
			if err != nil {
				return err
			}
			if created {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote config file: %s\n", cfg.ConfigPath())
			} else {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Config file already exists: %s\n", cfg.ConfigPath())
			}
			return err
		},
	}
}
