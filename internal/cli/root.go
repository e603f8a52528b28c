// Package cli wires the launcher and its administration commands to cobra; it
// is a thin controller with no business logic.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the automuactl root command and registers all subcommands.
func NewRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "automuactl",
		Short: "Inspect and run the automua launcher",
		// Let main handle fatal error rendering through structured logs.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(newConfigCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newCheckCmd(&verbose))
	root.AddCommand(newRunCmd())
	root.AddCommand(newVersionCmd())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging (info level)")

	return root
}
