package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rosterra",
		Short: "Roster server with admin-approved accounts",
		Long: `Runs the rosterra REST server. Without a sub-command it behaves like

	rosterra serve

All settings come from the environment, see the README for the list.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	root.AddCommand(newServeCmd(), newMigrateCmd(), newCheckCmd())
	return root
}
