package main

import (
	"fmt"

	"github.com/aussiebroadwan/rosterra/internal/rosterra/app"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all up migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger := app.NewLogger(cfg)

			db, err := app.OpenStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			logger.Info("migrations applied", "driver", cfg.DatabaseDriver)
			return nil
		},
	})

	return migrateCmd
}
