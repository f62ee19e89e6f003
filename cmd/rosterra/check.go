package main

import (
	"fmt"

	"github.com/aussiebroadwan/rosterra/internal/rosterra/app"
	"github.com/aussiebroadwan/rosterra/pkg/cryptox"
	"github.com/aussiebroadwan/rosterra/pkg/slogx"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Print the account table, seeding the default admin when it is empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger := app.NewLogger(cfg)
			cryptox.SetPepperPath(cfg.PepperFile)

			db, err := app.OpenStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			ctx := slogx.WithContext(cmd.Context(), logger)
			return app.Check(ctx, db, app.NewSeedService(cfg, db), cmd.OutOrStdout())
		},
	}
}
