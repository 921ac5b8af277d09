package main

import (
	"github.com/archplans/plan-portal/internal/bootstrap"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		if err := bootstrap.Migrate(cfg.Database.DSN); err != nil {
			return err
		}
		logger.Info("migrations applied")
		return nil
	},
}
