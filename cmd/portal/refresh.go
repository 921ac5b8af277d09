package main

import (
	"github.com/archplans/plan-portal/internal/bootstrap"
	"github.com/archplans/plan-portal/internal/scheduler"
	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh-catalog",
	Short: "Refetch the catalog and replace the cached snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}

		app, err := bootstrap.NewApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer app.Close()

		scheduler.NewScheduler(app.Catalog, logger).RunRefresh()
		return nil
	},
}
