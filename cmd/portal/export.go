package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/archplans/plan-portal/internal/analytics/export"
	"github.com/archplans/plan-portal/internal/analytics/service"
	"github.com/archplans/plan-portal/internal/bootstrap"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportToken string
	exportYear  int
	exportOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export-analytics",
	Short: "Write the admin analytics dashboard to an Excel workbook",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportToken, "token", "", "Admin bearer token (or set PORTAL_ADMIN_TOKEN env)")
	exportCmd.Flags().IntVar(&exportYear, "year", 0, "Year of the monthly upload histogram (default: current year)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default: dashboard-<year>.xlsx)")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	token := exportToken
	if token == "" {
		token = os.Getenv("PORTAL_ADMIN_TOKEN")
	}
	if token == "" {
		return fmt.Errorf("an admin token is required (--token or PORTAL_ADMIN_TOKEN)")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*cfg.Backend.Timeout)
	defer cancel()

	dashboard, err := service.NewDashboardService(bootstrap.NewBackend(cfg)).Load(ctx, token, exportYear)
	if err != nil {
		return err
	}

	out := exportOut
	if out == "" {
		out = fmt.Sprintf("dashboard-%d.xlsx", dashboard.Year)
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := export.WriteDashboardXLSX(f, dashboard); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Info("analytics exported",
		zap.String("file", out),
		zap.Int("plans", dashboard.Totals.Plans),
		zap.Time("generated_at", dashboard.GeneratedAt.Truncate(time.Second)),
	)
	return nil
}
