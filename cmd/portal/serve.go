package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/archplans/plan-portal/internal/bootstrap"
	"github.com/archplans/plan-portal/internal/scheduler"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

var serveMigrate bool

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Apply database migrations before serving (postgres favorites only)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if serveMigrate && cfg.Favorites.Store == "postgres" {
		if err := bootstrap.Migrate(cfg.Database.DSN); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	app, err := bootstrap.NewApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	sched := scheduler.NewScheduler(app.Catalog, logger.Named("scheduler"))
	if err := sched.Start(cfg.Catalog.RefreshCron); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           app.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("port", cfg.Server.Port),
			zap.String("env", cfg.App.Environment),
			zap.String("backend", app.Backend.BaseURL()),
			zap.String("favorites_store", cfg.Favorites.Store),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	sched.Stop(shutdownCtx)
	return srv.Shutdown(shutdownCtx)
}
