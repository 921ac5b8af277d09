// Package scheduler runs the periodic catalog refresh.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const refreshTimeout = 30 * time.Second

// Refresher reloads the catalog.
type Refresher interface {
	Refresh(ctx context.Context) (int, error)
}

type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	logger    *zap.Logger
}

func NewScheduler(refresher Refresher, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		refresher: refresher,
		logger:    logger,
	}
}

// Start registers the refresh job under spec (six fields, seconds first) and
// starts the cron loop. An empty spec disables the job.
func (s *Scheduler) Start(spec string) error {
	if spec == "" {
		s.logger.Info("catalog refresh schedule disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(spec, s.RunRefresh); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}

	s.logger.Info("cron scheduler started", zap.String("schedule", spec))
	s.cron.Start()
	return nil
}

// Stop stops the cron loop and waits for a running refresh to finish.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// RunRefresh performs one catalog refresh.
func (s *Scheduler) RunRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	start := time.Now()
	n, err := s.refresher.Refresh(ctx)
	if err != nil {
		s.logger.Warn("catalog refresh failed", zap.Error(err))
		return
	}
	s.logger.Info("catalog refreshed", zap.Int("plans", n), zap.Duration("took", time.Since(start)))
}
