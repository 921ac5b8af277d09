package main

import (
	"fmt"

	"github.com/archplans/plan-portal/config"
	"github.com/archplans/plan-portal/internal/bootstrap"
	"github.com/archplans/plan-portal/internal/logging"
	"go.uber.org/zap"
)

// setup loads configuration and installs the process logger.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	logging.SetBase(logger)
	bootstrap.SetGinMode(cfg.App.Environment)

	return cfg, logger, nil
}
