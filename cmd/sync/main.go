// Command sync runs one reconciliation of the source site into the store and
// exits. It is meant to be started by an external scheduler.
//
// Exit status is 0 whenever the run completes, including runs that recorded
// per-tab or per-code failures, and 1 when the run could not start.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fundsync/internal/config"
	"fundsync/internal/database"
	"fundsync/internal/logger"
	"fundsync/internal/pipeline"
)

func main() {
	logger.Init(os.Getenv("ENV"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()

	if err != nil {
		logger.Get().Errorf("Sync could not start: %v", err)
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func run(ctx context.Context) error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("closing database: %v", err)
		}
	}()

	syncer := pipeline.NewSyncer(dbManager.DB(), pipeline.NewSourceClient(appConfig), pipeline.ConfigFrom(appConfig))
	result, err := syncer.Run(ctx)
	if err != nil {
		return err
	}

	for _, unitErr := range result.Errors {
		log.Warnw("Unit failed", "tab", unitErr.Tab, "stage", unitErr.Stage, "code", unitErr.Code, "message", unitErr.Message)
	}
	log.Infow("Sync finished",
		"run_id", result.RunID,
		"tabs", len(result.Tabs),
		"errors", len(result.Errors),
		"duration", result.Duration.String(),
	)
	return nil
}
