package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"purse/internal/amqp"
	"purse/internal/cli"
	"purse/internal/log"
	"purse/internal/sheets"
	gsheet "purse/internal/sheets/google"
	sheetsmem "purse/internal/sheets/memory"
	"purse/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)

	logger.Info("Starting purse-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	// The worker reads plans straight from the store for snapshots.
	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath, cfg.StorageKey)
	defer repo.Close()

	// Week log destination: Google Sheets when configured, otherwise an
	// in-memory sink so the event pipeline still drains locally.
	var weekLog sheets.WeekLogWriter
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
			os.Exit(1)
		}
		weekLog = client
		logger.Info("Google Sheets week log initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		weekLog = sheetsmem.New()
		logger.Info("Google Sheets disabled - exporting to in-memory week log")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	exporter := worker.NewExportWorker(repo, weekLog)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Snapshot once at startup to cover events missed while down.
	if err := exporter.ExportCurrentPlan(ctx); err != nil {
		logger.Error("Startup snapshot failed", log.FieldError, err)
		// Don't exit - continue with normal operation
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumePlanEvents(gctx, func(msg *amqp.PlanEventMessage) error {
			return exporter.HandleEvent(gctx, msg)
		})
	})

	g.Go(func() error {
		ticker := time.NewTicker(cfg.ExportInterval)
		defer ticker.Stop()

		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-ticker.C:
				if err := exporter.ExportCurrentPlan(gctx); err != nil {
					logger.Error("Periodic snapshot failed", log.FieldError, err)
				}
			}
		}
	})

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-gctx.Done():
		logger.Info("Worker context cancelled")
	}

	cancel()
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete")
}
