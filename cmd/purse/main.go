package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"purse/internal/amqp"
	"purse/internal/cli"
	"purse/internal/engine"
	apphttp "purse/internal/http"
	"purse/internal/log"
	"purse/internal/services"
	"purse/internal/storage/memory"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	// Choose the plan store backend.
	var store engine.PlanStore
	switch cfg.DataBackend {
	case "sqlite":
		repo := cli.InitSQLite(logger, cfg.SQLiteDBPath, cfg.StorageKey)
		defer repo.Close()
		store = repo
	default:
		store = memory.New()
	}
	logger.Info("Initialized plan store", "backend", cfg.DataBackend)

	// Plan events are best-effort; a missing broker only disables them.
	var publisher services.EventPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, plan events disabled", log.FieldError, err)
		} else {
			publisher = client
		}
	}

	eng := engine.New(store)
	eng.Refresh(context.Background())

	plans := services.NewPlanService(eng, publisher)
	defer plans.Close()

	srv := apphttp.NewServer(":"+cfg.Port, plans)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting purse server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
