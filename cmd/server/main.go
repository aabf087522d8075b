package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"verdict/internal/config"
	"verdict/internal/decision"
	"verdict/internal/inference"
	"verdict/internal/jobs"
	"verdict/internal/logger"
	"verdict/internal/metrics"
	"verdict/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg := logger.New(cfg.LogFile, cfg.IsDev())
	defer func() { _ = logg.Sync() }()

	if !cfg.HasCredential() {
		logg.Warn("inference credential is not set; every decision will fail until it is",
			zap.String("env", cfg.CredentialEnv))
	}

	invoker, err := inference.New(cfg)
	if err != nil {
		logg.Fatal("failed to initialize inference provider", zap.Error(err))
	}
	logg.Info("inference provider ready",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model),
	)

	desks := decision.NewRegistry()
	recorder := metrics.New(prometheus.DefaultRegisterer, desks)
	engine := decision.NewEngine(invoker,
		decision.WithObserver(recorder),
		decision.WithLogger(logg.Named("engine").With(zap.String("provider", cfg.Provider))),
	)

	srv := server.New(cfg, logg)
	srv.RegisterRoutes(engine, desks, prometheus.DefaultGatherer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeper := jobs.NewDeskSweeper(desks, cfg.DeskSweepInterval, cfg.DeskIdleTTL, logg.Named("sweeper"))
	go sweeper.Start(ctx)

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			logg.Error("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("shutting down server")
	cancel()
	if err := srv.Shutdown(); err != nil {
		logg.Fatal("server forced to shutdown", zap.Error(err))
	}
	logg.Info("server exited")
}
