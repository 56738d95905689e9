package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/onionprice/internal/config"
	"github.com/mamadbah2/onionprice/internal/repository/history"
	"github.com/mamadbah2/onionprice/internal/repository/kv"
	"github.com/mamadbah2/onionprice/internal/scheduler"
	"github.com/mamadbah2/onionprice/internal/server/handlers"
	"github.com/mamadbah2/onionprice/internal/server/router"
	"github.com/mamadbah2/onionprice/internal/service/calculator"
	"github.com/mamadbah2/onionprice/internal/service/presentation"
	"github.com/mamadbah2/onionprice/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := kv.Open(ctx, cfg.Store, logger.Named(baseLogger, "repo.kv"))
	if err != nil {
		baseLogger.Fatal("failed to open storage", zap.String("backend", cfg.Store.Backend), zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close storage", zap.Error(err))
		}
	}()

	historyRepo := history.NewKVRepository(store, cfg.Store.HistoryKey, logger.Named(baseLogger, "repo.history"))
	calculatorSvc := calculator.NewService(logger.Named(baseLogger, "svc.calculator"))
	formatter := presentation.NewFormatter(cfg.Display.Location(), logger.Named(baseLogger, "svc.presentation"))

	calculationHandler := handlers.NewCalculationHandler(calculatorSvc, historyRepo, formatter, logger.Named(baseLogger, "handlers.calculation"))
	engine := router.New(calculationHandler, logger.Named(baseLogger, "router"))

	sched, err := scheduler.NewScheduler(*cfg, historyRepo, logger.Named(baseLogger, "scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		baseLogger.Info("server starting",
			zap.String("port", cfg.Server.Port),
			zap.String("backend", cfg.Store.Backend),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
