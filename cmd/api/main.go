package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/homewiz/homewiz-backend/internal/bootstrap"
	"github.com/homewiz/homewiz-backend/internal/config"
	"github.com/homewiz/homewiz-backend/internal/infra/http/router"
	"github.com/homewiz/homewiz-backend/internal/logger"
	"github.com/homewiz/homewiz-backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat, "homewiz-api")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1. Storage and id sequence
	backend, err := bootstrap.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open storage", zap.Error(err))
	}
	defer backend.Close()

	// 2. Use cases
	uc := newUseCases(backend, log)

	if cfg.SeedOnStart {
		res, err := uc.Seeder.Execute(ctx, usecase.DefaultSeedData())
		if err != nil {
			log.Fatal("Failed to seed", zap.Error(err))
		}
		log.Info("seed finished",
			zap.Int("operators", res.Operators),
			zap.Int("buildings", res.Buildings),
			zap.Int("rooms", res.Rooms),
			zap.Int("leads", res.Leads),
		)
	}

	// 3. Handlers and router
	h, stopHandlers := newHandlers(backend, uc, cfg, log)
	defer stopHandlers()

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: router.New(h, router.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			RequestTimeout: 30 * time.Second,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HomeWiz API listening",
			zap.String("addr", srv.Addr),
			zap.String("store", backend.Kind()),
			zap.String("id_strategy", cfg.IDStrategy),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server failed", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
