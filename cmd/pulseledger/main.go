package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"pulseledger/internal/config"
	"pulseledger/internal/events"
	apphttp "pulseledger/internal/http"
	"pulseledger/internal/ledger"
	applog "pulseledger/internal/log"
	"pulseledger/internal/storage"
)

func main() {
	// Load .env for local development (ignore errors in production)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	// Persistence gateway
	var gateway ledger.Gateway
	switch cfg.DataBackend {
	case config.BackendSQLite:
		sqliteGW, err := storage.NewSQLiteGateway(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite gateway",
				applog.FieldError, err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer sqliteGW.Close()
		gateway = sqliteGW
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
	default:
		gateway = storage.NewMemoryGateway()
		logger.Info("Initialized memory backend")
	}

	// Mutation event feed (optional)
	var notifier ledger.Notifier
	if cfg.AMQPURL != "" {
		publisher, err := events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize event publisher, continuing without feed",
				applog.FieldError, err)
		} else {
			defer publisher.Close()
			notifier = publisher
			logger.Info("Initialized event feed",
				"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	store := ledger.NewStore(gateway, notifier, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := store.Initialize(ctx); err != nil {
		logger.Error("Failed to hydrate ledger", applog.FieldError, err)
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port, store, cfg.CacheTTL, logger)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting pulseledger server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		// Let the last fire-and-forget write reach the gateway.
		store.Flush()
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
