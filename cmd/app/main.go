package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"candydelivery/cmd"
	"candydelivery/internal/adapters/out/kafka"
	"candydelivery/internal/adapters/out/postgres"
	"candydelivery/internal/adapters/out/rediscache"

	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config, err := cmd.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err = serve(config, logger); err != nil {
		logger.Error("Service stopped with error", "error", err)
		os.Exit(1)
	}
}

// serve opens the service resources, runs until a shutdown signal and releases them.
func serve(config cmd.Config, logger *slog.Logger) error {
	gormDB, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if sqlDB, dbErr := gormDB.DB(); dbErr == nil {
		defer func() {
			_ = sqlDB.Close()
		}()
	}
	if err = postgres.Migrate(gormDB); err != nil {
		return err
	}

	cache := rediscache.New(config.RedisAddr)
	defer func() {
		_ = cache.Close()
	}()

	producer := kafka.NewProducer(config.KafkaBrokers)
	defer func() {
		_ = producer.Close()
	}()

	app := cmd.NewCompositionRoot(config, gormDB, cache, producer, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return run(ctx, app, config, logger)
}

func run(ctx context.Context, app cmd.CompositionRoot, config cmd.Config, logger *slog.Logger) error {
	e := app.CreateHTTPServer().Echo()
	jobManager := app.CreateJobManager()

	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server listening", "addr", config.HTTPAddr())
		if err := e.Start(config.HTTPAddr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
