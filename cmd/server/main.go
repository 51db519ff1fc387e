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

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/iliyamo/pitch-reservation/internal/browse"
	"github.com/iliyamo/pitch-reservation/internal/catalog"
	"github.com/iliyamo/pitch-reservation/internal/config"
	"github.com/iliyamo/pitch-reservation/internal/database"
	"github.com/iliyamo/pitch-reservation/internal/dataset"
	"github.com/iliyamo/pitch-reservation/internal/handler"
	"github.com/iliyamo/pitch-reservation/internal/logger"
	"github.com/iliyamo/pitch-reservation/internal/middleware"
	"github.com/iliyamo/pitch-reservation/internal/model"
	"github.com/iliyamo/pitch-reservation/internal/queue"
	"github.com/iliyamo/pitch-reservation/internal/repository"
	"github.com/iliyamo/pitch-reservation/internal/router"
	"github.com/iliyamo/pitch-reservation/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pitches, err := loadPitches(ctx, cfg)
	if err != nil {
		return err
	}
	cat := catalog.New(pitches, cfg.PageSize)
	log.Info("catalog loaded", zap.String("source", cfg.DataSource), zap.Int("pitches", cat.Len()))

	rdb := config.NewRedisClient(ctx)
	if rdb == nil {
		log.Warn("redis unavailable; caching and rate limiting disabled, browse sessions kept in memory")
	} else {
		defer func() { _ = rdb.Close() }()
	}

	var events service.EventPublisher
	if cfg.EventsEnabled {
		pub := service.NewAMQPPublisher(cfg.AMQPURL, 256, log)
		defer pub.Close()
		events = pub
	}
	if cfg.ConsumerEnabled {
		consumer := queue.NewConsumer(cfg.AMQPURL, queue.NewEventLog(cfg.EventLogPath), log)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("search consumer stopped", zap.Error(err))
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.RequestID())
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: cfg.CORSOrigins}))
	e.Use(middleware.SessionFlag(cfg.JWTSecret))

	router.RegisterRoutes(e)
	router.RegisterMetrics(e, echo.WrapHandler(promhttp.Handler()))
	router.RegisterAuth(e, handler.NewAuthHandler(cfg.JWTSecret, cfg.SessionTTL))
	router.RegisterPublic(e, router.Catalog{
		Pitches:   handler.NewCatalogHandler(cat, events, log),
		Browse:    handler.NewBrowseHandler(cat, browse.NewSessionStore(rdb, cfg.BrowseSessionTTL), events, log),
		Live:      handler.NewLiveSearchHandler(cat, cfg.LiveSearchDebounce, events, log),
		Cache:     middleware.NewRedisCache(config.LoadCacheConfig(), rdb, log),
		RateLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, log),
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// loadPitches reads the collection once from the configured source.
func loadPitches(ctx context.Context, cfg config.Config) ([]model.Pitch, error) {
	switch cfg.DataSource {
	case config.SourceFile:
		return dataset.LoadFile(cfg.DatasetPath)
	case config.SourceMySQL:
		db, err := database.Open(ctx, dbOptions(cfg))
		if err != nil {
			return nil, err
		}
		defer db.Close()
		pitches, err := repository.NewPitchRepo(db).ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("load pitches: %w", err)
		}
		return pitches, nil
	default:
		return dataset.Load()
	}
}

func dbOptions(cfg config.Config) database.Options {
	return database.Options{
		User:     cfg.DBUser,
		Password: cfg.DBPass,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		Name:     cfg.DBName,
	}
}
