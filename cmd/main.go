package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/voci-api/internal/config"
	"github.com/Vovarama1992/voci-api/internal/delivery"
	"github.com/Vovarama1992/voci-api/internal/domain"
	"github.com/Vovarama1992/voci-api/internal/infra"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {

	// CONFIG
	cfg, err := config.Load()
	if err != nil {
		panic("config: " + err.Error())
	}

	// LOGGER
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)

	zcore, err := zcfg.Build()
	if err != nil {
		panic("logger: " + err.Error())
	}
	defer zcore.Sync()
	zl := logger.NewZapLogger(zcore.Sugar())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// DATABASE
	db, err := infra.Open(ctx, cfg.DB)
	if err != nil {
		zl.Log(logger.LogEntry{
			Level:   "error",
			Message: "database unavailable",
			Fields: map[string]any{
				"driver": cfg.DB.Driver,
				"host":   cfg.DB.Host,
				"name":   cfg.DB.Name,
			},
			Error: err,
		})
		os.Exit(1)
	}
	defer db.Close()

	if cfg.DB.InitSchema {
		if err := infra.InitSchema(ctx, db); err != nil {
			zl.Log(logger.LogEntry{
				Level:   "error",
				Message: "schema bootstrap failed",
				Error:   err,
			})
			db.Close()
			os.Exit(1)
		}
	}

	// METRICS
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db.DB, cfg.DB.Name),
	)
	metrics := delivery.NewMetrics(registry)

	// REPOSITORIES
	mediaTypeRepo := infra.NewMediaTypeRepo(db)
	authorRepo := infra.NewAuthorRepo(db)
	contentRepo := infra.NewContentRepo(db)

	// SERVICES
	mediaTypeService := domain.NewMediaTypeService(mediaTypeRepo)
	authorService := domain.NewAuthorService(authorRepo)
	contentService := domain.NewContentService(contentRepo, mediaTypeRepo, authorRepo)

	// HANDLERS
	handlers := delivery.Handlers{
		MediaTypes: delivery.NewMediaTypeHandler(mediaTypeService, zl),
		Authors:    delivery.NewAuthorHandler(authorService, zl),
		Contents:   delivery.NewContentHandler(contentService, zl),
	}

	// ROUTER
	r := delivery.NewHTTPHandler(handlers, delivery.Options{
		BasePath:    cfg.BasePath,
		CORSOrigins: cfg.CORSOrigins,
		DB:          db,
		Metrics:     metrics,
		Log:         zl,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Log(logger.LogEntry{
			Level:   "info",
			Message: "server started",
			Fields: map[string]any{
				"port":      cfg.Port,
				"base_path": cfg.BasePath,
				"driver":    cfg.DB.Driver,
			},
		})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Log(logger.LogEntry{
				Level:   "error",
				Message: "server crashed",
				Error:   err,
			})
		}
		return
	case <-ctx.Done():
	}

	// SHUTDOWN
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Log(logger.LogEntry{
			Level:   "error",
			Message: "graceful shutdown failed",
			Error:   err,
		})
		return
	}

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "server stopped",
	})
}
