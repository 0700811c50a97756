package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/codimuz/Nova-pasta-sub000/internal/app"
	"github.com/codimuz/Nova-pasta-sub000/internal/entry"
	"github.com/codimuz/Nova-pasta-sub000/internal/exporter"
	"github.com/codimuz/Nova-pasta-sub000/internal/importer"
	"github.com/codimuz/Nova-pasta-sub000/internal/observability"
	"github.com/codimuz/Nova-pasta-sub000/internal/platform/cache"
	"github.com/codimuz/Nova-pasta-sub000/internal/platform/db"
	"github.com/codimuz/Nova-pasta-sub000/internal/product"
	"github.com/codimuz/Nova-pasta-sub000/internal/reason"
	"github.com/codimuz/Nova-pasta-sub000/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		// The product cache degrades to direct repository reads.
		logger.Warn("redis unavailable, caching disabled", slog.Any("error", err))
		redisClient = nil
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	metrics := observability.NewMetrics()

	productRepo := product.NewRepository(pool)
	productCache := product.NewCache(redisClient, cfg.ProductCacheTTL)
	productService := product.NewService(productRepo, productCache, logger)
	productHandler := product.NewHandler(logger, productService)

	reasonRepo := reason.NewRepository(pool)
	if err := reasonRepo.Seed(ctx, reason.Defaults); err != nil {
		logger.Error("seed reasons", slog.Any("error", err))
		os.Exit(1)
	}
	reasonHandler := reason.NewHandler(logger, reasonRepo)

	entryRepo := entry.NewRepository(pool)
	entryService := entry.NewService(entryRepo, productService)
	entryHandler := entry.NewHandler(logger, entryService)

	importRepo := importer.NewRepository(pool)
	importService := importer.NewService(importRepo, productCache, metrics, logger)
	importHandler := importer.NewHandler(logger, importService, cfg.ImportMaxBytes)

	exportWriter := exporter.NewDirWriter(cfg.ExportDir)
	exportService := exporter.NewService(reasonRepo, entryRepo, productRepo, exportWriter, metrics, logger)

	var enqueuer exporter.Enqueuer
	if cfg.ExportAsync {
		client, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		if err != nil {
			logger.Error("init queue client", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := client.Close(); err != nil {
				logger.Warn("queue client close", slog.Any("error", err))
			}
		}()
		enqueuer = client
	}
	exportHandler := exporter.NewHandler(logger, exportService, enqueuer)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		ProductHandler: productHandler,
		ReasonHandler:  reasonHandler,
		EntryHandler:   entryHandler,
		ImportHandler:  importHandler,
		ExportHandler:  exportHandler,
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
