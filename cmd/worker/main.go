package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/codimuz/Nova-pasta-sub000/internal/app"
	"github.com/codimuz/Nova-pasta-sub000/internal/entry"
	"github.com/codimuz/Nova-pasta-sub000/internal/exporter"
	"github.com/codimuz/Nova-pasta-sub000/internal/observability"
	"github.com/codimuz/Nova-pasta-sub000/internal/platform/db"
	"github.com/codimuz/Nova-pasta-sub000/internal/product"
	"github.com/codimuz/Nova-pasta-sub000/internal/reason"
	"github.com/codimuz/Nova-pasta-sub000/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

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

	metrics := observability.NewMetrics()

	reasonRepo := reason.NewRepository(pool)
	entryRepo := entry.NewRepository(pool)
	productRepo := product.NewRepository(pool)
	exportWriter := exporter.NewDirWriter(cfg.ExportDir)
	exportService := exporter.NewService(reasonRepo, entryRepo, productRepo, exportWriter, metrics, logger)
	exportJob := jobs.NewExportPendingJob(exportService, logger)

	var cron []jobs.CronRegistration
	if cfg.ExportCron != "" {
		task, err := jobs.NewExportPendingTask(jobs.ExportPendingPayload{Trigger: "cron"})
		if err != nil {
			logger.Error("build export task", slog.Any("error", err))
			os.Exit(1)
		}
		cron = append(cron, jobs.CronRegistration{
			Spec:    cfg.ExportCron,
			Task:    task,
			Options: []asynq.Option{asynq.MaxRetry(3)},
		})
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskExportPending, Handler: exportJob.Handle},
		},
		Cron: cron,
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
