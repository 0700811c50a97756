package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/codimuz/Nova-pasta-sub000/internal/exporter"
)

// ExportService runs the export pipeline.
type ExportService interface {
	ExportPending(ctx context.Context) (exporter.Result, error)
}

// ExportPendingJob coordinates the scheduled export run.
type ExportPendingJob struct {
	Service ExportService
	Logger  *slog.Logger
	clock   func() time.Time
}

// NewExportPendingJob constructs the job handler.
func NewExportPendingJob(service ExportService, logger *slog.Logger) *ExportPendingJob {
	return &ExportPendingJob{
		Service: service,
		Logger:  logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle executes the export-pending job.
func (j *ExportPendingJob) Handle(ctx context.Context, task *asynq.Task) error {
	if j == nil || j.Service == nil {
		return errors.New("export pending: dependencies not configured")
	}
	var payload ExportPendingPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	start := j.now()
	result, err := j.Service.ExportPending(ctx)
	if err != nil {
		j.log().Error("export run failed", slog.String("trigger", payload.Trigger), slog.Any("error", err))
		return err
	}

	j.log().Info("export run finished",
		slog.String("trigger", payload.Trigger),
		slog.Int("exported", result.SuccessfulExports),
		slog.Int("failed", result.FailedExports),
		slog.Int("skipped", result.SkippedReasons),
		slog.Duration("duration", time.Since(start)))

	// Per-reason failures are isolated by design; the job itself succeeds so
	// the next scheduled run retries the leftover entries.
	return nil
}

func (j *ExportPendingJob) log() *slog.Logger {
	if j != nil && j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskExportPending))
	}
	return slog.Default().With(slog.String("job", TaskExportPending))
}

func (j *ExportPendingJob) now() time.Time {
	if j != nil && j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}

// WithClock overrides the internal clock for deterministic tests.
func (j *ExportPendingJob) WithClock(clock func() time.Time) {
	if j != nil && clock != nil {
		j.clock = clock
	}
}
