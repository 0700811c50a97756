// Package jobs holds the background task types and the Asynq worker runtime.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskExportPending flushes pending loss entries into export files.
	TaskExportPending = "export:pending"
)

// ExportPendingPayload records what triggered the export run.
type ExportPendingPayload struct {
	Trigger string `json:"trigger"` // "api", "cron"
}

// NewExportPendingTask constructs an Asynq task for the export run.
func NewExportPendingTask(payload ExportPendingPayload) (*asynq.Task, error) {
	if payload.Trigger == "" {
		payload.Trigger = "api"
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskExportPending, data, asynq.Queue(QueueDefault)), nil
}
