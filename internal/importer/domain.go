// Package importer ingests fixed-width product catalog files and upserts them
// into the store as one transactional batch.
package importer

import (
	"time"

	"github.com/google/uuid"

	"github.com/codimuz/Nova-pasta-sub000/internal/progress"
)

// Status is the terminal or in-flight state of an import run.
type Status string

const (
	StatusReading    Status = "READING"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
	StatusFailed     Status = "FAILED"
)

// LineError records one rejected input line. Rejected lines never abort the
// batch; they are collected and reported alongside the applied writes.
type LineError struct {
	Line    int    `json:"line"`
	Content string `json:"content"`
	Reason  string `json:"reason"`
}

// Result summarises one import invocation.
type Result struct {
	RunID     uuid.UUID   `json:"run_id"`
	Inserted  int         `json:"inserted"`
	Updated   int         `json:"updated"`
	Errors    []LineError `json:"errors"`
	Cancelled bool        `json:"cancelled"`
}

// Input carries the source file plus the optional progress/cancellation hooks.
type Input struct {
	FileName   string
	Content    string
	OnProgress progress.Func
	Cancel     *progress.Token
}

// Run is the persisted audit record of one import invocation.
type Run struct {
	ID         uuid.UUID   `json:"id"`
	FileName   string      `json:"file_name"`
	Inserted   int         `json:"inserted"`
	Updated    int         `json:"updated"`
	ErrorCount int         `json:"error_count"`
	Status     Status      `json:"status"`
	LineErrors []LineError `json:"line_errors,omitempty"`
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt time.Time   `json:"finished_at"`
}
