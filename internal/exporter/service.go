package exporter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/codimuz/Nova-pasta-sub000/internal/entry"
	"github.com/codimuz/Nova-pasta-sub000/internal/fixedwidth"
	"github.com/codimuz/Nova-pasta-sub000/internal/product"
	"github.com/codimuz/Nova-pasta-sub000/internal/reason"
)

// ReasonPort lists the loss reasons to export.
type ReasonPort interface {
	List(ctx context.Context) ([]reason.Reason, error)
}

// EntryPort reads pending entries and flips their flushed flag.
type EntryPort interface {
	ListPendingByReason(ctx context.Context, reasonID int64) ([]entry.Entry, error)
	MarkFlushed(ctx context.Context, ids []int64) error
}

// CatalogPort resolves products for unit-type decisions.
type CatalogPort interface {
	GetByCode(ctx context.Context, code string) (product.Product, error)
}

// MetricsPort records export counters.
type MetricsPort interface {
	ObserveExportRun(exported, failed, skipped int)
}

// Service runs the export pipeline.
type Service struct {
	reasons ReasonPort
	entries EntryPort
	catalog CatalogPort
	writer  FileWriter
	metrics MetricsPort
	logger  *slog.Logger
	now     func() time.Time
}

// NewService builds Service. metrics may be nil.
func NewService(reasons ReasonPort, entries EntryPort, catalog CatalogPort, writer FileWriter, metrics MetricsPort, logger *slog.Logger) *Service {
	return &Service{
		reasons: reasons,
		entries: entries,
		catalog: catalog,
		writer:  writer,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// ExportPending writes one file per reason that has non-flushed entries.
// Reasons are processed independently: a failure in one is recorded and the
// next reason still runs. Entries are marked flushed only after their file is
// on disk, so a failed write leaves everything pending for the next run.
func (s *Service) ExportPending(ctx context.Context) (Result, error) {
	reasons, err := s.reasons.List(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("exporter: list reasons: %w", err)
	}

	result := Result{TotalReasons: len(reasons)}

	for _, r := range reasons {
		info, warnings, err := s.exportReason(ctx, r)
		result.Warnings = append(result.Warnings, warnings...)
		switch {
		case err != nil:
			result.FailedExports++
			result.Errors = append(result.Errors, ReasonError{ReasonCode: r.Code, Message: err.Error()})
			s.logger.Error("export reason failed",
				slog.String("reason", r.Code), slog.Any("error", err))
		case info == nil:
			result.SkippedReasons++
		default:
			result.SuccessfulExports++
			result.ExportedFiles = append(result.ExportedFiles, *info)
			s.logger.Info("export file written",
				slog.String("reason", r.Code),
				slog.String("path", info.Path),
				slog.Int("lines", info.Lines))
		}
	}

	if s.metrics != nil {
		s.metrics.ObserveExportRun(result.SuccessfulExports, result.FailedExports, result.SkippedReasons)
	}
	return result, nil
}

// exportReason handles one reason. A nil FileInfo with a nil error means the
// reason had nothing to export.
func (s *Service) exportReason(ctx context.Context, r reason.Reason) (*FileInfo, []string, error) {
	pending, err := s.entries.ListPendingByReason(ctx, r.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list pending entries: %w", err)
	}
	if len(pending) == 0 {
		return nil, nil, nil
	}

	groups := Consolidate(pending)

	var (
		lines    []string
		flushIDs []int64
		warnings []string
	)
	for _, g := range groups {
		p, err := s.catalog.GetByCode(ctx, g.ProductCode)
		if errors.Is(err, product.ErrNotFound) {
			// Keep the group's entries pending: a later catalog import can
			// make them exportable.
			warnings = append(warnings, fmt.Sprintf(
				"reason %s: product %s not in catalog; %d entries kept pending",
				r.Code, g.ProductCode, len(g.EntryIDs)))
			continue
		}
		if err != nil {
			return nil, warnings, fmt.Errorf("resolve product %s: %w", g.ProductCode, err)
		}
		wholeUnits := p.UnitType == product.UnitTypeUnit
		lines = append(lines, fixedwidth.EncodeInventoryLine(g.ProductCode, g.Quantity, wholeUnits))
		flushIDs = append(flushIDs, g.EntryIDs...)
	}

	if len(lines) == 0 {
		return nil, warnings, nil
	}

	name := fmt.Sprintf("motivo%s_%s.txt", r.Code, s.now().Format("20060102_150405"))
	path, err := s.writer.Write(name, strings.Join(lines, "\n")+"\n")
	if err != nil {
		return nil, warnings, err
	}

	if err := s.entries.MarkFlushed(ctx, flushIDs); err != nil {
		return nil, warnings, fmt.Errorf("mark entries flushed after writing %s: %w", path, err)
	}

	return &FileInfo{
		ReasonCode: r.Code,
		Path:       path,
		Lines:      len(lines),
		Entries:    len(flushIDs),
	}, warnings, nil
}
