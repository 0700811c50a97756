package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/codimuz/Nova-pasta-sub000/internal/fixedwidth"
	"github.com/codimuz/Nova-pasta-sub000/internal/product"
	"github.com/codimuz/Nova-pasta-sub000/internal/progress"
)

// RepositoryPort abstracts repository usage for the service.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	InsertRun(ctx context.Context, run Run) error
	ListRuns(ctx context.Context, limit int) ([]Run, error)
}

// CatalogCachePort invalidates product listings after a batch lands.
type CatalogCachePort interface {
	Bump(ctx context.Context) error
}

// MetricsPort records pipeline counters.
type MetricsPort interface {
	ObserveImportRun(status string, inserted, updated, rejected int)
}

// Service runs the import pipeline.
type Service struct {
	repo    RepositoryPort
	cache   CatalogCachePort
	metrics MetricsPort
	logger  *slog.Logger
	now     func() time.Time
}

// NewService builds Service. cache and metrics may be nil.
func NewService(repo RepositoryPort, cache CatalogCachePort, metrics MetricsPort, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, metrics: metrics, logger: logger, now: time.Now}
}

// Progress is reported at least this often, and always on the final line.
const progressEvery = 10

var lineSplitter = regexp.MustCompile("\r\n|\n|\r")

// Import decodes, validates and upserts every line of the source file inside
// one transaction. Malformed lines are collected into the result and never
// abort the batch. Cancellation stops the loop at the next line boundary and
// commits the writes applied so far; an unexpected storage error rolls the
// whole batch back and is returned as a failed run.
func (s *Service) Import(ctx context.Context, input Input) (Result, error) {
	startedAt := s.now().UTC()
	lines := lineSplitter.Split(input.Content, -1)

	total := 0
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			total++
		}
	}
	input.OnProgress.Notify(progress.Update{
		Status:      string(StatusReading),
		TotalLines:  total,
		CurrentFile: input.FileName,
	})

	result := Result{RunID: uuid.New()}
	processed := 0

	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		seen := make(map[string]struct{}, total)
		for i, line := range lines {
			if input.Cancel.Cancelled() {
				result.Cancelled = true
				break
			}
			if strings.TrimSpace(line) == "" {
				continue
			}

			rec, err := fixedwidth.DecodeProductLine(line)
			if err != nil {
				result.Errors = append(result.Errors, LineError{Line: i + 1, Content: line, Reason: err.Error()})
				processed++
				s.report(input, processed, total)
				continue
			}
			if err := ValidateLine(rec, seen); err != nil {
				result.Errors = append(result.Errors, LineError{Line: i + 1, Content: line, Reason: err.Error()})
				processed++
				s.report(input, processed, total)
				continue
			}
			seen[rec.Code] = struct{}{}

			// Price was validated above; a parse failure here is a bug.
			price, err := fixedwidth.ParsePrice(rec.Price)
			if err != nil {
				return fmt.Errorf("importer: parse validated price: %w", err)
			}
			unit := product.UnitTypeForName(rec.Name)

			_, err = tx.FindActiveProductByCode(ctx, rec.Code)
			switch {
			case err == nil:
				if err := tx.UpdateProductCatalogFields(ctx, rec.Code, rec.Name, price, unit); err != nil {
					return err
				}
				result.Updated++
			case errors.Is(err, product.ErrNotFound):
				p := product.Product{Code: rec.Code, Name: rec.Name, RegularPrice: price, UnitType: unit}
				if err := tx.InsertProduct(ctx, p); err != nil {
					return err
				}
				result.Inserted++
			default:
				return err
			}

			processed++
			s.report(input, processed, total)
		}
		return nil
	})

	finishedAt := s.now().UTC()

	if err != nil {
		run := Run{
			ID:         result.RunID,
			FileName:   input.FileName,
			Status:     StatusFailed,
			StartedAt:  startedAt,
			FinishedAt: finishedAt,
		}
		if insErr := s.repo.InsertRun(ctx, run); insErr != nil {
			s.logger.Warn("record failed import run", slog.Any("error", insErr))
		}
		if s.metrics != nil {
			s.metrics.ObserveImportRun(string(StatusFailed), 0, 0, 0)
		}
		input.OnProgress.Notify(progress.Update{
			Status:      string(StatusFailed),
			CurrentFile: input.FileName,
			HasError:    true,
		})
		return Result{RunID: result.RunID}, fmt.Errorf("importer: batch failed: %w", err)
	}

	status := StatusCompleted
	if result.Cancelled {
		status = StatusCancelled
	}

	if result.Inserted+result.Updated > 0 && s.cache != nil {
		if err := s.cache.Bump(ctx); err != nil {
			s.logger.Warn("catalog cache bump", slog.Any("error", err))
		}
	}

	run := Run{
		ID:         result.RunID,
		FileName:   input.FileName,
		Inserted:   result.Inserted,
		Updated:    result.Updated,
		ErrorCount: len(result.Errors),
		Status:     status,
		LineErrors: result.Errors,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
	}
	if err := s.repo.InsertRun(ctx, run); err != nil {
		s.logger.Warn("record import run", slog.Any("error", err))
	}
	if s.metrics != nil {
		s.metrics.ObserveImportRun(string(status), result.Inserted, result.Updated, len(result.Errors))
	}

	frac := 1.0
	if total > 0 {
		frac = float64(processed) / float64(total)
	}
	input.OnProgress.Notify(progress.Update{
		Status:         string(status),
		Progress:       frac,
		ProcessedLines: processed,
		TotalLines:     total,
		CurrentFile:    input.FileName,
	})

	s.logger.Info("import finished",
		slog.String("file", input.FileName),
		slog.String("status", string(status)),
		slog.Int("inserted", result.Inserted),
		slog.Int("updated", result.Updated),
		slog.Int("rejected", len(result.Errors)))

	return result, nil
}

// ListRuns returns recent import runs.
func (s *Service) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	return s.repo.ListRuns(ctx, limit)
}

func (s *Service) report(input Input, processed, total int) {
	if processed%progressEvery != 0 && processed != total {
		return
	}
	frac := 0.0
	if total > 0 {
		frac = float64(processed) / float64(total)
	}
	input.OnProgress.Notify(progress.Update{
		Status:         string(StatusProcessing),
		Progress:       frac,
		ProcessedLines: processed,
		TotalLines:     total,
		CurrentFile:    input.FileName,
	})
}
