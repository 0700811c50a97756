package importer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/codimuz/Nova-pasta-sub000/internal/platform/db"
	"github.com/codimuz/Nova-pasta-sub000/internal/product"
)

// Repository persists import batches in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// TxRepository exposes the per-line catalog operations inside one batch
// transaction.
type TxRepository interface {
	FindActiveProductByCode(ctx context.Context, code string) (product.Product, error)
	InsertProduct(ctx context.Context, p product.Product) error
	UpdateProductCatalogFields(ctx context.Context, code, name string, price float64, unit product.UnitType) error
}

type txRepo struct {
	tx pgx.Tx
}

// WithTx executes the callback inside a repeatable-read transaction. The
// import batch commits or rolls back as a whole; the pipeline never manages
// partial persistence itself.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepo{tx: tx})
	})
}

func (r *txRepo) FindActiveProductByCode(ctx context.Context, code string) (product.Product, error) {
	var p product.Product
	err := r.tx.QueryRow(ctx,
		`SELECT id, code, name, regular_price, club_price, unit_type, deleted_at, restored_at, created_at, updated_at
		 FROM products WHERE code = $1 AND deleted_at IS NULL`, code).
		Scan(&p.ID, &p.Code, &p.Name, &p.RegularPrice, &p.ClubPrice, &p.UnitType,
			&p.DeletedAt, &p.RestoredAt, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return product.Product{}, product.ErrNotFound
	}
	return p, err
}

func (r *txRepo) InsertProduct(ctx context.Context, p product.Product) error {
	now := time.Now().UTC()
	_, err := r.tx.Exec(ctx,
		`INSERT INTO products (code, name, regular_price, club_price, unit_type, created_at, updated_at)
		 VALUES ($1, $2, $3, 0, $4, $5, $5)`,
		p.Code, p.Name, p.RegularPrice, p.UnitType, now)
	return err
}

func (r *txRepo) UpdateProductCatalogFields(ctx context.Context, code, name string, price float64, unit product.UnitType) error {
	_, err := r.tx.Exec(ctx,
		`UPDATE products SET name = $1, regular_price = $2, unit_type = $3, updated_at = $4
		 WHERE code = $5 AND deleted_at IS NULL`,
		name, price, unit, time.Now().UTC(), code)
	return err
}

// InsertRun records the outcome of an import invocation. Runs are written
// outside the batch transaction so failed batches stay visible in history.
func (r *Repository) InsertRun(ctx context.Context, run Run) error {
	lineErrors, err := json.Marshal(run.LineErrors)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO import_runs (id, file_name, inserted, updated, error_count, status, line_errors, started_at, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		run.ID, run.FileName, run.Inserted, run.Updated, run.ErrorCount, run.Status, lineErrors,
		run.StartedAt, run.FinishedAt)
	return err
}

// ListRuns returns recent import runs, newest first.
func (r *Repository) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx,
		`SELECT id, file_name, inserted, updated, error_count, status, line_errors, started_at, finished_at
		 FROM import_runs ORDER BY started_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var lineErrors []byte
		if err := rows.Scan(&run.ID, &run.FileName, &run.Inserted, &run.Updated, &run.ErrorCount,
			&run.Status, &lineErrors, &run.StartedAt, &run.FinishedAt); err != nil {
			return nil, err
		}
		if len(lineErrors) > 0 {
			if err := json.Unmarshal(lineErrors, &run.LineErrors); err != nil {
				return nil, err
			}
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
