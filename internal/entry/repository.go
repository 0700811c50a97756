package entry

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists entries in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert stores a new entry and returns it with the assigned id.
func (r *Repository) Insert(ctx context.Context, e Entry) (Entry, error) {
	now := time.Now().UTC()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO entries (product_code, product_name, quantity, reason_id, entry_date, flushed, created_at)
		 VALUES ($1, $2, $3, $4, $5, FALSE, $6) RETURNING id`,
		e.ProductCode, e.ProductName, e.Quantity, e.ReasonID, e.EntryDate, now).Scan(&e.ID)
	if err != nil {
		return Entry{}, err
	}
	e.CreatedAt = now
	return e, nil
}

// List returns entries matching the filters, newest first.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]Entry, error) {
	query := `SELECT id, product_code, product_name, quantity, reason_id, entry_date, flushed, created_at
		FROM entries WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.ReasonID != 0 {
		argCount++
		query += ` AND reason_id = $` + strconv.Itoa(argCount)
		args = append(args, filters.ReasonID)
	}
	if filters.Flushed != nil {
		argCount++
		query += ` AND flushed = $` + strconv.Itoa(argCount)
		args = append(args, *filters.Flushed)
	}
	query += ` ORDER BY id DESC`
	if filters.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filters.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.ProductCode, &e.ProductName, &e.Quantity, &e.ReasonID,
			&e.EntryDate, &e.Flushed, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ListPendingByReason returns the non-flushed entries for one reason in
// insertion order, which fixes the group order of the export file.
func (r *Repository) ListPendingByReason(ctx context.Context, reasonID int64) ([]Entry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, product_code, product_name, quantity, reason_id, entry_date, flushed, created_at
		 FROM entries WHERE reason_id = $1 AND flushed = FALSE ORDER BY id`, reasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.ProductCode, &e.ProductName, &e.Quantity, &e.ReasonID,
			&e.EntryDate, &e.Flushed, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// MarkFlushed flips the flushed flag for a batch of entries in one statement,
// so a reason's batch is either fully marked or not at all.
func (r *Repository) MarkFlushed(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.pool.Exec(ctx, `UPDATE entries SET flushed = TRUE WHERE id = ANY($1)`, ids)
	return err
}
