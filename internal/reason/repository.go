package reason

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns all reasons ordered by code.
func (r *Repository) List(ctx context.Context) ([]Reason, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, code, description FROM reasons ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var reasons []Reason
	for rows.Next() {
		var reason Reason
		if err := rows.Scan(&reason.ID, &reason.Code, &reason.Description); err != nil {
			return nil, err
		}
		reasons = append(reasons, reason)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reasons, nil
}

// Get returns one reason by id.
func (r *Repository) Get(ctx context.Context, id int64) (Reason, error) {
	var reason Reason
	err := r.pool.QueryRow(ctx,
		`SELECT id, code, description FROM reasons WHERE id = $1`, id).
		Scan(&reason.ID, &reason.Code, &reason.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return Reason{}, ErrNotFound
	}
	return reason, err
}

// Seed inserts the default reasons, ignoring ones already present.
func (r *Repository) Seed(ctx context.Context, reasons []Reason) error {
	for _, reason := range reasons {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO reasons (code, description) VALUES ($1, $2) ON CONFLICT (code) DO NOTHING`,
			reason.Code, reason.Description)
		if err != nil {
			return err
		}
	}
	return nil
}
