package product

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `id, code, name, regular_price, club_price, unit_type, deleted_at, restored_at, created_at, updated_at`

// Repository persists products in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetByCode returns the active (non-deleted) product for a code.
func (r *Repository) GetByCode(ctx context.Context, code string) (Product, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE code = $1 AND deleted_at IS NULL`, code)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}

// List returns products matching the filters plus the total match count.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]Product, int, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM products WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if !filters.IncludeDeleted {
		query += ` AND deleted_at IS NULL`
		countQuery += ` AND deleted_at IS NULL`
	}
	if filters.Search != "" {
		argCount++
		clause := ` AND (name ILIKE $` + strconv.Itoa(argCount) + ` OR code ILIKE $` + strconv.Itoa(argCount) + `)`
		query += clause
		countQuery += clause
		args = append(args, "%"+filters.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY name ASC`
	if filters.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filters.Limit)

		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		offset := (filters.Page - 1) * filters.Limit
		if offset < 0 {
			offset = 0
		}
		args = append(args, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

// SoftDelete marks a product deleted. Soft-deleted products are invisible to
// the import upsert and the export unit-type lookup.
func (r *Repository) SoftDelete(ctx context.Context, code string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET deleted_at = $1, updated_at = $1 WHERE code = $2 AND deleted_at IS NULL`,
		time.Now().UTC(), code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Restore clears the soft-delete marker.
func (r *Repository) Restore(ctx context.Context, code string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET deleted_at = NULL, restored_at = $1, updated_at = $1 WHERE code = $2 AND deleted_at IS NOT NULL`,
		time.Now().UTC(), code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Code, &p.Name, &p.RegularPrice, &p.ClubPrice, &p.UnitType,
		&p.DeletedAt, &p.RestoredAt, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
