package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jusunglee/hangulnum/internal/db"
)

//go:embed schema.sql
var schemaSQL string

const createIndexSQL = `CREATE INDEX IF NOT EXISTS idx_conversions_created_at ON conversions (created_at)`

const conversionColumns = `id, direction, surface, input, output, created_at`

// Repository implements db.Repository using PostgreSQL via pgx
type Repository struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and ensures the conversions table exists.
func New(ctx context.Context, databaseURL string) (*Repository, error) {
	pool, err := db.NewPool(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	for _, stmt := range []string{schemaSQL, createIndexSQL} {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			pool.Close()
			return nil, fmt.Errorf("initializing schema: %w", err)
		}
	}

	return &Repository{pool: pool}, nil
}

func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

// PoolStats exposes pgxpool statistics for the metrics exporter.
func (r *Repository) PoolStats() *pgxpool.Stat {
	return r.pool.Stat()
}

func (r *Repository) RecordConversion(ctx context.Context, arg db.RecordConversionParams) (db.Conversion, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO conversions (direction, surface, input, output)
		VALUES ($1, $2, $3, $4)
		RETURNING `+conversionColumns,
		string(arg.Direction), arg.Surface, arg.Input, arg.Output)
	return scanConversion(row)
}

func (r *Repository) GetConversion(ctx context.Context, id int64) (db.Conversion, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+conversionColumns+`
		FROM conversions
		WHERE id = $1
	`, id)
	c, err := scanConversion(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return db.Conversion{}, db.ConversionNotFound(id)
	}
	return c, err
}

func (r *Repository) ListRecentConversions(ctx context.Context, limit int32) ([]db.Conversion, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+conversionColumns+`
		FROM conversions
		ORDER BY id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conversions := []db.Conversion{}
	for rows.Next() {
		c, err := scanConversion(rows)
		if err != nil {
			return nil, err
		}
		conversions = append(conversions, c)
	}
	return conversions, rows.Err()
}

func (r *Repository) CountConversions(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM conversions`).Scan(&count)
	return count, err
}

func (r *Repository) DeleteConversionsBefore(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM conversions WHERE created_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanConversion(row pgx.Row) (db.Conversion, error) {
	var (
		c         db.Conversion
		direction string
	)
	if err := row.Scan(&c.ID, &direction, &c.Surface, &c.Input, &c.Output, &c.CreatedAt); err != nil {
		return db.Conversion{}, err
	}
	c.Direction = db.Direction(direction)
	return c, nil
}
