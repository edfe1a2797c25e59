package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jusunglee/hangulnum/internal/db"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Timestamps are stored as fixed-width UTC text so string order is time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Repository implements db.Repository using SQLite
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

// New opens (creating if needed) a SQLite history database.
func New(ctx context.Context, dbPath string) (*Repository, error) {
	// Strip sqlite:// prefix if present
	dbPath = strings.TrimPrefix(dbPath, "sqlite://")

	sqliteDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening SQLite database: %w", err)
	}

	// Every connection to :memory: is a separate database.
	if dbPath == ":memory:" {
		sqliteDB.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := sqliteDB.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		sqliteDB.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := sqliteDB.ExecContext(ctx, schemaSQL); err != nil {
		sqliteDB.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Repository{db: sqliteDB, now: time.Now}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) RecordConversion(ctx context.Context, arg db.RecordConversionParams) (db.Conversion, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO conversions (direction, surface, input, output, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, string(arg.Direction), arg.Surface, arg.Input, arg.Output, r.now().UTC().Format(timeLayout))
	if err != nil {
		return db.Conversion{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return db.Conversion{}, err
	}

	return r.GetConversion(ctx, id)
}

func (r *Repository) GetConversion(ctx context.Context, id int64) (db.Conversion, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, direction, surface, input, output, created_at
		FROM conversions
		WHERE id = ?
	`, id)

	c, err := scanConversion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return db.Conversion{}, db.ConversionNotFound(id)
	}
	return c, err
}

func (r *Repository) ListRecentConversions(ctx context.Context, limit int32) ([]db.Conversion, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, direction, surface, input, output, created_at
		FROM conversions
		ORDER BY id DESC
		LIMIT ?
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
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM conversions`).Scan(&count)
	return count, err
}

func (r *Repository) DeleteConversionsBefore(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM conversions WHERE created_at < ?
	`, before.UTC().Format(timeLayout))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanConversion(s scanner) (db.Conversion, error) {
	var (
		c         db.Conversion
		direction string
		createdAt string
	)
	if err := s.Scan(&c.ID, &direction, &c.Surface, &c.Input, &c.Output, &createdAt); err != nil {
		return db.Conversion{}, err
	}
	c.Direction = db.Direction(direction)

	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return db.Conversion{}, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	c.CreatedAt = t
	return c, nil
}
