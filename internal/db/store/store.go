// Package store opens the conversion history backend named by a URL.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jusunglee/hangulnum/internal/db"
	"github.com/jusunglee/hangulnum/internal/db/postgres"
	"github.com/jusunglee/hangulnum/internal/db/sqlite"
)

// Open returns a repository for databaseURL. postgres:// and postgresql://
// select PostgreSQL; sqlite://, :memory: and bare file paths select SQLite.
// An empty URL returns a nil repository, meaning history is disabled.
func Open(ctx context.Context, databaseURL string) (db.Repository, error) {
	switch {
	case databaseURL == "":
		return nil, nil
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		repo, err := postgres.New(ctx, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("creating PostgreSQL connection: %w", err)
		}
		return repo, nil
	case strings.Contains(databaseURL, "://") && !strings.HasPrefix(databaseURL, "sqlite://"):
		return nil, fmt.Errorf("unsupported database URL scheme: %q", databaseURL)
	default:
		repo, err := sqlite.New(ctx, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("creating SQLite database: %w", err)
		}
		return repo, nil
	}
}
