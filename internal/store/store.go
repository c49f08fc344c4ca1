package store

import (
	"context"
	"fmt"
	"time"

	"sales-service/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// RowStore provides the current transaction snapshot. Callers must treat
// the returned slice as read-only.
type RowStore interface {
	Rows(ctx context.Context) ([]models.Transaction, error)
}

// Counter is implemented by stores that can count rows without loading them
type Counter interface {
	Count(ctx context.Context) (int, error)
}

type Store struct {
	db *sqlx.DB
}

// NewStore creates a new database store
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}
