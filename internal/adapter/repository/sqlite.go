package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"resume-builder/internal/usecase"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS kv_store (
  key TEXT PRIMARY KEY,
  value BLOB NOT NULL,
  updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// SQLiteStore keeps values in a local sqlite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore ensures the kv_store table exists.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, fmt.Errorf("create kv_store: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `select value from kv_store where key=?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, usecase.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return value, nil
}

func (s *SQLiteStore) Save(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO kv_store (key, value, updated_at) values (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to upsert %s: %w", key, err)
	}
	return nil
}
