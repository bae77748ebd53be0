package statestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"eventcreator/internal/domain"
)

const createKVTable = `
	CREATE TABLE IF NOT EXISTS client_state (
		key        TEXT PRIMARY KEY,
		value      BLOB NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)
`

type sqliteStorage struct {
	DB *sql.DB
}

// OpenSQLite opens (creating if needed) a sqlite database at path and
// returns a StateStorage backed by it.
func OpenSQLite(ctx context.Context, path string) (domain.StateStorage, *sql.DB, error) {
	db, err := sql.Open("sqlite", "file:"+path)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite: %w", err)
	}
	st, err := NewSQLiteStorage(ctx, db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return st, db, nil
}

// NewSQLiteStorage returns a StateStorage using db, creating its table.
func NewSQLiteStorage(ctx context.Context, db *sql.DB) (domain.StateStorage, error) {
	if _, err := db.ExecContext(ctx, createKVTable); err != nil {
		return nil, fmt.Errorf("create client_state table: %w", err)
	}
	return &sqliteStorage{DB: db}, nil
}

func (s *sqliteStorage) Load(ctx context.Context, key string) ([]byte, error) {
	var raw []byte
	err := s.DB.QueryRowContext(ctx, `SELECT value FROM client_state WHERE key = ?`, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return raw, nil
}

func (s *sqliteStorage) Save(ctx context.Context, key string, data []byte) error {
	query := `
		INSERT INTO client_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := s.DB.ExecContext(ctx, query, key, data); err != nil {
		return fmt.Errorf("save client state: %w", err)
	}
	return nil
}
