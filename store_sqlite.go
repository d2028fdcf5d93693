package board

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Schema for the documents table. OpenSQLiteStore applies it; apply
// manually when wrapping an existing *sql.DB with NewSQLiteStore.
const Schema = `
CREATE TABLE IF NOT EXISTS documents (
	key TEXT PRIMARY KEY,
	data BLOB NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// SQLiteStore persists document blobs in a SQLite table. It uses the
// pure-Go modernc.org/sqlite driver, so no cgo is required.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (creating if needed) the database file at path
// and initializes the schema.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("board: open sqlite store: %w", err)
	}
	s := NewSQLiteStore(db)
	if err := s.Init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLiteStore wraps an existing database connection. The caller is
// responsible for the schema (see Schema) unless Init is called.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Init creates the documents table if it doesn't exist.
func (s *SQLiteStore) Init() error {
	if _, err := s.db.Exec(Schema); err != nil {
		return fmt.Errorf("board: init sqlite schema: %w", err)
	}
	return nil
}

// Load implements Store.
func (s *SQLiteStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("board: load %s: %w", key, err)
	}
	return data, true, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(ctx context.Context, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (key, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		key, data, time.Now().UnixMicro())
	if err != nil {
		return fmt.Errorf("board: save %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
