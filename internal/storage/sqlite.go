// Package storage provides the durable document stores backing the daemon:
// a sqlite database for the app profile and an afero-based file store for
// portable or test setups. Both satisfy focuslib.Store.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// SqliteStore keeps every document in a single-table sqlite database. Writes
// commit before Set returns, so a crash right after a mutation loses nothing.
type SqliteStore struct {
	db  *sql.DB
	hub changeHub
}

// OpenSqlite opens (creating if needed) the document database at path.
func OpenSqlite(path string) (*SqliteStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("error: cannot open document database: %w", err)
	}
	// modernc sqlite is serialized per connection; a single connection
	// avoids table-lock churn between writers.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS documents (
            key        TEXT PRIMARY KEY,
            value      BLOB NOT NULL,
            updated_at INTEGER NOT NULL DEFAULT (unixepoch())
        )
    `); err != nil {
		db.Close()
		return nil, fmt.Errorf("error: cannot create documents table: %w", err)
	}
	return &SqliteStore{db: db}, nil
}

// Get returns the document stored under key, or nil when absent.
func (s *SqliteStore) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM documents WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error: failed to read document %q: %w", key, err)
	}
	return value, nil
}

// Set writes the document under key, replacing any previous value, and
// notifies subscribers once the row is committed.
func (s *SqliteStore) Set(key string, value []byte) error {
	_, err := s.db.Exec(`
        INSERT INTO documents (key, value, updated_at) VALUES (?, ?, unixepoch())
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
    `, key, value)
	if err != nil {
		return fmt.Errorf("error: failed to write document %q: %w", key, err)
	}
	s.hub.notify(key, value)
	return nil
}

// OnChange subscribes to writes of key and returns an unsubscribe func.
func (s *SqliteStore) OnChange(key string, fn func(value []byte)) func() {
	return s.hub.on(key, fn)
}

// Keys lists every stored document key.
func (s *SqliteStore) Keys() ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM documents ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("error: failed to list documents: %w", err)
	}
	defer rows.Close()
	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Delete removes the document under key. Deleting an absent key is a no-op.
func (s *SqliteStore) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM documents WHERE key = ?`, key); err != nil {
		return fmt.Errorf("error: failed to delete document %q: %w", key, err)
	}
	return nil
}

func (s *SqliteStore) Close() error {
	return s.db.Close()
}
