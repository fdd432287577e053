package internal

import (
	"database/sql"
	"fmt"
	"unicode/utf8"
)

// SQLiteStore is the StateStore backed by the SQLite state database
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore wraps an open database that already has the state schema
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// OpenSQLiteStore opens (or creates) the state database at path
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := OpenDatabase(path)
	if err != nil {
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// AppendHistory inserts a line and trims the table to the newest limit rows
func (s *SQLiteStore) AppendHistory(line string, limit int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("INSERT INTO history (line) VALUES (?)", line); err != nil {
		return fmt.Errorf("failed to insert history: %w", err)
	}
	if limit > 0 {
		_, err := tx.Exec(`DELETE FROM history WHERE seq NOT IN (
			SELECT seq FROM history ORDER BY seq DESC LIMIT ?)`, limit)
		if err != nil {
			return fmt.Errorf("failed to trim history: %w", err)
		}
	}
	return tx.Commit()
}

// History returns history lines oldest first
func (s *SQLiteStore) History() ([]string, error) {
	rows, err := s.db.Query("SELECT line FROM history ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// ClearHistory deletes every history row
func (s *SQLiteStore) ClearHistory() error {
	_, err := s.db.Exec("DELETE FROM history")
	return err
}

// Get reads one key
func (s *SQLiteStore) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query failed: %w", err)
	}
	return value, true, nil
}

// Put writes one key
func (s *SQLiteStore) Put(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

// Delete removes one key
func (s *SQLiteStore) Delete(key string) error {
	_, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key)
	return err
}

// Keys returns sorted keys starting with prefix
func (s *SQLiteStore) Keys(prefix string) ([]string, error) {
	rows, err := s.db.Query("SELECT key FROM kv WHERE substr(key, 1, ?) = ? ORDER BY key",
		utf8.RuneCountInString(prefix), prefix)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
