package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// CreateInMemoryDB creates an in-memory SQLite database with the state
// tables. It is closed when the test ends.
func CreateInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}
	// each connection to :memory: is its own database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	createStateTables(t, db)
	return db
}

func createStateTables(t *testing.T, db *sql.DB) {
	t.Helper()
	createTablesSQL := `
	CREATE TABLE IF NOT EXISTS history (
		seq  INTEGER PRIMARY KEY AUTOINCREMENT,
		line TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.Exec(createTablesSQL); err != nil {
		t.Fatalf("Failed to create state tables: %v", err)
	}
}
