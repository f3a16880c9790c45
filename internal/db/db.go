package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite connection backing the local activity log.
type DB struct {
	Conn *sql.DB
	path string
}

// New opens (or creates) the SQLite database at the given path, creating the
// parent directory if needed. WAL mode and a busy timeout keep the single
// writer responsive under concurrent page loads.
func New(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// Single connection avoids SQLite locking issues.
	conn.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	log.Printf("[db] activity database opened: %s", dbPath)
	return &DB{Conn: conn, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.Conn.Close()
}

// Ping verifies the database connection is alive.
func (d *DB) Ping() error {
	return d.Conn.Ping()
}
