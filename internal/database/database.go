// Package database provides embedded DuckDB connection management for tdb.
package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/marcboeker/go-duckdb/v2" // DuckDB driver
)

// Handle wraps a connection to one database file. One command owns one
// Handle for its lifetime and closes it on every exit path; there is no
// shared ambient connection.
type Handle struct {
	DB   *sqlx.DB
	path string
}

// Open connects to the database file at path, creating parent directories
// and the file itself as needed. The embedded engine holds an exclusive
// lock on the file for the lifetime of the handle.
func Open(ctx context.Context, path string) (*Handle, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is empty")
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sqlx.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database %s: %w", path, err)
	}

	// One command issues one statement at a time; a single connection
	// keeps session-scoped state (temp objects, settings) coherent.
	db.SetMaxOpenConns(1)

	return &Handle{DB: db, path: path}, nil
}

// Path returns the database file path.
func (h *Handle) Path() string {
	return h.path
}

// SizeBytes returns the current on-disk size of the database file.
// A file that does not exist yet counts as zero bytes.
func (h *Handle) SizeBytes() int64 {
	return FileSize(h.path)
}

// Close closes the database connection.
func (h *Handle) Close() error {
	if h == nil || h.DB == nil {
		return nil
	}
	if err := h.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// FileSize returns the size of a file in bytes, or 0 if it does not exist.
func FileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
