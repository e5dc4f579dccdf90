// Package sqlite opens the task database through the pure Go modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/felixgeelhaar/optiflow/internal/shared/infrastructure/security"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// pragmas run on every connection. busy_timeout waits on a locked file
// instead of failing at once.
var pragmas = []string{
	"foreign_keys(1)",
	"busy_timeout(5000)",
	"synchronous(NORMAL)",
}

// Open opens the database at path. A file path is cleaned and its directory
// created. The pool holds one connection: SQLite allows a single writer and an
// in-memory database lives only as long as its connection.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		return nil, errors.New("sqlite path is empty")
	}

	if path != MemoryPath {
		clean, err := security.CleanPath(path)
		if err != nil {
			return nil, fmt.Errorf("sqlite path: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(clean), 0o750); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
		path = clean
	}

	db, err := sql.Open("sqlite", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

// DSN appends the connection pragmas to path. File databases also get WAL
// journaling.
func DSN(path string) string {
	params := make([]string, 0, len(pragmas)+1)
	if path != MemoryPath {
		params = append(params, "_pragma=journal_mode(WAL)")
	}
	for _, p := range pragmas {
		params = append(params, "_pragma="+p)
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + strings.Join(params, "&")
}
