package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql
var embedded embed.FS

// A provider keeps dialect and file system per call instead of goose's
// package globals, so tests can migrate several databases at once.
func sqliteProvider(db *sql.DB) (*goose.Provider, error) {
	fsys, err := fs.Sub(embedded, "sqlite")
	if err != nil {
		return nil, err
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("goose provider: %w", err)
	}
	return provider, nil
}

// RunSQLiteMigrations brings the task schema up to date and returns the
// versions it applied. An up-to-date database yields none.
func RunSQLiteMigrations(ctx context.Context, db *sql.DB) ([]int64, error) {
	provider, err := sqliteProvider(db)
	if err != nil {
		return nil, err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	applied := make([]int64, 0, len(results))
	for _, r := range results {
		applied = append(applied, r.Source.Version)
	}
	return applied, nil
}

// SQLiteVersion reports the schema version recorded in db.
func SQLiteVersion(ctx context.Context, db *sql.DB) (int64, error) {
	provider, err := sqliteProvider(db)
	if err != nil {
		return 0, err
	}
	return provider.GetDBVersion(ctx)
}
