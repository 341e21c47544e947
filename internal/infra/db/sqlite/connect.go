package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"os"
	"strings"

	_ "modernc.org/sqlite"
)

const memory = ":memory:"

// Open opens an existing SQLite file read-only, or an in-memory database.
// A missing file is reported as fs.ErrNotExist instead of being created.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path
	if path != memory {
		if _, err := os.Stat(path); err != nil {
			return nil, err
		}
		dsn = "file:" + path + "?mode=ro"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// every in-memory connection would otherwise see its own empty database
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Opener returns a lazy connector for path.
func Opener(path string) func(ctx context.Context) (*sql.DB, error) {
	return func(ctx context.Context) (*sql.DB, error) { return Open(ctx, path) }
}

// IsMissing reports whether err means the file or table does not exist.
func IsMissing(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, fs.ErrNotExist) || strings.Contains(err.Error(), "no such table")
}
