package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
)

const (
	invalidCatalogName = "3D000"
	undefinedTable     = "42P01"
)

func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx2); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Opener returns a lazy connector for dsn.
func Opener(dsn string) func(ctx context.Context) (*sql.DB, error) {
	return func(ctx context.Context) (*sql.DB, error) { return Connect(ctx, dsn) }
}

// IsMissing reports whether err means the database or table does not exist.
func IsMissing(err error) bool {
	var pe *pq.Error
	if !errors.As(err, &pe) {
		return false
	}
	return pe.Code == invalidCatalogName || pe.Code == undefinedTable
}
