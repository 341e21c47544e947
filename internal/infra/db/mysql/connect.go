package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	driver "github.com/go-sql-driver/mysql"
)

const (
	errBadDB       = 1049 // ER_BAD_DB_ERROR
	errNoSuchTable = 1146 // ER_NO_SUCH_TABLE
)

func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	// test ping
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
	var me *driver.MySQLError
	if !errors.As(err, &me) {
		return false
	}
	return me.Number == errBadDB || me.Number == errNoSuchTable
}
