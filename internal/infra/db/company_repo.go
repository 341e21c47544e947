package db

import (
	"context"
	"database/sql"
	"fmt"

	domain "github.com/bryanwahyu/leadscope/internal/domain/companies"
	"github.com/bryanwahyu/leadscope/internal/validate"
)

// Opener connects to the database on first use.
type Opener func(ctx context.Context) (*sql.DB, error)

// CompanyRepository reads the dataset from one SQL table. It never writes.
type CompanyRepository struct {
	open      Opener
	db        *sql.DB
	table     string
	location  string
	isMissing func(error) bool
}

// NewCompanyRepository builds a read-only source over table. isMissing
// recognises the driver errors meaning the database or table does not exist.
func NewCompanyRepository(open Opener, table, location string, isMissing func(error) bool) (*CompanyRepository, error) {
	if err := validate.TableName(table); err != nil {
		return nil, err
	}
	if isMissing == nil {
		isMissing = func(error) bool { return false }
	}
	return &CompanyRepository{open: open, table: table, location: location, isMissing: isMissing}, nil
}

func (r *CompanyRepository) Location() string { return r.location }

func (r *CompanyRepository) conn(ctx context.Context) (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}
	db, err := r.open(ctx)
	if err != nil {
		if r.isMissing(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, r.location)
		}
		return nil, fmt.Errorf("connecting to %s: %w", r.location, err)
	}
	r.db = db
	return db, nil
}

// Load selects every row. Columns come from the table itself so a table
// lacking a dataset column is reported the same way a CSV header would be.
func (r *CompanyRepository) Load(ctx context.Context) (*domain.Dataset, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	// table is validated as a plain identifier in the constructor
	q := "SELECT * FROM " + r.table
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		if r.isMissing(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, r.location)
		}
		return nil, fmt.Errorf("querying %s: %w", r.table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}

	ds := &domain.Dataset{Columns: cols, Records: []domain.Company{}}
	vals := make([]sql.NullString, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		row := make(map[string]string, len(cols))
		for i, col := range cols {
			row[col] = vals[i].String
		}
		ds.Records = append(ds.Records, domain.FromRow(row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return ds, nil
}

// Check pings the database, connecting first if needed.
func (r *CompanyRepository) Check(ctx context.Context) error {
	db, err := r.conn(ctx)
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

// Close releases the connection pool, if one was opened.
func (r *CompanyRepository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}
