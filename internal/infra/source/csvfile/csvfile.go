package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	domain "github.com/bryanwahyu/leadscope/internal/domain/companies"
)

const utf8BOM = "\ufeff"

// Source reads the dataset from a CSV file on local disk.
type Source struct {
	Path string
}

func NewSource(path string) *Source {
	return &Source{Path: path}
}

func (s *Source) Location() string { return s.Path }

// Load reads the whole file. A missing file yields domain.ErrNotFound.
func (s *Source) Load(ctx context.Context) (*domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, s.Path)
		}
		return nil, err
	}
	defer f.Close()

	ds, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Path, err)
	}
	return ds, nil
}

// Check verifies the file exists and can be opened.
func (s *Source) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, s.Path)
		}
		return err
	}
	return f.Close()
}

// Decode parses a CSV document whose first row is the header. Rows shorter
// than the header leave the remaining fields empty; extra fields are ignored.
func Decode(r io.Reader) (*domain.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &domain.Dataset{Records: []domain.Company{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		header[i] = strings.TrimSpace(h)
	}

	ds := &domain.Dataset{Columns: header, Records: []domain.Company{}}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(ds.Records)+1, err)
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		ds.Records = append(ds.Records, domain.FromRow(row))
	}
	return ds, nil
}
