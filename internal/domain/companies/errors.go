package companies

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the dataset (file, object or table) does not exist.
var ErrNotFound = errors.New("dataset not found")

// ErrMissingColumn indicates the dataset header lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// MissingColumnError names the absent column.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMissingColumn, e.Column)
}

func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }

// RequireColumns checks that header contains every column in required.
func RequireColumns(header []string, required ...string) error {
	have := make(map[string]bool, len(header))
	for _, h := range header {
		have[h] = true
	}
	for _, col := range required {
		if !have[col] {
			return &MissingColumnError{Column: col}
		}
	}
	return nil
}
