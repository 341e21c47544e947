package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

// Source kinds understood by the CLI.
const (
	SourceCSV      = "csv"
	SourceMinio    = "minio"
	SourceMySQL    = "mysql"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,63}(\.[A-Za-z_][A-Za-z0-9_]{0,63})?$`)

// SourceKind checks if the source kind is in the allowed list
func SourceKind(kind string) error {
	allowed := map[string]bool{
		SourceCSV:      true,
		SourceMinio:    true,
		SourceMySQL:    true,
		SourcePostgres: true,
		SourceSQLite:   true,
	}

	if !allowed[strings.ToLower(kind)] {
		return fmt.Errorf("invalid source: %s (allowed: csv, minio, mysql, postgres, sqlite)", kind)
	}
	return nil
}

// Format checks the output format.
func Format(format string) error {
	switch strings.ToLower(format) {
	case FormatText, FormatJSON:
		return nil
	}
	return fmt.Errorf("invalid format: %s (allowed: text, json)", format)
}

// TableName accepts a plain or schema-qualified SQL identifier. It is the
// only thing ever concatenated into a query.
func TableName(table string) error {
	if table == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	if !tableNamePattern.MatchString(table) {
		return fmt.Errorf("invalid table name %q (letters, digits, underscore; optional schema prefix)", table)
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// SearchTerm sanitizes a CLI search argument and rejects empty ones.
func SearchTerm(what, input string) (string, error) {
	term := SanitizeString(input)
	if term == "" {
		return "", fmt.Errorf("%s cannot be empty", what)
	}
	return term, nil
}
