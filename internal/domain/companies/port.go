package companies

import "context"

// Source port (where the dataset is read from)
type Source interface {
	// Load reads every record. A dataset that does not exist yields an
	// error matching ErrNotFound.
	Load(ctx context.Context) (*Dataset, error)
	// Location describes the dataset for messages, e.g. a file path.
	Location() string
}
