package briefing

import "errors"

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrNotConfigured indicates no AI provider credentials were supplied.
var ErrNotConfigured = errors.New("briefer not configured")
