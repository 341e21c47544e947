package briefing

import (
	"context"

	"github.com/bryanwahyu/leadscope/internal/domain/companies"
)

// Briefer writes pre-call talking points for a company.
type Briefer interface {
	Brief(ctx context.Context, c companies.Company) (string, error)
}
