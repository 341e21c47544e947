package health

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// Checker defines interface for health checking
type Checker interface {
	Check(ctx context.Context) error
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Check(ctx context.Context) error { return f(ctx) }

// Status represents the health status
type Status struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
}

// CheckStatus represents individual check status
type CheckStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Healthy reports whether every check passed.
func (s Status) Healthy() bool { return s.Status == StatusHealthy }

// Run executes every checker with a per-check timeout.
func Run(ctx context.Context, checkers map[string]Checker, timeout time.Duration, now time.Time) Status {
	st := Status{
		Status:    StatusHealthy,
		Timestamp: now,
		Checks:    make(map[string]CheckStatus, len(checkers)),
	}
	for name, checker := range checkers {
		cctx, cancel := context.WithTimeout(ctx, timeout)
		err := checker.Check(cctx)
		cancel()
		if err != nil {
			st.Status = StatusUnhealthy
			st.Checks[name] = CheckStatus{Status: StatusUnhealthy, Message: err.Error()}
			continue
		}
		st.Checks[name] = CheckStatus{Status: StatusHealthy}
	}
	return st
}

// Write prints one line per check, sorted by name.
func (s Status) Write(w io.Writer) {
	names := make([]string, 0, len(s.Checks))
	for name := range s.Checks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := s.Checks[name]
		if c.Message != "" {
			fmt.Fprintf(w, "%s: %s (%s)\n", name, c.Status, c.Message)
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", name, c.Status)
	}
}
