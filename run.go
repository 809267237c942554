package eventscout

import (
	"context"
	"time"
)

// RunStatus is the outcome of an extraction attempt.
type RunStatus string

// RunStatus constants.
const (
	RunSucceeded RunStatus = "success"
	RunFailed    RunStatus = "failure"
)

// Run records one extraction attempt.
type Run struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Title     string    `json:"title"`
	Category  Category  `json:"category"`
	File      string    `json:"file"`
	Status    RunStatus `json:"status"`
	Error     string    `json:"error"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.Source == "" {
		return Errorf(EINVALID, "run source required")
	}
	if r.Status != RunSucceeded && r.Status != RunFailed {
		return Errorf(EINVALID, "run status must be %q or %q", RunSucceeded, RunFailed)
	}
	return nil
}

// RunService records extraction history.
type RunService interface {
	// CreateRun stores a new run, assigning its ID and CreatedAt.
	CreateRun(ctx context.Context, run *Run) error

	// FindRuns returns runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	Status *RunStatus `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
