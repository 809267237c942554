package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/eventscout"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ eventscout.RunService = (*RunService)(nil)

// RunService implements eventscout.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun records an extraction attempt.
func (s *RunService) CreateRun(ctx context.Context, run *eventscout.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, source, title, category, file, status, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Source, run.Title, string(run.Category), run.File, string(run.Status), run.Error,
		run.CreatedAt.Format(time.RFC3339))

	return err
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter eventscout.RunFilter) ([]*eventscout.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source, title, category, file, status, error, created_at FROM runs WHERE 1=1")

	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}

	// rowid breaks ties between runs created within the same second.
	query.WriteString(" ORDER BY created_at DESC, rowid DESC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*eventscout.Run
	for rows.Next() {
		var run eventscout.Run
		var category, status, createdAt string

		if err := rows.Scan(&run.ID, &run.Source, &run.Title, &category, &run.File, &status, &run.Error, &createdAt); err != nil {
			return nil, err
		}

		run.Category = eventscout.Category(category)
		run.Status = eventscout.RunStatus(status)
		if run.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}
