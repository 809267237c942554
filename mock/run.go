package mock

import (
	"context"

	"github.com/fwojciec/eventscout"
)

var _ eventscout.RunService = (*RunService)(nil)

// RunService is a mock implementation of eventscout.RunService.
type RunService struct {
	CreateRunFn func(ctx context.Context, run *eventscout.Run) error
	FindRunsFn  func(ctx context.Context, filter eventscout.RunFilter) ([]*eventscout.Run, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *eventscout.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRuns(ctx context.Context, filter eventscout.RunFilter) ([]*eventscout.Run, error) {
	return s.FindRunsFn(ctx, filter)
}
