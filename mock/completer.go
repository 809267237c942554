package mock

import (
	"context"

	"github.com/fwojciec/eventscout"
)

var _ eventscout.Completer = (*Completer)(nil)

// Completer is a mock implementation of eventscout.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, req *eventscout.CompletionRequest) (string, error)
}

func (c *Completer) Complete(ctx context.Context, req *eventscout.CompletionRequest) (string, error) {
	return c.CompleteFn(ctx, req)
}
