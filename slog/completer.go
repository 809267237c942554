package slog

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/eventscout"
)

// Ensure LoggingCompleter implements eventscout.Completer.
var _ eventscout.Completer = (*LoggingCompleter)(nil)

// LoggingCompleter wraps a Completer with logging of prompt and response sizes.
type LoggingCompleter struct {
	next   eventscout.Completer
	logger *slog.Logger
	model  string
}

// NewLoggingCompleter creates a new LoggingCompleter. model is only logged.
func NewLoggingCompleter(next eventscout.Completer, model string, logger *slog.Logger) *LoggingCompleter {
	return &LoggingCompleter{next: next, logger: logger, model: model}
}

// Complete delegates to the wrapped completer.
func (c *LoggingCompleter) Complete(ctx context.Context, req *eventscout.CompletionRequest) (text string, err error) {
	defer func(begin time.Time) {
		c.logger.Info("completion",
			"model", c.model,
			"system_chars", utf8.RuneCountInString(req.System),
			"user_chars", utf8.RuneCountInString(req.User),
			"response_bytes", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Complete(ctx, req)
}
