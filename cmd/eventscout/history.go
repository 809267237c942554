package main

import (
	"fmt"

	"github.com/fwojciec/eventscout"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := eventscout.RunFilter{Limit: c.Limit}
	if c.Failed {
		failed := eventscout.RunFailed
		filter.Status = &failed
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded yet. Use 'eventscout extract' to extract an event.")
		return nil
	}

	fmt.Fprintln(deps.Stdout, eventscout.FormatRuns(runs))
	return nil
}
