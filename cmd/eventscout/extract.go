package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/eventscout"
	"github.com/fwojciec/eventscout/extract"
)

const separator = "============================================================"

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	source := c.URL
	if source == "" {
		source = c.File
		fmt.Fprintf(deps.Stdout, "Extracting event from file: %s\n", c.File)
	} else {
		fmt.Fprintf(deps.Stdout, "Extracting event from URL: %s\n", c.URL)
	}
	fmt.Fprintln(deps.Stdout, separator)

	run := &eventscout.Run{Source: source}
	err := c.extract(deps, run)
	if err != nil {
		run.Status = eventscout.RunFailed
		run.Error = errorMessage(err)
	} else {
		run.Status = eventscout.RunSucceeded
	}
	recordRun(deps, run)
	return err
}

func (c *ExtractCmd) extract(deps *Dependencies, run *eventscout.Run) error {
	corpus, err := deps.Store.LoadCorpus(deps.Ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Loaded %d existing tags and %d existing ids\n", len(corpus.Tags), len(corpus.IDs))

	var result *extract.Result
	if c.URL != "" {
		result, err = deps.Extractor.FromURL(deps.Ctx, c.URL, corpus)
	} else {
		var content []byte
		content, err = os.ReadFile(c.File)
		if err != nil {
			return eventscout.Errorf(eventscout.EINVALID, "failed to read file: %v", err)
		}
		result, err = deps.Extractor.FromFile(deps.Ctx, filepath.Base(c.File), content, corpus)
	}
	if err != nil {
		return err
	}

	rec := result.Record
	run.Title = rec.Title
	run.Category = rec.Category

	fmt.Fprintln(deps.Stdout, "\nExtraction succeeded")
	printWarnings(deps, result.Warnings)
	fmt.Fprintln(deps.Stdout, "\nGenerated YAML:")
	fmt.Fprintln(deps.Stdout, separator)
	fmt.Fprintln(deps.Stdout, result.Block)
	fmt.Fprintln(deps.Stdout, separator)

	path := deps.Store.PathFor(rec.Category)
	if !c.Yes && !confirm(deps, fmt.Sprintf("\nAppend to %s? (y/n): ", path)) {
		fmt.Fprintln(deps.Stdout, "Not saved")
		return nil
	}

	path, err = deps.Store.AppendRecord(deps.Ctx, rec)
	if err != nil {
		return err
	}
	run.File = path
	fmt.Fprintf(deps.Stdout, "Saved to %s\n", path)

	return nil
}

func printWarnings(deps *Dependencies, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(deps.Stdout, "\nWarnings:")
	for _, w := range warnings {
		fmt.Fprintf(deps.Stdout, "  - %s\n", w)
	}
}

// confirm prints prompt and reports whether the answer was y or Y.
func confirm(deps *Dependencies, prompt string) bool {
	fmt.Fprint(deps.Stdout, prompt)
	if deps.Stdin == nil {
		return false
	}
	answer, _ := bufio.NewReader(deps.Stdin).ReadString('\n')
	answer = strings.TrimSpace(answer)
	return answer == "y" || answer == "Y"
}

// recordRun stores run in the history database. Failures are logged only.
func recordRun(deps *Dependencies, run *eventscout.Run) {
	if deps.Runs == nil {
		return
	}
	if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
		deps.Logger.Warn("failed to record run", "source", run.Source, "err", err)
	}
}
