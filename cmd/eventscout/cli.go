package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fwojciec/eventscout"
	"github.com/fwojciec/eventscout/extract"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Store     eventscout.RecordStore
	Extractor *extract.Extractor
	Runs      eventscout.RunService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Enable debug logging"`
	DB      string `name:"db" env:"EVENTSCOUT_DB" help:"Run history database path (default: ~/.eventscout/history.db)"`

	Extract ExtractCmd `cmd:"" help:"Extract an event record from a URL or file"`
	History HistoryCmd `cmd:"" help:"Show recent extraction runs"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL      string        `name:"url" short:"u" xor:"source" required:"" help:"Web page to extract from"`
	File     string        `short:"f" xor:"source" required:"" help:"Text or image file to extract from"`
	DataDir  string        `short:"d" default:"./data" env:"EVENTSCOUT_DATA_DIR" help:"Directory holding the category YAML files"`
	Yes      bool          `short:"y" help:"Append without asking for confirmation"`
	Mode     string        `short:"m" enum:"text,article,readability,markdown" default:"text" help:"Page normalization: text, article, readability or markdown"`
	Render   bool          `help:"Render the page in a headless browser before extracting"`
	Provider string        `short:"p" default:"github" env:"AI_PROVIDER" help:"AI provider: github, dashscope, openai or gemini"`
	Model    string        `env:"AI_MODEL" help:"Model name (default depends on provider)"`
	Timeout  time.Duration `short:"t" default:"30s" help:"Page fetch timeout"`
}

// CheckInputs verifies the data directory and input file exist.
func (c *ExtractCmd) CheckInputs() error {
	if info, err := os.Stat(c.DataDir); err != nil || !info.IsDir() {
		return eventscout.Errorf(eventscout.ENOTFOUND, "data directory does not exist: %s", c.DataDir)
	}
	if c.File != "" {
		if _, err := os.Stat(c.File); err != nil {
			return eventscout.Errorf(eventscout.ENOTFOUND, "file does not exist: %s", c.File)
		}
	}
	return nil
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Limit  int  `short:"n" default:"20" help:"Number of runs to show"`
	Failed bool `help:"Only show failed runs"`
}
