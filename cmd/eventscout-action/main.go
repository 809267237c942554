// Command eventscout-action extracts an event record in CI and reports the
// result as workflow outputs.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/eventscout"
	"github.com/fwojciec/eventscout/extract"
	"github.com/fwojciec/eventscout/gemini"
	"github.com/fwojciec/eventscout/goquery"
	eshttp "github.com/fwojciec/eventscout/http"
	"github.com/fwojciec/eventscout/openai"
	esslog "github.com/fwojciec/eventscout/slog"
	"github.com/fwojciec/eventscout/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Getenv reads credentials and GITHUB_OUTPUT. Defaults to os.Getenv.
	Getenv func(string) string

	// Fetcher and Completer replace the network adapters when set, for
	// end-to-end testing.
	Fetcher   eventscout.Fetcher
	Completer eventscout.Completer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Getenv: os.Getenv}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL      string `name:"url" short:"u" required:"" help:"Web page to extract from"`
	DataDir  string `short:"d" default:"./data" env:"EVENTSCOUT_DATA_DIR" help:"Directory holding the category YAML files"`
	NoSave   bool   `help:"Extract and validate without appending"`
	Provider string `short:"p" default:"github" env:"AI_PROVIDER" help:"AI provider: github, dashscope, openai or gemini"`
	Model    string `env:"AI_MODEL" help:"Model name (default depends on provider)"`
	Verbose  bool   `short:"v" help:"Enable debug logging"`
}

// Outputs are the workflow outputs of a successful run.
type Outputs struct {
	Title    string
	Category eventscout.Category
	File     string
}

// Run executes the CLI. Failures are reported as a workflow error
// annotation on stdout and returned.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("eventscout-action"),
		kong.Description("Extract an event record from a URL in a CI workflow"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		fmt.Fprintf(stdout, "::error::%s\n", err)
		return err
	}

	out, err := m.extract(ctx, cli, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stdout, "\n::error::%s\n", singleLine(errorMessage(err)))
		return err
	}

	fmt.Fprintf(stdout, "\n::set-output name=title::%s\n", singleLine(out.Title))
	fmt.Fprintf(stdout, "::set-output name=category::%s\n", out.Category)
	if out.File != "" {
		fmt.Fprintf(stdout, "::set-output name=file::%s\n", out.File)
	}

	if path := m.Getenv("GITHUB_OUTPUT"); path != "" {
		if err := writeOutputs(path, out); err != nil {
			fmt.Fprintf(stdout, "::error::failed to write outputs: %s\n", err)
			return err
		}
	}

	return nil
}

func (m *Main) extract(ctx context.Context, cli *CLI, stdout, stderr io.Writer) (*Outputs, error) {
	if info, err := os.Stat(cli.DataDir); err != nil || !info.IsDir() {
		return nil, eventscout.Errorf(eventscout.ENOTFOUND, "data directory does not exist: %s", cli.DataDir)
	}

	provider, err := eventscout.LookupProvider(cli.Provider)
	if err != nil {
		return nil, err
	}
	creds, err := provider.Resolve(m.Getenv, cli.Model)
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	completer := m.Completer
	if completer == nil {
		if completer, err = newCompleter(ctx, provider, creds); err != nil {
			return nil, err
		}
	}
	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = eshttp.NewFetcher()
	}
	defer fetcher.Close()

	store := esslog.NewLoggingStore(yaml.NewStore(cli.DataDir, logger), logger)
	x := &extract.Extractor{
		Fetcher:    esslog.NewLoggingFetcher(fetcher, logger),
		Normalizer: goquery.NewNormalizer(),
		Files:      eventscout.NewFileRouter(),
		Completer:  esslog.NewLoggingCompleter(completer, creds.Model, logger),
		Formatter:  yaml.Formatter{},
		Logger:     logger,
	}

	fmt.Fprintf(stdout, "Extracting event from URL: %s\n", cli.URL)

	corpus, err := store.LoadCorpus(ctx)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(stdout, "Loaded %d existing tags and %d existing ids\n", len(corpus.Tags), len(corpus.IDs))

	result, err := x.FromURL(ctx, cli.URL, corpus)
	if err != nil {
		return nil, err
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(stdout, "::warning::%s\n", w)
	}
	fmt.Fprintf(stdout, "\n%s\n", result.Block)

	out := &Outputs{Title: result.Record.Title, Category: result.Record.Category}
	if !cli.NoSave {
		if out.File, err = store.AppendRecord(ctx, result.Record); err != nil {
			return nil, err
		}
		fmt.Fprintf(stdout, "Saved to %s\n", out.File)
	}
	return out, nil
}

// writeOutputs appends key=value lines to the GITHUB_OUTPUT file.
func writeOutputs(path string, out *Outputs) error {
	var b strings.Builder
	fmt.Fprintf(&b, "title=%s\n", singleLine(out.Title))
	fmt.Fprintf(&b, "category=%s\n", out.Category)
	if out.File != "" {
		fmt.Fprintf(&b, "file=%s\n", out.File)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// singleLine keeps a value from breaking the key=value output format.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func newCompleter(ctx context.Context, provider eventscout.ProviderConfig, creds *eventscout.ProviderCredentials) (eventscout.Completer, error) {
	if provider.Backend == eventscout.BackendGemini {
		client, err := gemini.NewClient(ctx, creds)
		if err != nil {
			return nil, err
		}
		return gemini.NewCompleter(client, creds.Model), nil
	}
	return openai.NewCompleter(creds), nil
}

func errorMessage(err error) string {
	if eventscout.ErrorCode(err) == eventscout.EINTERNAL {
		return err.Error()
	}
	return eventscout.ErrorMessage(err)
}
