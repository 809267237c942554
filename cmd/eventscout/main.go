package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/eventscout"
	"github.com/fwojciec/eventscout/extract"
	"github.com/fwojciec/eventscout/gemini"
	"github.com/fwojciec/eventscout/goquery"
	"github.com/fwojciec/eventscout/htmltomarkdown"
	eshttp "github.com/fwojciec/eventscout/http"
	"github.com/fwojciec/eventscout/openai"
	"github.com/fwojciec/eventscout/readability"
	"github.com/fwojciec/eventscout/rod"
	esslog "github.com/fwojciec/eventscout/slog"
	"github.com/fwojciec/eventscout/sqlite"
	"github.com/fwojciec/eventscout/trafilatura"
	"github.com/fwojciec/eventscout/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", errorMessage(err))
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path for run history. Set before calling Run().
	DBPath string

	// SQLite database used for run history.
	DB *sqlite.DB

	// Getenv reads provider credentials. Defaults to os.Getenv.
	Getenv func(string) string

	// Fetcher and Completer replace the network adapters when set, for
	// end-to-end testing.
	Fetcher   eventscout.Fetcher
	Completer eventscout.Completer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Getenv: os.Getenv,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("eventscout"),
		kong.Description("Extract conference, competition and activity records with an LLM"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'eventscout --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, cli.Verbose)
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	dbPath := m.DBPath
	if cli.DB != "" {
		dbPath = cli.DB
	}

	switch kongCtx.Command() {
	case "history":
		m.DB = sqlite.NewDB(dbPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintln(stderr, "Hint: Set EVENTSCOUT_DB to use a different database path")
			return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
		}
		defer m.Close()
		deps.Runs = sqlite.NewRunService(m.DB)

	case "extract":
		c := &cli.Extract
		if err := c.CheckInputs(); err != nil {
			return err
		}

		provider, err := eventscout.LookupProvider(c.Provider)
		if err != nil {
			return err
		}
		creds, err := provider.Resolve(m.Getenv, c.Model)
		if err != nil {
			return err
		}

		completer := m.Completer
		if completer == nil {
			if completer, err = newCompleter(ctx, provider, creds); err != nil {
				return err
			}
		}

		fetcher := m.Fetcher
		if fetcher == nil && c.URL != "" {
			if c.Render {
				f, err := rod.NewFetcher(rod.WithFetchTimeout(c.Timeout))
				if err != nil {
					fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
					return fmt.Errorf("failed to start browser: %w", err)
				}
				fetcher = f
			} else {
				fetcher = eshttp.NewFetcher(eshttp.WithTimeout(c.Timeout))
			}
			defer fetcher.Close()
		}

		deps.Store = esslog.NewLoggingStore(yaml.NewStore(c.DataDir, logger), logger)
		deps.Extractor = &extract.Extractor{
			Normalizer: newNormalizer(eventscout.NormalizeMode(c.Mode)),
			Files:      eventscout.NewFileRouter(),
			Completer:  esslog.NewLoggingCompleter(completer, creds.Model, logger),
			Formatter:  yaml.Formatter{},
			Logger:     logger,
		}
		if fetcher != nil {
			deps.Extractor.Fetcher = esslog.NewLoggingFetcher(fetcher, logger)
		}

		// History is best effort; extraction proceeds without it.
		m.DB = sqlite.NewDB(dbPath)
		if err := m.DB.Open(); err != nil {
			logger.Warn("run history unavailable", "path", dbPath, "err", err)
			m.DB = nil
		} else {
			defer m.Close()
			deps.Runs = sqlite.NewRunService(m.DB)
		}
	}

	return kongCtx.Run(deps)
}

// newLogger returns a text logger on w. Only warnings are shown unless
// verbose is set.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newCompleter returns the client for the provider's backend.
func newCompleter(ctx context.Context, provider eventscout.ProviderConfig, creds *eventscout.ProviderCredentials) (eventscout.Completer, error) {
	switch provider.Backend {
	case eventscout.BackendGemini:
		client, err := gemini.NewClient(ctx, creds)
		if err != nil {
			return nil, err
		}
		return gemini.NewCompleter(client, creds.Model), nil
	default:
		return openai.NewCompleter(creds), nil
	}
}

// newNormalizer returns the page normalizer for mode.
func newNormalizer(mode eventscout.NormalizeMode) eventscout.Normalizer {
	text := goquery.NewNormalizer()
	switch mode {
	case eventscout.NormalizeArticle:
		return &extract.ArticleNormalizer{Extractor: trafilatura.NewExtractor(), Text: text}
	case eventscout.NormalizeReadability:
		return &extract.ArticleNormalizer{Extractor: readability.NewExtractor(), Text: text}
	case eventscout.NormalizeMarkdown:
		return &extract.MarkdownNormalizer{
			Extractor: trafilatura.NewExtractor(),
			Converter: htmltomarkdown.NewConverter(),
			Text:      text,
		}
	default:
		return text
	}
}

// errorMessage returns the user-facing text of err.
func errorMessage(err error) string {
	if eventscout.ErrorCode(err) == eventscout.EINTERNAL {
		return err.Error()
	}
	return eventscout.ErrorMessage(err)
}

func defaultDBPath() string {
	if path := os.Getenv("EVENTSCOUT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "eventscout.db"
	}
	return filepath.Join(home, ".eventscout", "history.db")
}
