package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/eventscout"
	main "github.com/fwojciec/eventscout/cmd/eventscout"
	"github.com/fwojciec/eventscout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recordJSON = `{
  "title": "RustConf",
  "description": "The official Rust conference",
  "category": "conference",
  "tags": ["rust", "systems"],
  "events": [{
    "year": 2025,
    "id": "rustconf-2025",
    "link": "https://rustconf.com",
    "timeline": [
      {"deadline": "2025-09-02T09:00:00", "comment": "Conference starts"},
      {"deadline": "2025-09-05T18:00:00", "comment": "Conference ends"}
    ],
    "timezone": "America/Los_Angeles",
    "date": "September 2-5, 2025",
    "place": "Seattle, WA"
  }]
}`

// newTestMain returns a Main with fake network adapters and credentials.
func newTestMain(t *testing.T) *main.Main {
	t.Helper()
	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "history.db")
	m.Getenv = func(key string) string {
		if key == "GITHUB_TOKEN" {
			return "test-token"
		}
		return ""
	}
	m.Fetcher = &mock.Fetcher{
		FetchFn: func(context.Context, string) (string, error) {
			return "<html><body><h1>RustConf 2025</h1><p>Seattle, September 2-5</p></body></html>", nil
		},
		CloseFn: func() error { return nil },
	}
	m.Completer = &mock.Completer{
		CompleteFn: func(context.Context, *eventscout.CompletionRequest) (string, error) {
			return recordJSON, nil
		},
	}
	return m
}

func TestRun_HelpFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"--help flag", []string{"--help"}},
		{"-h flag", []string{"-h"}},
		{"help command", []string{"help"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newTestMain(t)
			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			err := m.Run(context.Background(), tt.args, nil, stdout, stderr)

			require.NoError(t, err)
			assert.Contains(t, stdout.String(), "Usage: eventscout")
			assert.Contains(t, stdout.String(), "extract")
			assert.Contains(t, stdout.String(), "history")
			assert.Empty(t, stderr.String())
		})
	}
}

func TestRun_NoArgs(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	stdout := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{}, nil, stdout, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, stdout.String(), "Usage: eventscout")
}

func TestRun_Extract(t *testing.T) {
	t.Parallel()

	t.Run("rejects missing data directory", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		missing := filepath.Join(t.TempDir(), "nope")

		err := m.Run(context.Background(), []string{"extract", "--url", "https://rustconf.com", "--data-dir", missing}, nil, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Equal(t, eventscout.ENOTFOUND, eventscout.ErrorCode(err))
		assert.Equal(t, "data directory does not exist: "+missing, eventscout.ErrorMessage(err))
	})

	t.Run("rejects missing input file", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		dir := t.TempDir()
		missing := filepath.Join(dir, "poster.png")

		err := m.Run(context.Background(), []string{"extract", "--file", missing, "--data-dir", dir}, nil, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Equal(t, "file does not exist: "+missing, eventscout.ErrorMessage(err))
	})

	t.Run("requires url or file", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)

		err := m.Run(context.Background(), []string{"extract", "--data-dir", t.TempDir()}, nil, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
	})

	t.Run("rejects url and file together", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		dir := t.TempDir()

		err := m.Run(context.Background(), []string{"extract", "--url", "https://rustconf.com", "--file", "x.txt", "--data-dir", dir}, nil, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
	})

	t.Run("reports missing credential before fetching", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		m.Getenv = func(string) string { return "" }
		m.Fetcher = &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				t.Fatal("fetch should not be called")
				return "", nil
			},
			CloseFn: func() error { return nil },
		}

		err := m.Run(context.Background(), []string{"extract", "--url", "https://rustconf.com", "--data-dir", t.TempDir(), "--provider", "github"}, nil, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Equal(t, eventscout.ECONFIG, eventscout.ErrorCode(err))
		assert.Equal(t, "GitHub Models API key not configured. Please set GITHUB_TOKEN environment variable.", eventscout.ErrorMessage(err))
	})

	t.Run("rejects unknown provider", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)

		err := m.Run(context.Background(), []string{"extract", "--url", "https://rustconf.com", "--data-dir", t.TempDir(), "--provider", "acme"}, nil, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Equal(t, eventscout.EINVALID, eventscout.ErrorCode(err))
	})

	t.Run("extracts and appends with --yes", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		dir := t.TempDir()
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"extract", "--url", "https://rustconf.com", "--data-dir", dir, "--yes", "--provider", "github"}, nil, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		data, err := os.ReadFile(filepath.Join(dir, "conferences.yml"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "\n- title: RustConf\n"))
		assert.Contains(t, string(data), "      id: rustconf-2025\n")
		assert.Contains(t, stdout.String(), "Loaded 0 existing tags and 0 existing ids")
		assert.Contains(t, stdout.String(), "Saved to "+filepath.Join(dir, "conferences.yml"))
	})

	t.Run("asks before appending", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		dir := t.TempDir()
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"extract", "--url", "https://rustconf.com", "--data-dir", dir, "--provider", "github"}, strings.NewReader("n\n"), stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Append to "+filepath.Join(dir, "conferences.yml")+"? (y/n): ")
		assert.NoFileExists(t, filepath.Join(dir, "conferences.yml"))
	})

	t.Run("records runs in history", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		dir := t.TempDir()
		args := []string{"extract", "--url", "https://rustconf.com", "--data-dir", dir, "--yes", "--provider", "github", "--db", m.DBPath}
		require.NoError(t, m.Run(context.Background(), args, nil, &bytes.Buffer{}, &bytes.Buffer{}))

		// Second run fails on the id appended by the first.
		err := m.Run(context.Background(), args, nil, &bytes.Buffer{}, &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, eventscout.ErrorMessage(err), "Duplicate ID 'rustconf-2025'")

		stdout := &bytes.Buffer{}
		err = newTestMain(t).Run(context.Background(), []string{"history", "--db", m.DBPath}, nil, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], "failure")
		assert.Contains(t, lines[1], "success")
		assert.Contains(t, lines[1], "RustConf")
	})
}

func TestRun_HistoryCreatesDatabaseDirectory(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), ".eventscout", "history.db")
	stdout := &bytes.Buffer{}

	err := newTestMain(t).Run(context.Background(), []string{"history", "--db", dbPath}, nil, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.FileExists(t, dbPath)
	assert.Contains(t, stdout.String(), "No runs recorded yet")
}
