package yaml_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/eventscout"
	"github.com/fwojciec/eventscout/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const conferencesYAML = `- title: GopherCon
  description: The Go conference
  category: conference
  tags:
    - go
    - conference
  events:
    - year: 2024
      id: gophercon-2024
      link: https://gophercon.com
      timeline:
        - deadline: '2024-08-27T00:00:00'
          comment: 'activity start'
      timezone: America/Chicago
      date: Aug 27-29, 2024
      place: Chicago
    - year: 2025
      id: gophercon-2025
      link: https://gophercon.com
      timeline:
        - deadline: '2025-08-26T00:00:00'
          comment: 'activity start'
      timezone: America/New_York
      date: Aug 26-28, 2025
      place: New York
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestStore_LoadCorpus(t *testing.T) {
	t.Parallel()

	t.Run("collects sorted tags and ids", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "conferences.yml", conferencesYAML)
		writeFile(t, dir, "competitions.yml", yaml.FormatRecord(summerRecord()))

		corpus, err := yaml.NewStore(dir, nil).LoadCorpus(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"a", "conference", "go"}, corpus.Tags)
		assert.Equal(t, []string{"gophercon-2024", "gophercon-2025", "x-2025"}, corpus.IDs)
	})

	t.Run("skips corrupt files with a warning", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "conferences.yml", conferencesYAML)
		writeFile(t, dir, "activitys.yml", "- title: [unterminated\n  tags: {")

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		corpus, err := yaml.NewStore(dir, logger).LoadCorpus(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"conference", "go"}, corpus.Tags)
		assert.Equal(t, []string{"gophercon-2024", "gophercon-2025"}, corpus.IDs)
		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), "activitys.yml")
	})

	t.Run("keeps ids of well-formed records next to a mistyped one", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "competitions.yml", `- title: Alpha
  category: competition
  tags:
    - alpha
  events:
    - year: TBD
      id: a-2025
      timeline: {deadline: soon}
- title: Beta
  category: competition
  tags: beta
  events:
    - year: 2025
      id: b-2025
    - just text
- title: Gamma
  category: competition
  tags:
    - gamma
    - 2025
  events:
    - year: 2025
      id: c-2025
`)

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		corpus, err := yaml.NewStore(dir, logger).LoadCorpus(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"2025", "alpha", "gamma"}, corpus.Tags)
		assert.Equal(t, []string{"a-2025", "b-2025", "c-2025"}, corpus.IDs)
		assert.True(t, corpus.HasID("b-2025"))
		assert.Contains(t, buf.String(), "record 1: tags is not a list")
		assert.Contains(t, buf.String(), "record 1: event 1 is not a mapping")
	})

	t.Run("ignores empty and non-yml files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "conferences.yml", "")
		writeFile(t, dir, "notes.txt", conferencesYAML)

		corpus, err := yaml.NewStore(dir, nil).LoadCorpus(context.Background())

		require.NoError(t, err)
		assert.Empty(t, corpus.Tags)
		assert.Empty(t, corpus.IDs)
	})

	t.Run("returns not found for missing directory", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.NewStore(filepath.Join(t.TempDir(), "missing"), nil).LoadCorpus(context.Background())

		require.Error(t, err)
		assert.Equal(t, eventscout.ENOTFOUND, eventscout.ErrorCode(err))
	})
}

func TestStore_AppendRecord(t *testing.T) {
	t.Parallel()

	t.Run("appends to the category file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "competitions.yml", strings.ReplaceAll(conferencesYAML, "conference", "competition"))
		store := yaml.NewStore(dir, nil)

		path, err := store.AppendRecord(context.Background(), summerRecord())

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "competitions.yml"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), strings.ReplaceAll(conferencesYAML, "conference", "competition")))
		assert.True(t, strings.HasSuffix(string(data), "\n"+yaml.FormatRecord(summerRecord())+"\n"))

		records, err := yaml.ReadRecords(path)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "Open Source Summer", records[1].Title)
	})

	t.Run("appended ids are seen by the next load", func(t *testing.T) {
		t.Parallel()

		store := yaml.NewStore(t.TempDir(), nil)

		_, err := store.AppendRecord(context.Background(), summerRecord())
		require.NoError(t, err)

		corpus, err := store.LoadCorpus(context.Background())
		require.NoError(t, err)
		assert.True(t, corpus.HasID("x-2025"))
	})

	t.Run("rejects an invalid category", func(t *testing.T) {
		t.Parallel()

		rec := summerRecord()
		rec.Category = "webinar"

		_, err := yaml.NewStore(t.TempDir(), nil).AppendRecord(context.Background(), rec)

		require.Error(t, err)
		assert.Equal(t, eventscout.EINVALID, eventscout.ErrorCode(err))
	})
}

func TestStore_PathFor(t *testing.T) {
	t.Parallel()

	store := yaml.NewStore("/data", nil)

	assert.Equal(t, filepath.Join("/data", "conferences.yml"), store.PathFor(eventscout.CategoryConference))
	assert.Equal(t, filepath.Join("/data", "activitys.yml"), store.PathFor(eventscout.CategoryActivity))
}
