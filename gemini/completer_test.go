package gemini_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/eventscout"
	"github.com/fwojciec/eventscout/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleter_Complete_ReturnsErrorWhenUserPromptEmpty(t *testing.T) {
	t.Parallel()

	completer := gemini.NewCompleter(nil, "gemini-2.5-flash") // nil client ok for this test

	_, err := completer.Complete(context.Background(), &eventscout.CompletionRequest{System: "rules"})

	require.Error(t, err)
	assert.Equal(t, eventscout.EINVALID, eventscout.ErrorCode(err))
	assert.Contains(t, eventscout.ErrorMessage(err), "user prompt required")
}

func TestCompleter_Complete_ReturnsModelText(t *testing.T) {
	t.Parallel()

	var path string
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"title\":\"RustConf\"}"}]}}]}`)
	}))
	defer server.Close()

	client, err := gemini.NewClient(context.Background(), &eventscout.ProviderCredentials{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})
	require.NoError(t, err)

	text, err := gemini.NewCompleter(client, "gemini-2.5-flash").Complete(context.Background(), &eventscout.CompletionRequest{
		System: "system prompt",
		User:   "user prompt",
	})

	require.NoError(t, err)
	assert.Equal(t, `{"title":"RustConf"}`, text)
	assert.Contains(t, path, "models/gemini-2.5-flash:generateContent")
	assert.Contains(t, got, "systemInstruction")
	assert.Contains(t, got, "generationConfig")
}

func TestCompleter_Complete_ReturnsErrorForEmptyCandidates(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[]}`)
	}))
	defer server.Close()

	client, err := gemini.NewClient(context.Background(), &eventscout.ProviderCredentials{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})
	require.NoError(t, err)

	_, err = gemini.NewCompleter(client, "gemini-2.5-flash").Complete(context.Background(), &eventscout.CompletionRequest{User: "page"})

	require.Error(t, err)
	assert.Equal(t, eventscout.ECOMPLETION, eventscout.ErrorCode(err))
	assert.Equal(t, "no response from model", eventscout.ErrorMessage(err))
}

func TestBuildConfig_SetsSystemInstruction(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig("Extract events as JSON.")

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Equal(t, "Extract events as JSON.", config.SystemInstruction.Parts[0].Text)
}

func TestBuildConfig_OmitsEmptySystemInstruction(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig("")

	assert.Nil(t, config.SystemInstruction)
}

func TestBuildConfig_RequestsJSON(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig("rules")

	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.1, *config.Temperature, 0.001)
	assert.Equal(t, "application/json", config.ResponseMIMEType)
}
