// Package gemini implements eventscout.Completer using Google Gemini.
package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/eventscout"
	"google.golang.org/genai"
)

// Ensure Completer implements eventscout.Completer at compile time.
var _ eventscout.Completer = (*Completer)(nil)

// Completer implements eventscout.Completer using Google Gemini.
type Completer struct {
	client *genai.Client
	model  string
}

// NewCompleter creates a new Completer for model.
func NewCompleter(client *genai.Client, model string) *Completer {
	return &Completer{client: client, model: model}
}

// NewClient creates a Gemini API client from resolved provider credentials.
func NewClient(ctx context.Context, creds *eventscout.ProviderCredentials) (*genai.Client, error) {
	config := &genai.ClientConfig{
		APIKey:  creds.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if creds.BaseURL != "" {
		config.HTTPOptions = genai.HTTPOptions{BaseURL: creds.BaseURL}
	}
	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, eventscout.Errorf(eventscout.ECONFIG, "failed to create Gemini client: %v", err)
	}
	return client, nil
}

// Complete asks the model for a JSON response to req.
func (c *Completer) Complete(ctx context.Context, req *eventscout.CompletionRequest) (string, error) {
	if req.User == "" {
		return "", eventscout.Errorf(eventscout.EINVALID, "user prompt required")
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: req.User}},
		}},
		BuildConfig(req.System),
	)
	if err != nil {
		return "", eventscout.Errorf(eventscout.ECOMPLETION, "gemini request failed: %v", err)
	}
	if result == nil || strings.TrimSpace(result.Text()) == "" {
		return "", eventscout.Errorf(eventscout.ECOMPLETION, "no response from model")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for an extraction call.
func BuildConfig(system string) *genai.GenerateContentConfig {
	temp := float32(0.1)
	config := &genai.GenerateContentConfig{
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}
	return config
}
