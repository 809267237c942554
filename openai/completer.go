// Package openai implements eventscout.Completer for OpenAI-compatible chat
// completion endpoints (GitHub Models, DashScope, OpenAI).
package openai

import (
	"context"
	"errors"
	"strings"

	"github.com/fwojciec/eventscout"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// Temperature keeps extraction close to deterministic.
const Temperature = 0.1

// Ensure Completer implements eventscout.Completer at compile time.
var _ eventscout.Completer = (*Completer)(nil)

// Completer sends one chat completion request per call and asks for a JSON
// object response. The SDK's automatic retries are disabled.
type Completer struct {
	client openai.Client
	model  string
}

// NewCompleter creates a Completer from resolved provider credentials.
func NewCompleter(creds *eventscout.ProviderCredentials, opts ...option.RequestOption) *Completer {
	base := []option.RequestOption{
		option.WithAPIKey(creds.APIKey),
		option.WithMaxRetries(0),
	}
	if creds.BaseURL != "" {
		base = append(base, option.WithBaseURL(creds.BaseURL))
	}
	return &Completer{
		client: openai.NewClient(append(base, opts...)...),
		model:  creds.Model,
	}
}

// Complete returns the text of the first choice.
func (c *Completer) Complete(ctx context.Context, req *eventscout.CompletionRequest) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
		Temperature: openai.Float(Temperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", eventscout.Errorf(eventscout.ECOMPLETION, "model API error (HTTP %d): %s", apiErr.StatusCode, apiErr.Message)
		}
		return "", eventscout.Errorf(eventscout.ECOMPLETION, "model request failed: %v", err)
	}

	if len(completion.Choices) == 0 || strings.TrimSpace(completion.Choices[0].Message.Content) == "" {
		return "", eventscout.Errorf(eventscout.ECOMPLETION, "no response from model")
	}

	return completion.Choices[0].Message.Content, nil
}
