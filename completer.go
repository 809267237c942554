package eventscout

import "context"

// CompletionRequest is a single prompt for a language model.
type CompletionRequest struct {
	System string
	User   string
}

// Completer asks a language model for a JSON object.
type Completer interface {
	// Complete sends the request and returns the raw response text, which is
	// expected to hold a JSON object. Returns ECOMPLETION when the model call
	// fails or yields no content.
	Complete(ctx context.Context, req *CompletionRequest) (string, error)
}
