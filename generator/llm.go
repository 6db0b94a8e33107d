package generator

import "context"

// LLMClient abstracts the text-completion provider so tests can swap in a
// mock. Implementations surface upstream failures as apperr values.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings configures a concrete LLMClient. Provider names the upstream
// in error envelopes; BaseURL points the OpenAI-compatible client at it.
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}
