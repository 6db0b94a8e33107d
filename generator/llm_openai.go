package generator

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/hellothatsmoa/AI-News/apperr"
)

// OpenAILLM implements LLMClient using the official openai-go SDK (chat
// completions). OpenRouter and other OpenAI-compatible providers are reached
// by pointing BaseURL at them.
type OpenAILLM struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

func NewOpenAILLM(cfg LLMSettings) *OpenAILLM {
	provider := cfg.Provider
	if provider == "" {
		provider = "openrouter"
	}
	return &OpenAILLM{
		Provider: provider,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
	}
}

// Complete sends one chat completion. The credential is checked here rather
// than at construction so the server can start unconfigured and report the
// problem per request.
func (o *OpenAILLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	if o.APIKey == "" {
		return "", &apperr.Config{Missing: "OPENROUTER_API_KEY"}
	}

	opts := []option.RequestOption{option.WithAPIKey(o.APIKey)}
	if o.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(o.BaseURL))
	}
	client := openai.NewClient(opts...)

	msgs := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(prompt.System),
	}
	for _, h := range prompt.History {
		switch h.Role {
		case "assistant":
			msgs = append(msgs, openai.ChatCompletionMessageParamOfAssistant(h.Content))
		default:
			msgs = append(msgs, openai.UserMessage(h.Content))
		}
	}
	msgs = append(msgs, openai.UserMessage(prompt.User))

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(o.Model),
		Messages: msgs,
	})
	if err != nil {
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			return "", &apperr.Provider{
				Provider:   o.Provider,
				StatusCode: apierr.StatusCode,
				Body:       apierr.RawJSON(),
			}
		}
		return "", &apperr.Provider{Provider: o.Provider, Message: err.Error()}
	}
	if len(resp.Choices) == 0 {
		return "", &apperr.Provider{
			Provider: o.Provider,
			Message:  o.Provider + " returned no choices",
		}
	}
	return resp.Choices[0].Message.Content, nil
}
