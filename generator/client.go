package generator

import (
	"context"
	"strings"
)

// Client wraps the LLM with the two editorial operations the tools expose.
type Client struct {
	llm LLMClient
}

func NewClient(llm LLMClient) *Client {
	return &Client{llm: llm}
}

// SummarizeArticle asks the model for the structured summary of the given
// article text.
func (c *Client) SummarizeArticle(ctx context.Context, text string) (*Summary, error) {
	raw, err := c.llm.Complete(ctx, BuildSummaryPrompt(text))
	if err != nil {
		return nil, err
	}
	return ParseSummary(raw)
}

// Caption turns a one-line summary into a social caption. An empty model
// reply falls back to the summary itself.
func (c *Client) Caption(ctx context.Context, summary string) (string, error) {
	raw, err := c.llm.Complete(ctx, BuildCaptionPrompt(summary))
	if err != nil {
		return "", err
	}
	caption := strings.TrimSpace(raw)
	if caption == "" {
		return summary, nil
	}
	return caption, nil
}
