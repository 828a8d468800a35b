package anthropic

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/MikeSquared-Agency/mimic/internal/llm"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "claude-sonnet-4-20250514"

type Client struct {
	model       string
	temperature *float64
	http        *http.Client
	api         sdk.Client
}

// NewClient builds a Messages API client. Retries are disabled: a failed call
// fails the run.
func NewClient(apiKey, model string, opts ...llm.Option) *Client {
	o := llm.Apply("", opts...)
	if model == "" {
		model = DefaultModel
	}
	hc := llm.NewHTTPClient(o)

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(hc),
		option.WithMaxRetries(0),
	}
	if o.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(strings.TrimRight(o.BaseURL, "/")+"/"))
	}

	return &Client{
		model:       model,
		temperature: o.Temperature,
		http:        hc,
		api:         sdk.NewClient(reqOpts...),
	}
}

// Model returns the model name sent with every request.
func (c *Client) Model() string { return c.model }

// Close releases idle connections held by the underlying transport.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// Complete sends a message to the Anthropic API and returns the first text block.
func (c *Client) Complete(ctx context.Context, system string, messages []llm.Message, maxTokens int) (string, error) {
	params := sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: int64(maxTokens),
		Messages:  make([]sdk.MessageParam, 0, len(messages)),
	}
	if system != "" {
		params.System = []sdk.TextBlockParam{{Text: system}}
	}
	if c.temperature != nil {
		params.Temperature = sdk.Float(*c.temperature)
	}
	for _, m := range messages {
		block := sdk.NewTextBlock(m.Content)
		if m.Role == "assistant" {
			params.Messages = append(params.Messages, sdk.NewAssistantMessage(block))
		} else {
			params.Messages = append(params.Messages, sdk.NewUserMessage(block))
		}
	}

	msg, err := c.api.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("api call: %w", err)
	}

	for _, block := range msg.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("empty response content")
}
