// Package openai is a Chat Completions client built on the official SDK.
package openai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/MikeSquared-Agency/mimic/internal/llm"
)

// DefaultBaseURL is the public OpenAI API root.
const DefaultBaseURL = "https://api.openai.com/v1"

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4-1106-preview"

type Client struct {
	model       string
	temperature *float64
	http        *http.Client
	api         oai.Client
}

// NewClient builds a Chat Completions client. Retries are disabled: a failed
// call fails the run.
func NewClient(apiKey, model string, opts ...llm.Option) *Client {
	o := llm.Apply(DefaultBaseURL, opts...)
	if model == "" {
		model = DefaultModel
	}
	hc := llm.NewHTTPClient(o)

	return &Client{
		model:       model,
		temperature: o.Temperature,
		http:        hc,
		api: oai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(strings.TrimRight(o.BaseURL, "/")+"/"),
			option.WithHTTPClient(hc),
			option.WithMaxRetries(0),
		),
	}
}

// Model returns the model name sent with every request.
func (c *Client) Model() string { return c.model }

// Close releases idle connections held by the underlying transport.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// Complete sends the system prompt followed by messages and returns the first
// choice's content.
func (c *Client) Complete(ctx context.Context, system string, messages []llm.Message, maxTokens int) (string, error) {
	msgs := make([]oai.ChatCompletionMessageParamUnion, 0, len(messages)+1)
	if system != "" {
		msgs = append(msgs, oai.SystemMessage(system))
	}
	for _, m := range messages {
		switch m.Role {
		case "assistant":
			msgs = append(msgs, oai.AssistantMessage(m.Content))
		case "system":
			msgs = append(msgs, oai.SystemMessage(m.Content))
		default:
			msgs = append(msgs, oai.UserMessage(m.Content))
		}
	}

	params := oai.ChatCompletionNewParams{
		Model:    oai.ChatModel(c.model),
		Messages: msgs,
	}
	if maxTokens > 0 {
		params.MaxTokens = oai.Int(int64(maxTokens))
	}
	if c.temperature != nil {
		params.Temperature = oai.Float(*c.temperature)
	}

	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("api call: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response choices")
	}

	return resp.Choices[0].Message.Content, nil
}
