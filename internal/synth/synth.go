package synth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MikeSquared-Agency/mimic/internal/llm"
)

// DefaultMaxTokens caps the length of a synthesized query.
const DefaultMaxTokens = 1024

// ErrEmptyQuery is returned when the model answers with nothing but whitespace.
var ErrEmptyQuery = errors.New("synthesized query is empty")

// Completer is a chat model that returns a single text completion.
type Completer interface {
	Complete(ctx context.Context, system string, messages []llm.Message, maxTokens int) (string, error)
}

// Synthesizer asks a model for the user query behind a given response.
type Synthesizer struct {
	llm       Completer
	maxTokens int
	logger    *slog.Logger
}

func New(llm Completer, maxTokens int, logger *slog.Logger) *Synthesizer {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Synthesizer{llm: llm, maxTokens: maxTokens, logger: logger}
}

// Synthesize returns a trimmed, non-empty query for response.
func (s *Synthesizer) Synthesize(ctx context.Context, response string) (string, error) {
	messages := []llm.Message{
		{Role: "user", Content: response},
	}

	raw, err := s.llm.Complete(ctx, systemPrompt, messages, s.maxTokens)
	if err != nil {
		return "", fmt.Errorf("llm synthesis: %w", err)
	}

	query := strings.TrimSpace(raw)
	if query == "" {
		s.logger.Warn("model returned a blank query", "response_len", len(response))
		return "", ErrEmptyQuery
	}

	s.logger.Debug("query synthesized",
		"response_len", len(response),
		"query_len", len(query),
	)
	return query, nil
}
