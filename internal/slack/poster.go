package slack

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/slack-go/slack"
)

// RunSummary is what gets reported to the channel after a run.
type RunSummary struct {
	RunID      string
	Provider   string
	Model      string
	InputDir   string
	OutputFile string
	Records    int
	Duration   time.Duration
	Err        error
}

type Poster struct {
	channel string
	api     *slack.Client
	logger  *slog.Logger
}

// NewPoster creates a poster for channel. An empty apiURL uses slack.com.
func NewPoster(token, channel, apiURL string, logger *slog.Logger) *Poster {
	opts := []slack.Option{
		slack.OptionHTTPClient(&http.Client{Timeout: 10 * time.Second}),
	}
	if apiURL != "" {
		if !strings.HasSuffix(apiURL, "/") {
			apiURL += "/"
		}
		opts = append(opts, slack.OptionAPIURL(apiURL))
	}
	return &Poster{
		channel: channel,
		api:     slack.New(token, opts...),
		logger:  logger,
	}
}

// PostRunSummary posts a one-message report of a finished run and returns the
// message timestamp.
func (p *Poster) PostRunSummary(ctx context.Context, s RunSummary) (string, error) {
	text := formatRunSummary(s)

	_, ts, err := p.api.PostMessageContext(ctx, p.channel,
		slack.MsgOptionText(text, false),
		slack.MsgOptionBlocks(
			slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil),
			slack.NewContextBlock("", slack.NewTextBlockObject(slack.MarkdownType, "run "+s.RunID, false, false)),
		),
	)
	if err != nil {
		return "", fmt.Errorf("slack post: %w", err)
	}

	p.logger.Info("posted run summary to slack", "ts", ts, "run_id", s.RunID)
	return ts, nil
}

func formatRunSummary(s RunSummary) string {
	var sb strings.Builder

	if s.Err != nil {
		sb.WriteString("*Dataset build failed*\n")
	} else {
		sb.WriteString("*Dataset built*\n")
	}
	fmt.Fprintf(&sb, "*Input:* `%s`\n", s.InputDir)
	fmt.Fprintf(&sb, "*Model:* %s (%s)\n", s.Model, s.Provider)

	if s.Err != nil {
		fmt.Fprintf(&sb, "*Error:* %s", s.Err.Error())
		return sb.String()
	}

	fmt.Fprintf(&sb, "*Output:* `%s`\n", s.OutputFile)
	fmt.Fprintf(&sb, "*Records:* %d in %s", s.Records, s.Duration.Round(time.Millisecond))
	if s.Records == 0 {
		sb.WriteString("\n_No .txt files found; output is empty._")
	}
	return sb.String()
}
