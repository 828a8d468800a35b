package hermes

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	// SubjectDatasetBuilt is published after a dataset file has been written.
	SubjectDatasetBuilt = "swarm.mimic.dataset.built"
	// SubjectDatasetFailed is published when a run aborts.
	SubjectDatasetFailed = "swarm.mimic.dataset.failed"
)

// DatasetBuilt describes a completed run.
type DatasetBuilt struct {
	RunID      string `json:"run_id"`
	Provider   string `json:"provider"`
	Model      string `json:"model"`
	InputDir   string `json:"input_dir"`
	OutputFile string `json:"output_file"`
	Records    int    `json:"records"`
	PersonaLen int    `json:"persona_len"`
	DurationMS int64  `json:"duration_ms"`
	Timestamp  string `json:"timestamp"`
}

// DatasetFailed describes an aborted run.
type DatasetFailed struct {
	RunID     string `json:"run_id"`
	InputDir  string `json:"input_dir"`
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}

const flushTimeout = 5 * time.Second

type Client struct {
	conn   *nats.Conn
	logger *slog.Logger
}

func NewClient(url, token string, logger *slog.Logger) (*Client, error) {
	opts := []nats.Option{
		nats.Name("mimic"),
		nats.Timeout(5 * time.Second),
		nats.MaxReconnects(5),
		nats.ReconnectWait(time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Client{conn: nc, logger: logger}, nil
}

// Publish sends data as JSON and waits for the server to acknowledge the flush,
// since the process usually exits right after. The wait is bounded by ctx, or by
// five seconds when ctx has no deadline.
func (c *Client) Publish(ctx context.Context, subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	if err := c.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}

	ctx, cancel := flushContext(ctx)
	defer cancel()
	if err := c.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("flush %s: %w", subject, err)
	}
	c.logger.Debug("event published", "subject", subject)
	return nil
}

// flushContext gives ctx a deadline; nats refuses to flush without one.
func flushContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, flushTimeout)
}

func (c *Client) Close() {
	c.conn.Close()
}
