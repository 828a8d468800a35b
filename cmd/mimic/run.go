package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/mimic/internal/anthropic"
	"github.com/MikeSquared-Agency/mimic/internal/config"
	"github.com/MikeSquared-Agency/mimic/internal/dataset"
	"github.com/MikeSquared-Agency/mimic/internal/hermes"
	"github.com/MikeSquared-Agency/mimic/internal/llm"
	"github.com/MikeSquared-Agency/mimic/internal/openai"
	"github.com/MikeSquared-Agency/mimic/internal/slack"
	"github.com/MikeSquared-Agency/mimic/internal/synth"
)

// provider is a completion client owned by a single run.
type provider interface {
	synth.Completer
	Model() string
	Close()
}

func newProvider(cfg config.Config) provider {
	opts := []llm.Option{llm.WithTimeout(cfg.RequestTimeout)}
	if cfg.Temperature != nil {
		opts = append(opts, llm.WithTemperature(*cfg.Temperature))
	}

	if cfg.Provider == config.ProviderAnthropic {
		return anthropic.NewClient(cfg.AnthropicAPIKey, cfg.Model, opts...)
	}
	opts = append(opts, llm.WithBaseURL(cfg.OpenAIBaseURL))
	return openai.NewClient(cfg.OpenAIAPIKey, cfg.Model, opts...)
}

// eventPublisher is the part of the Hermes client a run uses.
type eventPublisher interface {
	Publish(ctx context.Context, subject string, data any) error
	Close()
}

// connectEvents dials the event bus; tests swap it for an in-memory recorder.
var connectEvents = func(cfg config.Config, logger *slog.Logger) (eventPublisher, error) {
	c, err := hermes.NewClient(cfg.NatsURL, cfg.NatsToken, logger)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func run(ctx context.Context, cfg config.Config, opts runOptions, logger *slog.Logger) error {
	if opts.DataDir == "" || opts.OutputFile == "" {
		return fmt.Errorf("%w: --data-dir and --output-file must not be empty", dataset.ErrConfiguration)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %v", dataset.ErrConfiguration, err)
	}

	runID := uuid.New().String()
	logger = logger.With("run_id", runID)

	llmClient := newProvider(cfg)
	defer llmClient.Close()
	logger.Info("mimic starting",
		"provider", cfg.Provider,
		"model", llmClient.Model(),
		"data_dir", opts.DataDir,
		"output_file", opts.OutputFile,
	)

	start := time.Now()
	builder := dataset.NewBuilder(synth.New(llmClient, cfg.MaxTokens, logger), cfg.SortFiles, logger)

	ds, err := builder.Build(ctx, opts.Persona, opts.DataDir)
	if err == nil {
		err = dataset.WriteFile(opts.OutputFile, ds)
	}
	// An unusable input directory means nothing ran; no network is touched.
	if errors.Is(err, dataset.ErrConfiguration) {
		return err
	}

	summary := slack.RunSummary{
		RunID:      runID,
		Provider:   cfg.Provider,
		Model:      llmClient.Model(),
		InputDir:   opts.DataDir,
		OutputFile: opts.OutputFile,
		Records:    len(ds),
		Duration:   time.Since(start),
		Err:        err,
	}
	if err == nil {
		logger.Info("dataset written",
			"output_file", opts.OutputFile,
			"records", len(ds),
			"elapsed", summary.Duration.String(),
		)
	}

	// Reporting runs on a fresh context so a canceled run still gets reported.
	reportCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	notify(reportCtx, cfg, logger, summary)
	publish(reportCtx, cfg, logger, summary, len(opts.Persona))

	return err
}

// notify posts the run summary to Slack when a bot token and channel are set.
func notify(ctx context.Context, cfg config.Config, logger *slog.Logger, s slack.RunSummary) {
	if cfg.SlackBotToken == "" || cfg.SlackChannel == "" {
		return
	}
	poster := slack.NewPoster(cfg.SlackBotToken, cfg.SlackChannel, cfg.SlackAPIURL, logger)
	if _, err := poster.PostRunSummary(ctx, s); err != nil {
		logger.Warn("failed to post slack summary", "error", err)
	}
}

// publish emits the built or failed event when NATS_URL is set. A broken bus
// never fails the run.
func publish(ctx context.Context, cfg config.Config, logger *slog.Logger, s slack.RunSummary, personaLen int) {
	if cfg.NatsURL == "" {
		return
	}
	events, err := connectEvents(cfg, logger)
	if err != nil {
		logger.Warn("events disabled", "error", err)
		return
	}
	defer events.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	subject := hermes.SubjectDatasetBuilt
	var data any = hermes.DatasetBuilt{
		RunID:      s.RunID,
		Provider:   s.Provider,
		Model:      s.Model,
		InputDir:   s.InputDir,
		OutputFile: s.OutputFile,
		Records:    s.Records,
		PersonaLen: personaLen,
		DurationMS: s.Duration.Milliseconds(),
		Timestamp:  now,
	}
	if s.Err != nil {
		subject = hermes.SubjectDatasetFailed
		data = hermes.DatasetFailed{
			RunID:     s.RunID,
			InputDir:  s.InputDir,
			Error:     s.Err.Error(),
			Timestamp: now,
		}
	}

	if err := events.Publish(ctx, subject, data); err != nil {
		logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}
