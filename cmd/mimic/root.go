package main

import (
	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/mimic/internal/config"
)

type runOptions struct {
	Persona    string
	DataDir    string
	OutputFile string
}

func newRootCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "mimic",
		Short: "Build a persona fine-tuning dataset from a directory of responses",
		Long: `mimic reads every .txt file in --data-dir as a desired assistant response,
asks a language model for a user query that could have produced it, and writes
one {"messages":[system, user, assistant]} record per file to --output-file.

Provider settings come from the environment: MIMIC_PROVIDER, MIMIC_MODEL,
OPENAI_API_KEY, OPENAI_BASE_URL, ANTHROPIC_API_KEY, MIMIC_MAX_TOKENS,
MIMIC_TEMPERATURE, MIMIC_REQUEST_TIMEOUT_SECONDS, MIMIC_SORT_FILES, LOG_LEVEL,
NATS_URL, NATS_TOKEN, SLACK_BOT_TOKEN, SLACK_CHANNEL and SLACK_API_URL.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			logger := setupLogging(cfg.LogLevel)
			return run(cmd.Context(), cfg, opts, logger)
		},
	}

	cmd.Flags().StringVar(&opts.Persona, "persona", "", "system persona placed in every record")
	cmd.Flags().StringVar(&opts.DataDir, "data-dir", "", "directory containing the .txt response files")
	cmd.Flags().StringVar(&opts.OutputFile, "output-file", "", "path of the JSONL file to write")
	for _, name := range []string{"persona", "data-dir", "output-file"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}
