package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

type Config struct {
	Provider        string
	Model           string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	AnthropicAPIKey string
	MaxTokens       int
	Temperature     *float64
	RequestTimeout  time.Duration
	SortFiles       bool
	LogLevel        string
	NatsURL         string
	NatsToken       string
	SlackBotToken   string
	SlackChannel    string
	SlackAPIURL     string
}

func Load() Config {
	return Config{
		Provider:        strings.ToLower(envStr("MIMIC_PROVIDER", ProviderOpenAI)),
		Model:           envStr("MIMIC_MODEL", ""),
		OpenAIAPIKey:    envStr("OPENAI_API_KEY", ""),
		OpenAIBaseURL:   envStr("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		AnthropicAPIKey: envStr("ANTHROPIC_API_KEY", ""),
		MaxTokens:       envInt("MIMIC_MAX_TOKENS", 1024),
		Temperature:     envFloatPtr("MIMIC_TEMPERATURE"),
		RequestTimeout:  time.Duration(envInt("MIMIC_REQUEST_TIMEOUT_SECONDS", 120)) * time.Second,
		SortFiles:       envBool("MIMIC_SORT_FILES", true),
		LogLevel:        envStr("LOG_LEVEL", "info"),
		NatsURL:         envStr("NATS_URL", ""),
		NatsToken:       envStr("NATS_TOKEN", ""),
		SlackBotToken:   envStr("SLACK_BOT_TOKEN", ""),
		SlackChannel:    envStr("SLACK_CHANNEL", ""),
		SlackAPIURL:     envStr("SLACK_API_URL", ""),
	}
}

// Validate reports settings the run cannot start without.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY is required")
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return errors.New("ANTHROPIC_API_KEY is required")
		}
	default:
		return fmt.Errorf("unknown MIMIC_PROVIDER %q (want %s or %s)", c.Provider, ProviderOpenAI, ProviderAnthropic)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// envFloatPtr returns nil when key is unset or unparsable.
func envFloatPtr(key string) *float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return &f
		}
	}
	return nil
}
