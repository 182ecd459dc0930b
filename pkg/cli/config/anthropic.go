package config

import (
	"log/slog"
	"time"

	"github.com/testforge-dev/testforge/pkg/service/llm"
	"github.com/urfave/cli/v3"
)

// Anthropic holds Anthropic API configuration
type Anthropic struct {
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
	Timeout   time.Duration
}

// Flags returns CLI flags for Anthropic configuration
func (a *Anthropic) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "anthropic-api-key",
			Usage:       "Anthropic API key",
			Category:    "Anthropic",
			Sources:     cli.EnvVars("TESTFORGE_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY"),
			Destination: &a.APIKey,
		},
		&cli.StringFlag{
			Name:        "anthropic-model",
			Usage:       "Anthropic model name",
			Category:    "Anthropic",
			Value:       llm.DefaultModel,
			Sources:     cli.EnvVars("TESTFORGE_ANTHROPIC_MODEL"),
			Destination: &a.Model,
		},
		&cli.StringFlag{
			Name:        "anthropic-base-url",
			Usage:       "Anthropic API base URL",
			Category:    "Anthropic",
			Value:       llm.DefaultBaseURL,
			Sources:     cli.EnvVars("TESTFORGE_ANTHROPIC_BASE_URL"),
			Destination: &a.BaseURL,
		},
		&cli.IntFlag{
			Name:        "anthropic-max-tokens",
			Usage:       "Maximum tokens in a model response",
			Category:    "Anthropic",
			Value:       llm.DefaultMaxTokens,
			Sources:     cli.EnvVars("TESTFORGE_ANTHROPIC_MAX_TOKENS"),
			Destination: &a.MaxTokens,
		},
		&cli.DurationFlag{
			Name:        "anthropic-timeout",
			Usage:       "Timeout for Anthropic API calls",
			Category:    "Anthropic",
			Value:       llm.DefaultTimeout,
			Sources:     cli.EnvVars("TESTFORGE_ANTHROPIC_TIMEOUT"),
			Destination: &a.Timeout,
		},
	}
}

// Configure creates the Anthropic API client. The client is created even
// without an API key so the server can start and report itself as
// unconfigured through the health endpoint.
func (a *Anthropic) Configure() *llm.Client {
	return llm.New(a.APIKey,
		llm.WithModel(a.Model),
		llm.WithBaseURL(a.BaseURL),
		llm.WithMaxTokens(a.MaxTokens),
		llm.WithTimeout(a.Timeout),
	)
}

// IsConfigured checks if the API key is set
func (a *Anthropic) IsConfigured() bool {
	return a.APIKey != ""
}

// LogValue returns structured log value
func (a Anthropic) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_api_key", a.APIKey != ""),
		slog.String("model", a.Model),
		slog.String("base_url", a.BaseURL),
		slog.Int("max_tokens", a.MaxTokens),
		slog.Duration("timeout", a.Timeout),
	)
}
