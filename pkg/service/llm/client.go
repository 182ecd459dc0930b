package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/testforge-dev/testforge/pkg/domain/interfaces"
	"github.com/testforge-dev/testforge/pkg/domain/model"
)

// Defaults for the Anthropic Messages API
const (
	DefaultModel     = "claude-3-5-sonnet-20241022"
	DefaultBaseURL   = "https://api.anthropic.com/v1"
	DefaultMaxTokens = 4000
	DefaultTimeout   = 60 * time.Second

	anthropicVersion = "2023-06-01"
	temperature      = 0.3
)

// Client calls the Anthropic Messages API over plain HTTP
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	maxTokens  int
	httpClient *http.Client
}

var _ interfaces.LLMClient = (*Client)(nil) // Compile-time interface check

// Option configures a Client
type Option func(*Client)

// WithModel overrides the model identifier
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithBaseURL overrides the API base URL
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimSuffix(baseURL, "/")
		}
	}
}

// WithMaxTokens overrides the completion token limit
func WithMaxTokens(maxTokens int) Option {
	return func(c *Client) {
		if maxTokens > 0 {
			c.maxTokens = maxTokens
		}
	}
}

// WithTimeout overrides the request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New creates a Client with the given API key. An empty key yields a
// client that reports itself unconfigured and refuses to generate.
func New(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:    apiKey,
		model:     DefaultModel,
		baseURL:   DefaultBaseURL,
		maxTokens: DefaultMaxTokens,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Model returns the model identifier used for generation
func (c *Client) Model() string {
	return c.model
}

// IsConfigured reports whether the client holds an API key
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type messagesResponse struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	Role    string         `json:"role"`
	Model   string         `json:"model"`
	Content []contentBlock `json:"content"`
	Usage   struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GenerateText sends the prompt as a single user message and returns
// the concatenated text blocks of the completion
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	logger := ctxlog.From(ctx)

	if !c.IsConfigured() {
		return "", goerr.New("anthropic API key is not configured", goerr.T(model.ErrTagConfig))
	}

	reqBody := messagesRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []message{
			{Role: "user", Content: prompt},
		},
		Temperature: temperature,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal messages request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return "", goerr.Wrap(err, "failed to create messages request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	logger.Debug("calling anthropic messages API",
		"model", c.model,
		"prompt_length", len(prompt),
	)
	startTime := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", goerr.Wrap(err, "anthropic request timed out",
				goerr.T(model.ErrTagTimeout),
				goerr.V("timeout", c.httpClient.Timeout))
		}
		return "", goerr.Wrap(err, "anthropic request failed", goerr.T(model.ErrTagUpstream))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read anthropic response", goerr.T(model.ErrTagUpstream))
	}

	if resp.StatusCode != http.StatusOK {
		return "", goerr.New("anthropic API returned an error status",
			goerr.T(model.ErrTagUpstream),
			goerr.V("status_code", resp.StatusCode),
			goerr.V("body", string(body)))
	}

	var result messagesResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", goerr.Wrap(err, "failed to decode anthropic response", goerr.T(model.ErrTagUpstream))
	}

	if result.Error != nil {
		return "", goerr.New("anthropic API returned an error",
			goerr.T(model.ErrTagUpstream),
			goerr.V("error_type", result.Error.Type),
			goerr.V("error_message", result.Error.Message))
	}

	var text strings.Builder
	for _, block := range result.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	completion := strings.TrimSpace(text.String())
	if completion == "" {
		return "", goerr.New("anthropic response contains no text content",
			goerr.T(model.ErrTagUpstream),
			goerr.V("content_blocks", len(result.Content)))
	}

	logger.Debug("anthropic messages API call completed",
		"duration", time.Since(startTime),
		"input_tokens", result.Usage.InputTokens,
		"output_tokens", result.Usage.OutputTokens,
	)

	return completion, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
