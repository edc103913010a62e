// Package llm generates workflows through an OpenAI-compatible chat
// completion endpoint. It is a drop-in, more expensive alternative to the
// deterministic synthesizer; every failure path is recoverable and callers
// fall back to synthesis.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/flowdraft/flowdraft/pkg/models"
)

const (
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 8 * time.Second
)

// ErrEmptyCompletion is returned when the endpoint answers with no usable
// choice.
var ErrEmptyCompletion = errors.New("completion contained no choices")

// Config configures the generation client.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client talks to the text-generation endpoint. Construct once and share;
// the underlying HTTP client is safe for concurrent use.
type Client struct {
	api     openai.Client
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

// NewClient creates a generation client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		api:     openai.NewClient(opts...),
		model:   model,
		timeout: timeout,
		logger:  logger,
	}
}

// Generate asks the endpoint for a workflow and parses the reply. The call
// is bounded by the configured timeout and never retried; on any failure
// the caller synthesizes deterministically instead.
func (c *Client) Generate(ctx context.Context, input PromptInput) (*models.Workflow, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	completion, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(BuildPrompt(input)),
		},
		Temperature: openai.Float(0.2),
	})
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return nil, ErrEmptyCompletion
	}

	workflow, err := ParseWorkflow(completion.Choices[0].Message.Content)
	if err != nil {
		c.logger.Warn("generated completion did not parse", "error", err)
		return nil, err
	}

	return workflow, nil
}
