// Package llm provides chat completion clients for the reasoning steps.
//
// Two functionally interchangeable transports exist: the Anthropic
// messages API and an OpenAI-compatible chat completions endpoint
// (OpenRouter by default). Both return the completion text together
// with token usage and, where the provider reports it, monetary cost.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for completion clients.
var (
	// ErrInvalidConfig indicates invalid client configuration.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMissingAPIKey indicates a missing API credential.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrEmptyResponse indicates a success status with no usable
	// completion content.
	ErrEmptyResponse = errors.New("empty completion response")
)

// Completion is the result of one model invocation.
type Completion struct {
	// Text is the raw completion text.
	Text string

	// InputTokens and OutputTokens are the billed token counts.
	InputTokens  int
	OutputTokens int

	// Cost is the monetary cost in USD as reported by the provider.
	// Zero when the provider does not report cost.
	Cost float64
}

// Client is the interface to a chat completion API.
//
// Implementations must fail with diagnosable context (status, body) on
// any non-success transport outcome and must never silently return
// empty text on error.
type Client interface {
	// Complete sends one prompt and returns the completion.
	// systemPrompt may be empty.
	Complete(ctx context.Context, model, systemPrompt, userMessage string) (*Completion, error)
}

// Config holds configuration shared by the completion clients.
type Config struct {
	// Provider selects the transport: "openrouter" (default) or
	// "anthropic".
	Provider string `koanf:"provider"`

	// APIKey is the provider credential. Required.
	APIKey string `koanf:"api_key"`

	// BaseURL overrides the provider endpoint. Used for
	// OpenAI-compatible gateways; empty selects the provider default.
	BaseURL string `koanf:"base_url"`

	// PlannerModel, ReaderModel and SynthesizerModel select the model
	// per reasoning step.
	PlannerModel     string `koanf:"planner_model"`
	ReaderModel      string `koanf:"reader_model"`
	SynthesizerModel string `koanf:"synthesizer_model"`

	// MaxTokens caps the completion length. Defaults to 4096.
	MaxTokens int `koanf:"max_tokens"`
}

// New creates a completion client for the configured provider.
func New(cfg Config) (Client, error) {
	switch cfg.Provider {
	case "openrouter", "":
		return NewOpenRouterClient(cfg)
	case "anthropic":
		return NewAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("%w: unknown LLM provider %q", ErrInvalidConfig, cfg.Provider)
	}
}

func (c Config) maxTokens() int64 {
	if c.MaxTokens > 0 {
		return int64(c.MaxTokens)
	}
	return 4096
}
