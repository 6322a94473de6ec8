package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// defaultOpenRouterBaseURL is the OpenRouter OpenAI-compatible endpoint.
const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterClient implements Client against an OpenAI-compatible chat
// completions endpoint.
//
// OpenRouter returns the actual monetary cost of a request in a `cost`
// extension field of the usage object when usage accounting is
// requested; the client asks for it and surfaces it on Completion.Cost.
type OpenRouterClient struct {
	client    openai.Client
	maxTokens int64
}

// NewOpenRouterClient creates a client for OpenRouter or any other
// OpenAI-compatible endpoint.
func NewOpenRouterClient(cfg Config) (*OpenRouterClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: OpenRouter API key not configured", ErrMissingAPIKey)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	// Failed calls are fatal to the run and are not retried.
	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	)

	return &OpenRouterClient{
		client:    client,
		maxTokens: cfg.maxTokens(),
	}, nil
}

// Complete sends one prompt to the chat completions endpoint.
func (c *OpenRouterClient) Complete(ctx context.Context, model, systemPrompt, userMessage string) (*Completion, error) {
	var messages []openai.ChatCompletionMessageParamUnion
	if systemPrompt != "" {
		messages = append(messages, openai.SystemMessage(systemPrompt))
	}
	messages = append(messages, openai.UserMessage(userMessage))

	params := openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(model),
		MaxTokens: openai.Int(c.maxTokens),
		Messages:  messages,
	}

	// Request usage accounting so OpenRouter includes the cost field.
	resp, err := c.client.Chat.Completions.New(ctx, params,
		option.WithJSONSet("usage", map[string]any{"include": true}))
	if err != nil {
		return nil, fmt.Errorf("chat completion (model %s): %w", model, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices returned for model %s", ErrEmptyResponse, model)
	}

	return &Completion{
		Text:         resp.Choices[0].Message.Content,
		InputTokens:  int(resp.Usage.PromptTokens),
		OutputTokens: int(resp.Usage.CompletionTokens),
		Cost:         usageCost(resp),
	}, nil
}

// usageCost extracts the OpenRouter `usage.cost` extension field.
// Returns zero when the provider does not report cost.
func usageCost(resp *openai.ChatCompletion) float64 {
	field, ok := resp.Usage.JSON.ExtraFields["cost"]
	if !ok {
		return 0
	}
	var cost float64
	if err := json.Unmarshal([]byte(field.Raw()), &cost); err != nil {
		return 0
	}
	return cost
}
