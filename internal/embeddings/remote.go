package embeddings

import (
	"context"
	"fmt"

	lcembeddings "github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// RemoteProvider generates embeddings through an OpenAI-compatible
// embeddings endpoint. This covers both TEI (Text Embeddings Inference)
// servers and the OpenAI API; the corpus is expected to have been
// embedded with the same model server-side.
type RemoteProvider struct {
	embedder  *lcembeddings.EmbedderImpl
	dimension int
}

// NewRemoteProvider creates a provider backed by an OpenAI-compatible
// embeddings endpoint.
func NewRemoteProvider(cfg Config) (*RemoteProvider, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: embedding base URL required", ErrInvalidConfig)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: embedding model required", ErrInvalidConfig)
	}

	// langchaingo requires a token; TEI ignores it.
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = "placeholder"
	}

	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithEmbeddingModel(cfg.Model),
		openai.WithToken(apiKey),
	)
	if err != nil {
		return nil, fmt.Errorf("creating embeddings client: %w", err)
	}

	embedder, err := lcembeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}

	return &RemoteProvider{
		embedder:  embedder,
		dimension: detectDimension(cfg.Model),
	}, nil
}

// EmbedQuery generates an embedding for a single query.
func (p *RemoteProvider) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, ErrEmptyInput
	}
	embedding, err := p.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}
	return embedding, nil
}

// Dimension returns the embedding dimension based on the model name.
func (p *RemoteProvider) Dimension() int {
	return p.dimension
}

// Close is a no-op for the HTTP-backed provider.
func (p *RemoteProvider) Close() error {
	return nil
}
