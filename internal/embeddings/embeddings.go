// Package embeddings provides query embedding via multiple providers.
//
// Two providers are supported: "fastembed" runs a local ONNX model in
// process (client-side embedding), "openai" calls an OpenAI-compatible
// embeddings endpoint such as TEI or the OpenAI API (server-side
// embedding). Both sit behind the Provider interface so the retriever
// is unaware of where vectors are computed.
package embeddings

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for embedding providers.
var (
	// ErrInvalidConfig indicates invalid provider configuration.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEmptyInput indicates empty input text.
	ErrEmptyInput = errors.New("empty input text")

	// ErrEmbeddingFailed indicates embedding generation failure.
	ErrEmbeddingFailed = errors.New("failed to generate embedding")
)

// Provider generates vector embeddings for search queries.
type Provider interface {
	// EmbedQuery generates an embedding for a single query.
	// Some models optimize differently for queries vs documents.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// Dimension returns the embedding dimension for the current model.
	Dimension() int

	// Close releases resources held by the provider.
	Close() error
}

// Config holds configuration for creating an embedding provider.
type Config struct {
	// Provider is the provider type: "fastembed" (default) or "openai".
	Provider string `koanf:"provider"`

	// Model is the embedding model name.
	Model string `koanf:"model"`

	// BaseURL is the OpenAI-compatible endpoint (openai provider only).
	BaseURL string `koanf:"base_url"`

	// APIKey is the endpoint credential (openai provider only;
	// optional for TEI).
	APIKey string `koanf:"api_key"`

	// CacheDir is the model cache directory (fastembed provider only).
	CacheDir string `koanf:"cache_dir"`
}

// NewProvider creates an embedding provider based on the configuration.
func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "fastembed", "":
		return NewFastEmbedProvider(cfg)
	case "openai", "tei":
		return NewRemoteProvider(cfg)
	default:
		return nil, fmt.Errorf("%w: unknown embedding provider %q", ErrInvalidConfig, cfg.Provider)
	}
}

// detectDimension returns the embedding dimension for a model name.
// Falls back to 384, the dimension of the bge-small default.
func detectDimension(model string) int {
	switch {
	case strings.Contains(model, "large"):
		return 1024
	case strings.Contains(model, "base"):
		return 768
	default:
		return 384
	}
}
