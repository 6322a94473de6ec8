// Package config provides configuration loading for agentic-search.
//
// Configuration is loaded from an optional YAML file overridden by
// environment variables. Validation failures are fatal at startup,
// before any run begins.
package config

import (
	"errors"
	"fmt"

	"github.com/KShivendu/agentic-search/internal/agent"
	"github.com/KShivendu/agentic-search/internal/embeddings"
	"github.com/KShivendu/agentic-search/internal/llm"
	"github.com/KShivendu/agentic-search/internal/logging"
	"github.com/KShivendu/agentic-search/internal/retrieval"
)

// Config holds the complete agentic-search configuration.
type Config struct {
	LLM       llm.Config              `koanf:"llm"`
	Qdrant    retrieval.QdrantConfig  `koanf:"qdrant"`
	Embedding embeddings.Config       `koanf:"embedding"`
	Agent     agent.Config            `koanf:"agent"`
	Telemetry TelemetryConfig         `koanf:"telemetry"`
	Logging   logging.Config          `koanf:"logging"`
}

// TelemetryConfig holds run-record persistence configuration.
type TelemetryConfig struct {
	// Dir is the directory holding runs.jsonl.
	Dir string `koanf:"dir"`
}

// Default returns the built-in defaults. An LLM API key is the only
// setting with no default.
func Default() *Config {
	return &Config{
		LLM: llm.Config{
			Provider:         "openrouter",
			PlannerModel:     "anthropic/claude-3.5-haiku",
			ReaderModel:      "anthropic/claude-3.5-haiku",
			SynthesizerModel: "anthropic/claude-sonnet-4",
			MaxTokens:        4096,
		},
		Qdrant: retrieval.QdrantConfig{
			Host:       "localhost",
			Port:       6334,
			Collection: "wiki_passages",
		},
		Embedding: embeddings.Config{
			Provider: "fastembed",
			Model:    "BAAI/bge-small-en-v1.5",
		},
		Agent: agent.Config{
			MaxHops: 7,
			TopK:    10,
		},
		Telemetry: TelemetryConfig{Dir: "logs"},
		Logging:   *logging.NewDefaultConfig(),
	}
}

// Validate checks the configuration. Any error here is fatal at
// startup.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return errors.New("LLM_API_KEY must be set")
	}
	switch c.LLM.Provider {
	case "openrouter", "anthropic":
	default:
		return fmt.Errorf("unknown LLM provider %q (openrouter, anthropic)", c.LLM.Provider)
	}

	if c.Qdrant.Port < 1 || c.Qdrant.Port > 65535 {
		return fmt.Errorf("invalid qdrant port: %d", c.Qdrant.Port)
	}
	if c.Qdrant.Collection == "" {
		return errors.New("qdrant collection must be set")
	}

	switch c.Embedding.Provider {
	case "fastembed", "openai", "tei", "":
	default:
		return fmt.Errorf("unknown embedding provider %q (fastembed, openai, tei)", c.Embedding.Provider)
	}

	if c.Agent.MaxHops < 0 {
		return fmt.Errorf("max hops must be >= 0, got %d", c.Agent.MaxHops)
	}
	if c.Agent.TopK <= 0 {
		return fmt.Errorf("top k must be positive, got %d", c.Agent.TopK)
	}

	if c.Telemetry.Dir == "" {
		return errors.New("telemetry dir must be set")
	}
	return nil
}
