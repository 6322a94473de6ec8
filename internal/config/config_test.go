package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := Default()
	cfg.LLM.APIKey = "sk-test"
	return cfg
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "openrouter", cfg.LLM.Provider)
	assert.Equal(t, "anthropic/claude-3.5-haiku", cfg.LLM.PlannerModel)
	assert.Equal(t, "anthropic/claude-3.5-haiku", cfg.LLM.ReaderModel)
	assert.Equal(t, "anthropic/claude-sonnet-4", cfg.LLM.SynthesizerModel)
	assert.Equal(t, "localhost", cfg.Qdrant.Host)
	assert.Equal(t, 6334, cfg.Qdrant.Port)
	assert.Equal(t, "wiki_passages", cfg.Qdrant.Collection)
	assert.Equal(t, "fastembed", cfg.Embedding.Provider)
	assert.Equal(t, 7, cfg.Agent.MaxHops)
	assert.Equal(t, 10, cfg.Agent.TopK)
	assert.Equal(t, "logs", cfg.Telemetry.Dir)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults with API key",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing API key",
			mutate:  func(c *Config) { c.LLM.APIKey = "" },
			wantErr: "LLM_API_KEY",
		},
		{
			name:    "unknown LLM provider",
			mutate:  func(c *Config) { c.LLM.Provider = "cohere" },
			wantErr: "unknown LLM provider",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Qdrant.Port = 0 },
			wantErr: "invalid qdrant port",
		},
		{
			name:    "missing collection",
			mutate:  func(c *Config) { c.Qdrant.Collection = "" },
			wantErr: "collection",
		},
		{
			name:    "unknown embedding provider",
			mutate:  func(c *Config) { c.Embedding.Provider = "word2vec" },
			wantErr: "unknown embedding provider",
		},
		{
			name:    "negative max hops",
			mutate:  func(c *Config) { c.Agent.MaxHops = -1 },
			wantErr: "max hops",
		},
		{
			name:    "zero top k",
			mutate:  func(c *Config) { c.Agent.TopK = 0 },
			wantErr: "top k",
		},
		{
			name:    "missing telemetry dir",
			mutate:  func(c *Config) { c.Telemetry.Dir = "" },
			wantErr: "telemetry dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"LLM_API_KEY", "llm.api_key"},
		{"QDRANT_COLLECTION", "qdrant.collection"},
		{"QDRANT_USE_TLS", "qdrant.use_tls"},
		{"AGENT_MAX_HOPS", "agent.max_hops"},
		{"EMBEDDING_BASE_URL", "embedding.base_url"},
		{"TELEMETRY_DIR", "telemetry.dir"},
		{"LOGGING_LEVEL", "logging.level"},
		{"PATH", ""},
		{"HOME", ""},
		{"OPENAI_API_KEY", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, envKey(tt.in))
		})
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
llm:
  api_key: from-file
qdrant:
  collection: custom_passages
agent:
  max_hops: 3
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	// Environment overrides the file; untouched keys keep defaults.
	t.Setenv("AGENT_MAX_HOPS", "5")
	t.Setenv("LOGGING_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.LLM.APIKey)
	assert.Equal(t, "custom_passages", cfg.Qdrant.Collection)
	assert.Equal(t, 5, cfg.Agent.MaxHops)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 6334, cfg.Qdrant.Port)
	assert.Equal(t, 10, cfg.Agent.TopK)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "wiki_passages", cfg.Qdrant.Collection)
	assert.Equal(t, 7, cfg.Agent.MaxHops)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
