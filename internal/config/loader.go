package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Load loads configuration with the following precedence (highest
// first):
//
//  1. Environment variables (LLM_API_KEY, AGENT_MAX_HOPS, ...)
//  2. YAML config file (default ~/.config/agentic-search/config.yaml)
//  3. Built-in defaults
//
// Environment variables map to config keys by lowercasing and
// splitting on the first underscore:
//
//	LLM_API_KEY        -> llm.api_key
//	QDRANT_COLLECTION  -> qdrant.collection
//	AGENT_MAX_HOPS     -> agent.max_hops
//
// configPath selects the YAML file; empty uses the default path. A
// missing file is not an error.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			configPath = filepath.Join(home, ".config", "agentic-search", "config.yaml")
		}
	}

	if configPath != "" {
		if content, err := os.ReadFile(configPath); err == nil {
			if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("loading config file %s: %w", configPath, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// sections are the recognized top-level config groups. Environment
// variables outside these prefixes are ignored so unrelated process
// environment never leaks into the config tree.
var sections = map[string]bool{
	"llm":       true,
	"qdrant":    true,
	"embedding": true,
	"agent":     true,
	"telemetry": true,
	"logging":   true,
}

// envKey maps an environment variable name to a config key, or returns
// "" to skip it. The section prefix becomes the first path element:
// QDRANT_USE_TLS -> qdrant.use_tls.
func envKey(name string) string {
	parts := strings.SplitN(strings.ToLower(name), "_", 2)
	if len(parts) != 2 || !sections[parts[0]] {
		return ""
	}
	return parts[0] + "." + parts[1]
}
