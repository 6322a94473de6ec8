// Agentic-search is a multi-hop research agent over a large semantic
// passage corpus.
//
// Given a question it plans search queries, iterates retrieve-then-
// decide hops against a Qdrant collection, and synthesizes an answer,
// recording per-hop latency/cost/token telemetry to a JSONL log.
//
// Usage:
//
//	agentic-search ask "What caused the 2008 financial crisis?"
//	agentic-search eval questions.jsonl
//	agentic-search stats
//
// Configuration comes from environment variables (LLM_API_KEY,
// QDRANT_HOST, AGENT_MAX_HOPS, ...) over an optional YAML file.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KShivendu/agentic-search/internal/agent"
	"github.com/KShivendu/agentic-search/internal/config"
	"github.com/KShivendu/agentic-search/internal/embeddings"
	"github.com/KShivendu/agentic-search/internal/llm"
	"github.com/KShivendu/agentic-search/internal/logging"
	"github.com/KShivendu/agentic-search/internal/retrieval"
	"github.com/KShivendu/agentic-search/internal/telemetry"
)

var (
	configPath string
	verbose    bool

	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:           "agentic-search",
	Short:         "Multi-hop research agent over a large corpus",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose per-hop output")
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(statsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// app bundles the wired components behind the CLI commands.
type app struct {
	agent    *agent.Agent
	runLog   *telemetry.RunLogger
	log      *logging.Logger
	embedder embeddings.Provider
	store    *retrieval.QdrantStore
}

// newApp loads configuration and constructs the full pipeline.
// Configuration errors are fatal here, before any run begins.
func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logCfg := cfg.Logging
	if verbose {
		logCfg.Level = "debug"
	}
	log, err := logging.New(&logCfg)
	if err != nil {
		return nil, err
	}

	client, err := llm.New(cfg.LLM)
	if err != nil {
		return nil, err
	}

	embedder, err := embeddings.NewProvider(cfg.Embedding)
	if err != nil {
		return nil, err
	}

	store, err := retrieval.NewQdrantStore(cfg.Qdrant, embedder)
	if err != nil {
		embedder.Close()
		return nil, err
	}

	runLog, err := telemetry.NewRunLogger(cfg.Telemetry.Dir)
	if err != nil {
		store.Close()
		embedder.Close()
		return nil, err
	}

	agentCfg := cfg.Agent
	agentCfg.PlannerModel = cfg.LLM.PlannerModel
	agentCfg.ReaderModel = cfg.LLM.ReaderModel
	agentCfg.SynthesizerModel = cfg.LLM.SynthesizerModel

	return &app{
		agent:    agent.New(agentCfg, client, store, runLog, log.Named("agent")),
		runLog:   runLog,
		log:      log,
		embedder: embedder,
		store:    store,
	}, nil
}

// close releases the app's connections and flushes logs.
func (a *app) close() {
	_ = a.store.Close()
	_ = a.embedder.Close()
	_ = a.log.Sync()
}
