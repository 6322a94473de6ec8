// Package agent implements the multi-hop research loop: plan once,
// iterate retrieve-then-decide hops, synthesize once.
package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/KShivendu/agentic-search/internal/llm"
	"github.com/KShivendu/agentic-search/internal/logging"
	"github.com/KShivendu/agentic-search/internal/retrieval"
	"github.com/KShivendu/agentic-search/internal/telemetry"
)

var tracer = otel.Tracer("agentic-search.agent")

// Config bounds the hop loop and selects the model per reasoning step.
type Config struct {
	// MaxHops caps the number of retrieve-then-decide iterations.
	// Zero is valid: the agent synthesizes immediately off empty
	// context.
	MaxHops int `koanf:"max_hops"`

	// TopK is the result limit per search request.
	TopK int `koanf:"top_k"`

	// PlannerModel, ReaderModel and SynthesizerModel are passed to the
	// completion client per step. Set by the caller from the LLM
	// configuration.
	PlannerModel     string `koanf:"-"`
	ReaderModel      string `koanf:"-"`
	SynthesizerModel string `koanf:"-"`
}

// Agent wires Planner -> (Retriever -> Reader)* -> Synthesizer into a
// bounded, cost-tracked loop.
//
// One run is strictly sequential: each step's output is a required
// input to the next. Any model or retrieval failure aborts the run and
// nothing is persisted for it.
type Agent struct {
	planner     *Planner
	reader      *Reader
	synthesizer *Synthesizer
	retriever   retrieval.Retriever
	sink        telemetry.Sink
	log         *logging.Logger
	config      Config
}

// New assembles an agent from its capabilities.
func New(cfg Config, client llm.Client, retriever retrieval.Retriever, sink telemetry.Sink, log *logging.Logger) *Agent {
	return &Agent{
		planner:     NewPlanner(client, cfg.PlannerModel),
		reader:      NewReader(client, cfg.ReaderModel),
		synthesizer: NewSynthesizer(client, cfg.SynthesizerModel),
		retriever:   retriever,
		sink:        sink,
		log:         log,
		config:      cfg,
	}
}

// Ask runs the full pipeline for one question and persists the run
// record.
//
// On a persistence failure the already-assembled record is returned
// together with the error, so callers may still surface the answer
// while treating the run as failed.
func (a *Agent) Ask(ctx context.Context, question string) (*telemetry.RunRecord, error) {
	ctx, span := tracer.Start(ctx, "Agent.Ask")
	defer span.End()

	runStart := time.Now()
	var hops []telemetry.HopRecord
	var accumulated []string

	planStart := time.Now()
	queries, planUsage, err := a.planner.Plan(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("planning queries: %w", err)
	}
	planLatency := time.Since(planStart).Milliseconds()

	a.log.Debug("planned initial queries",
		zap.Int("count", len(queries)),
		zap.Int64("latency_ms", planLatency),
		zap.Strings("queries", queries),
	)

	pending := queries
	for hop := 0; hop < a.config.MaxHops && len(pending) > 0; hop++ {
		hopStart := time.Now()

		searchStart := time.Now()
		passages, err := a.retriever.Search(ctx, strings.Join(pending, " "), a.config.TopK)
		if err != nil {
			return nil, fmt.Errorf("hop %d: searching: %w", hop, err)
		}
		searchLatency := time.Since(searchStart).Milliseconds()

		texts := passageTexts(passages)
		accumulated = append(accumulated, texts...)

		readStart := time.Now()
		decision, readUsage, err := a.reader.Read(ctx, question, texts, accumulated)
		if err != nil {
			return nil, fmt.Errorf("hop %d: reading: %w", hop, err)
		}
		readLatency := time.Since(readStart).Milliseconds()

		record := telemetry.HopRecord{
			HopNumber:         hop,
			Queries:           pending,
			SearchLatencyMS:   searchLatency,
			NumResults:        len(passages),
			TokensInPassages:  estimateTokens(texts),
			LLMLatencyMS:      readLatency,
			LLMInputTokens:    readUsage.InputTokens,
			LLMOutputTokens:   readUsage.OutputTokens,
			LLMCost:           readUsage.Cost,
			Decision:          decisionSummary(decision),
			TotalHopLatencyMS: time.Since(hopStart).Milliseconds(),
		}
		hops = append(hops, record)

		a.log.Debug("hop complete",
			zap.Int("hop", hop),
			zap.Int("results", len(passages)),
			zap.Int64("search_ms", searchLatency),
			zap.Int64("llm_ms", readLatency),
			zap.String("decision", record.Decision),
		)

		if next, ok := decision.(Continue); ok {
			pending = next.FollowUpQueries
		} else {
			break
		}
	}

	synthStart := time.Now()
	answer, synthUsage, err := a.synthesizer.Synthesize(ctx, question, accumulated)
	if err != nil {
		return nil, fmt.Errorf("synthesizing answer: %w", err)
	}
	synthLatency := time.Since(synthStart).Milliseconds()

	a.log.Debug("synthesized answer", zap.Int64("latency_ms", synthLatency))

	record := assembleRunRecord(question, hops, answer,
		planUsage, planLatency, synthUsage, synthLatency,
		time.Since(runStart).Milliseconds())

	if err := a.sink.Write(record); err != nil {
		return record, fmt.Errorf("persisting run record: %w", err)
	}
	return record, nil
}

// assembleRunRecord builds the immutable terminal record. Totals are
// exact sums of the plan, per-hop, and synthesis counters.
func assembleRunRecord(question string, hops []telemetry.HopRecord, answer string,
	planUsage *llm.Completion, planLatency int64,
	synthUsage *llm.Completion, synthLatency int64,
	totalLatency int64,
) *telemetry.RunRecord {
	totalIn := planUsage.InputTokens + synthUsage.InputTokens
	totalOut := planUsage.OutputTokens + synthUsage.OutputTokens
	totalCost := planUsage.Cost + synthUsage.Cost
	for _, h := range hops {
		totalIn += h.LLMInputTokens
		totalOut += h.LLMOutputTokens
		totalCost += h.LLMCost
	}

	return &telemetry.RunRecord{
		ID:                    uuid.NewString(),
		Timestamp:             time.Now().UTC().Format(time.RFC3339),
		Question:              question,
		Hops:                  hops,
		SynthesisLatencyMS:    synthLatency,
		SynthesisInputTokens:  synthUsage.InputTokens,
		SynthesisOutputTokens: synthUsage.OutputTokens,
		PlanLatencyMS:         planLatency,
		PlanInputTokens:       planUsage.InputTokens,
		PlanOutputTokens:      planUsage.OutputTokens,
		TotalLatencyMS:        totalLatency,
		TotalLLMInputTokens:   totalIn,
		TotalLLMOutputTokens:  totalOut,
		TotalCost:             totalCost,
		FinalAnswer:           answer,
	}
}

// estimateTokens approximates the token count of retrieved passages at
// four bytes per token.
func estimateTokens(texts []string) int {
	total := 0
	for _, t := range texts {
		total += len(t) / 4
	}
	return total
}
