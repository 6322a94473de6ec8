// Package telemetry collects per-run and per-hop performance records.
//
// Every completed run produces exactly one immutable RunRecord, appended
// to a line-delimited JSON store by RunLogger. The read side loads
// persisted records and computes aggregate statistics across runs.
package telemetry

import "fmt"

// HopRecord captures one retrieve-then-decide iteration of a run.
// Immutable once created.
type HopRecord struct {
	HopNumber         int      `json:"hop_number"`
	Queries           []string `json:"queries"`
	SearchLatencyMS   int64    `json:"search_latency_ms"`
	NumResults        int      `json:"num_results"`
	TokensInPassages  int      `json:"tokens_in_passages"`
	LLMLatencyMS      int64    `json:"llm_latency_ms"`
	LLMInputTokens    int      `json:"llm_input_tokens"`
	LLMOutputTokens   int      `json:"llm_output_tokens"`
	LLMCost           float64  `json:"llm_cost"`
	Decision          string   `json:"decision"`
	TotalHopLatencyMS int64    `json:"total_hop_latency_ms"`
}

// RunRecord is the terminal aggregate for one complete pipeline run.
//
// Totals are exact sums of the plan, per-hop, and synthesis counters;
// the record is never mutated after assembly.
type RunRecord struct {
	ID                    string      `json:"id"`
	Timestamp             string      `json:"timestamp"`
	Question              string      `json:"question"`
	Hops                  []HopRecord `json:"hops"`
	SynthesisLatencyMS    int64       `json:"synthesis_latency_ms"`
	SynthesisInputTokens  int         `json:"synthesis_input_tokens"`
	SynthesisOutputTokens int         `json:"synthesis_output_tokens"`
	PlanLatencyMS         int64       `json:"plan_latency_ms"`
	PlanInputTokens       int         `json:"plan_input_tokens"`
	PlanOutputTokens      int         `json:"plan_output_tokens"`
	TotalLatencyMS        int64       `json:"total_latency_ms"`
	TotalLLMInputTokens   int         `json:"total_llm_input_tokens"`
	TotalLLMOutputTokens  int         `json:"total_llm_output_tokens"`
	TotalCost             float64     `json:"total_cost"`
	FinalAnswer           string      `json:"final_answer"`
}

// TotalTokens returns the total billed token count (input plus output).
func (r *RunRecord) TotalTokens() int {
	return r.TotalLLMInputTokens + r.TotalLLMOutputTokens
}

// TokensRetrieved returns the estimated token count of all retrieved
// passages across hops.
func (r *RunRecord) TokensRetrieved() int {
	total := 0
	for _, h := range r.Hops {
		total += h.TokensInPassages
	}
	return total
}

// Cost returns the monetary cost in USD as reported by the LLM API.
func (r *RunRecord) Cost() float64 {
	return r.TotalCost
}

// Summary returns a one-line human-readable summary of the run.
func (r *RunRecord) Summary() string {
	return fmt.Sprintf(
		"Hops: %d | Total latency: %.1fs | Tokens retrieved: %d | Tokens used by LLM: %d | Cost: $%.4f",
		len(r.Hops),
		float64(r.TotalLatencyMS)/1000.0,
		r.TokensRetrieved(),
		r.TotalTokens(),
		r.Cost(),
	)
}
