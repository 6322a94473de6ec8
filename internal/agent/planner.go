package agent

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/KShivendu/agentic-search/internal/llm"
)

const plannerSystemPrompt = `You are a research query planner. Given a complex question, decompose it into 1-4 specific search queries that would help find relevant information. Each query should target a different aspect of the question.

Respond with ONLY a JSON array of query strings. Example:
["query 1", "query 2", "query 3"]

Do not include any other text, explanation, or formatting.`

// Planner decomposes a question into an initial batch of search
// queries.
type Planner struct {
	llm   llm.Client
	model string
}

// NewPlanner creates a Planner using the given model.
func NewPlanner(client llm.Client, model string) *Planner {
	return &Planner{llm: client, model: model}
}

// Plan produces 1-4 initial queries for the question.
//
// Malformed model output never fails the run; the fallback chain always
// yields at least one query. Transport errors propagate.
func (p *Planner) Plan(ctx context.Context, question string) ([]string, *llm.Completion, error) {
	completion, err := p.llm.Complete(ctx, p.model, plannerSystemPrompt, question)
	if err != nil {
		return nil, nil, err
	}
	return parseQueries(completion.Text, question), completion, nil
}

// parseQueries parses the planner output as an ordered chain of
// attempts: the whole response as a JSON string array, then the
// substring between the first '[' and last ']', then the question
// itself as a single query. The result is never empty.
func parseQueries(text, question string) []string {
	var queries []string
	if err := json.Unmarshal([]byte(text), &queries); err == nil && len(queries) > 0 {
		return queries
	}

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start >= 0 && end > start {
		queries = nil
		if err := json.Unmarshal([]byte(text[start:end+1]), &queries); err == nil && len(queries) > 0 {
			return queries
		}
	}

	return []string{question}
}
