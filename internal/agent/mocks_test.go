package agent

import (
	"context"
	"strings"

	"github.com/KShivendu/agentic-search/internal/llm"
	"github.com/KShivendu/agentic-search/internal/retrieval"
	"github.com/KShivendu/agentic-search/internal/telemetry"
)

// mockLLM scripts completions per reasoning step, dispatching on the
// system prompt. Reader responses are consumed in order, repeating the
// last one once exhausted.
type mockLLM struct {
	plannerResponse *llm.Completion
	readerResponses []*llm.Completion
	synthResponse   *llm.Completion

	err      error
	errOn    string // substring of the system prompt that triggers err
	readerAt int
	calls    int
}

func (m *mockLLM) Complete(ctx context.Context, model, systemPrompt, userMessage string) (*llm.Completion, error) {
	m.calls++
	if m.err != nil && (m.errOn == "" || strings.Contains(systemPrompt, m.errOn)) {
		return nil, m.err
	}

	switch {
	case strings.Contains(systemPrompt, "query planner"):
		return m.plannerResponse, nil
	case strings.Contains(systemPrompt, "research reader"):
		resp := m.readerResponses[m.readerAt]
		if m.readerAt < len(m.readerResponses)-1 {
			m.readerAt++
		}
		return resp, nil
	default:
		return m.synthResponse, nil
	}
}

// mockRetriever returns a fixed batch of passages per search and
// records the queries it was asked.
type mockRetriever struct {
	passages []retrieval.Passage
	err      error
	queries  []string
	limits   []int
}

func (m *mockRetriever) Search(ctx context.Context, query string, limit int) ([]retrieval.Passage, error) {
	m.queries = append(m.queries, query)
	m.limits = append(m.limits, limit)
	if m.err != nil {
		return nil, m.err
	}
	return m.passages, nil
}

// mockSink captures written records.
type mockSink struct {
	records []*telemetry.RunRecord
	err     error
}

func (m *mockSink) Write(record *telemetry.RunRecord) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, record)
	return nil
}

func completion(text string, in, out int, cost float64) *llm.Completion {
	return &llm.Completion{Text: text, InputTokens: in, OutputTokens: out, Cost: cost}
}

func makePassages(n int, prefix string) []retrieval.Passage {
	passages := make([]retrieval.Passage, n)
	for i := range passages {
		passages[i] = retrieval.Passage{Text: prefix, Score: 1.0 - float32(i)*0.01}
	}
	return passages
}
