package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/KShivendu/agentic-search/internal/llm"
)

const synthesizerSystemPrompt = `You are a research synthesizer. Given a question and accumulated research context (passages retrieved across multiple search hops), provide a comprehensive, well-structured answer.

Guidelines:
- Synthesize information from multiple passages into a coherent answer
- Note connections between different pieces of information
- Be specific — cite facts from the passages rather than making general statements
- If the evidence is insufficient or contradictory, say so
- Keep the answer focused and concise (2-4 paragraphs)`

// Synthesizer produces the final answer from the full accumulated
// context.
type Synthesizer struct {
	llm   llm.Client
	model string
}

// NewSynthesizer creates a Synthesizer using the given model.
func NewSynthesizer(client llm.Client, model string) *Synthesizer {
	return &Synthesizer{llm: client, model: model}
}

// Synthesize answers the question over every accumulated passage,
// unsummarized and untruncated. The model text is returned verbatim.
func (s *Synthesizer) Synthesize(ctx context.Context, question string, accumulated []string) (string, *llm.Completion, error) {
	var sources strings.Builder
	for i, p := range accumulated {
		if i > 0 {
			sources.WriteString("\n\n")
		}
		fmt.Fprintf(&sources, "[Source %d] %s", i+1, p)
	}

	userMessage := fmt.Sprintf(
		"Question: %s\n\nResearch Context:\n%s",
		question, sources.String(),
	)

	completion, err := s.llm.Complete(ctx, s.model, synthesizerSystemPrompt, userMessage)
	if err != nil {
		return "", nil, err
	}
	return completion.Text, completion, nil
}
