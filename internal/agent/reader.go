package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/KShivendu/agentic-search/internal/llm"
	"github.com/KShivendu/agentic-search/internal/retrieval"
)

const readerSystemPrompt = `You are a research reader. You are given a question, retrieved passages, and context accumulated from previous research hops.

Your job is to decide:
1. If you have enough information to answer the question, respond with:
   {"decision": "synthesize"}

2. If you need more information, respond with:
   {"decision": "continue", "follow_up_queries": ["query 1", "query 2"]}
   Provide 1-3 follow-up queries targeting specific gaps in your knowledge.

Consider:
- What aspects of the question remain unanswered?
- What new leads do the passages suggest?
- Are there connections between passages that need more investigation?

Respond with ONLY the JSON object. No other text.`

// contextSummaryLimit is how many of the most recent accumulated
// passages the Reader sees in full list form.
const contextSummaryLimit = 5

// contextEntryMaxBytes caps each summarized context entry.
const contextEntryMaxBytes = 200

// Reader decides after each hop whether to keep searching or to
// synthesize the final answer.
type Reader struct {
	llm   llm.Client
	model string
}

// NewReader creates a Reader using the given model.
func NewReader(client llm.Client, model string) *Reader {
	return &Reader{llm: client, model: model}
}

// Read presents the new passages and a summary of the accumulated
// context to the model and parses its verdict.
//
// The parse is fail-safe: anything other than a well-formed continue
// with non-empty follow-up queries resolves to Synthesize, so ambiguous
// model output terminates the loop instead of extending it.
func (r *Reader) Read(ctx context.Context, question string, newPassages, accumulated []string) (Decision, *llm.Completion, error) {
	var passages strings.Builder
	for i, p := range newPassages {
		if i > 0 {
			passages.WriteString("\n\n")
		}
		fmt.Fprintf(&passages, "[Passage %d] %s", i+1, p)
	}

	userMessage := fmt.Sprintf(
		"Question: %s\n\nNew Passages:\n%s\n\nAccumulated Context:\n%s",
		question, passages.String(), summarizeContext(accumulated),
	)

	completion, err := r.llm.Complete(ctx, r.model, readerSystemPrompt, userMessage)
	if err != nil {
		return nil, nil, err
	}
	return parseDecision(completion.Text), completion, nil
}

// summarizeContext keeps the reader prompt bounded: with more than
// contextSummaryLimit entries only the most recently appended ones are
// shown, prefixed by the total count; every shown entry is truncated.
func summarizeContext(accumulated []string) string {
	entries := accumulated
	var header string
	if len(accumulated) > contextSummaryLimit {
		header = fmt.Sprintf("%d passages accumulated so far. Latest %d:\n", len(accumulated), contextSummaryLimit)
		entries = accumulated[len(accumulated)-contextSummaryLimit:]
	}

	lines := make([]string, len(entries))
	for i, entry := range entries {
		lines[i] = fmt.Sprintf("[Context %d] %s", i+1, truncate(entry, contextEntryMaxBytes))
	}
	return header + strings.Join(lines, "\n")
}

// truncate cuts s to at most max bytes without splitting a multi-byte
// character.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// readerOutput is the structured verdict the model is asked for.
type readerOutput struct {
	Decision        string   `json:"decision"`
	FollowUpQueries []string `json:"follow_up_queries"`
}

// parseDecision extracts the JSON object between the first '{' and last
// '}' and maps it to a Decision. Parse failures, a "synthesize"
// verdict, and continue without follow-up queries all resolve to
// Synthesize.
func parseDecision(text string) Decision {
	jsonStr := text
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		jsonStr = text[start : end+1]
	}

	var output readerOutput
	if err := json.Unmarshal([]byte(jsonStr), &output); err == nil {
		if output.Decision == "continue" && len(output.FollowUpQueries) > 0 {
			return Continue{FollowUpQueries: output.FollowUpQueries}
		}
	}
	return Synthesize{}
}

// passageTexts projects passages to their text content.
func passageTexts(passages []retrieval.Passage) []string {
	texts := make([]string, len(passages))
	for i, p := range passages {
		texts[i] = p.Text
	}
	return texts
}
