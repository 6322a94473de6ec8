package agent

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/KShivendu/agentic-search/internal/telemetry"
)

// EvalQuestion is one line of a JSONL evaluation file.
type EvalQuestion struct {
	Question       string `json:"question"`
	ExpectedAnswer string `json:"expected_answer,omitempty"`
	Type           string `json:"type,omitempty"`
}

// ReadEvalQuestions parses a JSONL question stream. Blank lines are
// skipped; a malformed line fails the whole read, before any run
// starts.
func ReadEvalQuestions(r io.Reader) ([]EvalQuestion, error) {
	var questions []EvalQuestion
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var q EvalQuestion
		if err := json.Unmarshal(raw, &q); err != nil {
			return nil, fmt.Errorf("parsing eval line %d: %w", line, err)
		}
		questions = append(questions, q)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading eval questions: %w", err)
	}
	return questions, nil
}

// Evaluate runs each question as an independent sequential run.
//
// In contrast with the fatal-on-error policy inside a single run, a
// failed question is logged and counted without aborting the rest.
// Failed runs are excluded from the returned records. The error count
// is returned alongside the successful records. Context cancellation
// stops the batch.
func (a *Agent) Evaluate(ctx context.Context, questions []EvalQuestion) ([]*telemetry.RunRecord, int) {
	var records []*telemetry.RunRecord
	errors := 0

	for i, q := range questions {
		if ctx.Err() != nil {
			a.log.Warn("evaluation cancelled", zap.Int("remaining", len(questions)-i))
			break
		}

		a.log.Info("evaluating question",
			zap.Int("index", i+1),
			zap.Int("total", len(questions)),
			zap.String("question", q.Question),
		)

		record, err := a.Ask(ctx, q.Question)
		if err != nil {
			a.log.Error("run failed", zap.Int("index", i+1), zap.Error(err))
			errors++
			continue
		}

		a.log.Info("run complete", zap.Int("index", i+1), zap.String("summary", record.Summary()))
		records = append(records, record)
	}

	return records, errors
}
