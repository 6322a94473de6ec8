package agent

import "fmt"

// Decision is the Reader's per-hop verdict: continue researching with
// follow-up queries, or synthesize the final answer.
//
// It is a closed two-variant sum; type switches over Decision are
// exhaustive with Continue and Synthesize.
type Decision interface {
	isDecision()
}

// Continue requests another hop with the given follow-up queries.
// FollowUpQueries is always non-empty; the Reader maps an empty list to
// Synthesize before it ever reaches callers.
type Continue struct {
	FollowUpQueries []string
}

// Synthesize terminates the hop loop.
type Synthesize struct{}

func (Continue) isDecision()   {}
func (Synthesize) isDecision() {}

// decisionSummary renders the decision for hop records:
// "continue(N)" or "synthesize".
func decisionSummary(d Decision) string {
	switch d := d.(type) {
	case Continue:
		return fmt.Sprintf("continue(%d)", len(d.FollowUpQueries))
	default:
		return "synthesize"
	}
}
