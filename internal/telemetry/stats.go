package telemetry

import "fmt"

// Stats holds aggregate statistics computed across many runs.
type Stats struct {
	Runs          int
	MeanHops      float64
	MeanLatencyMS float64
	TotalTokens   int
	TotalCost     float64
}

// Aggregate computes summary statistics over the given records.
// An empty input yields zero-valued Stats.
func Aggregate(records []*RunRecord) Stats {
	stats := Stats{Runs: len(records)}
	if len(records) == 0 {
		return stats
	}

	var hops, latency int64
	for _, r := range records {
		hops += int64(len(r.Hops))
		latency += r.TotalLatencyMS
		stats.TotalTokens += r.TotalTokens()
		stats.TotalCost += r.Cost()
	}
	stats.MeanHops = float64(hops) / float64(len(records))
	stats.MeanLatencyMS = float64(latency) / float64(len(records))
	return stats
}

// String renders the stats as a multi-line summary block.
func (s Stats) String() string {
	return fmt.Sprintf(
		"Runs: %d\nAvg hops: %.1f\nAvg latency: %.1fs\nTotal tokens: %d\nTotal cost: $%.4f",
		s.Runs,
		s.MeanHops,
		s.MeanLatencyMS/1000.0,
		s.TotalTokens,
		s.TotalCost,
	)
}
