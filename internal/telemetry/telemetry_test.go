package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(id string, hops int) *RunRecord {
	record := &RunRecord{
		ID:                   id,
		Timestamp:            "2026-08-28T12:00:00Z",
		Question:             "why?",
		TotalLatencyMS:       4000,
		TotalLLMInputTokens:  900,
		TotalLLMOutputTokens: 100,
		TotalCost:            0.05,
		FinalAnswer:          "because",
	}
	for i := 0; i < hops; i++ {
		record.Hops = append(record.Hops, HopRecord{
			HopNumber:        i,
			Queries:          []string{"q"},
			NumResults:       10,
			TokensInPassages: 250,
			Decision:         "synthesize",
		})
	}
	return record
}

func TestRunLogger_WriteAndLoad(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewRunLogger(dir)
	require.NoError(t, err)

	require.NoError(t, logger.Write(sampleRecord("run-1", 2)))
	require.NoError(t, logger.Write(sampleRecord("run-2", 1)))

	records, err := logger.Load()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "run-1", records[0].ID)
	assert.Equal(t, "run-2", records[1].ID)
	assert.Len(t, records[0].Hops, 2)
	assert.Equal(t, "because", records[0].FinalAnswer)
}

func TestRunLogger_AppendOnly(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewRunLogger(dir)
	require.NoError(t, err)

	require.NoError(t, logger.Write(sampleRecord("run-1", 1)))
	first, err := os.ReadFile(logger.Path())
	require.NoError(t, err)

	require.NoError(t, logger.Write(sampleRecord("run-2", 1)))
	second, err := os.ReadFile(logger.Path())
	require.NoError(t, err)

	// The earlier record is untouched by later writes.
	assert.Equal(t, string(first), string(second[:len(first)]))
}

func TestRunLogger_LoadMissingFile(t *testing.T) {
	logger, err := NewRunLogger(t.TempDir())
	require.NoError(t, err)

	records, err := logger.Load()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRunLogger_LoadInvalidLine(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewRunLogger(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "runs.jsonl"), []byte("not json\n"), 0o644))

	_, err = logger.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestRunRecordSummary(t *testing.T) {
	record := sampleRecord("run-1", 2)
	summary := record.Summary()
	assert.Contains(t, summary, "Hops: 2")
	assert.Contains(t, summary, "Total latency: 4.0s")
	assert.Contains(t, summary, "Tokens retrieved: 500")
	assert.Contains(t, summary, "Tokens used by LLM: 1000")
	assert.Contains(t, summary, "Cost: $0.0500")
}

func TestAggregate(t *testing.T) {
	records := []*RunRecord{
		sampleRecord("a", 2),
		sampleRecord("b", 4),
	}
	stats := Aggregate(records)

	assert.Equal(t, 2, stats.Runs)
	assert.InDelta(t, 3.0, stats.MeanHops, 1e-9)
	assert.InDelta(t, 4000.0, stats.MeanLatencyMS, 1e-9)
	assert.Equal(t, 2000, stats.TotalTokens)
	assert.InDelta(t, 0.10, stats.TotalCost, 1e-9)
}

func TestAggregate_Empty(t *testing.T) {
	stats := Aggregate(nil)
	assert.Equal(t, 0, stats.Runs)
	assert.Zero(t, stats.MeanHops)
	assert.Zero(t, stats.TotalCost)
}

func TestStatsString(t *testing.T) {
	stats := Aggregate([]*RunRecord{sampleRecord("a", 3)})
	out := stats.String()
	assert.Contains(t, out, "Runs: 1")
	assert.Contains(t, out, "Avg hops: 3.0")
	assert.Contains(t, out, "Avg latency: 4.0s")
	assert.Contains(t, out, "Total tokens: 1000")
	assert.Contains(t, out, "Total cost: $0.0500")
}
