package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KShivendu/agentic-search/internal/agent"
	"github.com/KShivendu/agentic-search/internal/telemetry"
)

var evalCmd = &cobra.Command{
	Use:   "eval <questions.jsonl>",
	Short: "Run evaluation on a question set",
	Long: `Eval runs every question of a JSONL file as an independent run and
prints an aggregate summary. One failed question is logged and counted
without aborting the rest.

Each line is an object: {"question": "...", "expected_answer": "...", "type": "..."}
(only "question" is required).`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func runEval(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening eval file: %w", err)
	}
	defer f.Close()

	questions, err := agent.ReadEvalQuestions(f)
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		return fmt.Errorf("no questions in %s", args[0])
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	records, errCount := a.agent.Evaluate(cmd.Context(), questions)

	for _, record := range records {
		fmt.Printf("  %s\n", record.Summary())
	}

	if len(records) > 0 {
		stats := telemetry.Aggregate(records)
		fmt.Println("\n=== Evaluation Summary ===")
		fmt.Printf("Questions: %d (errors: %d)\n", stats.Runs, errCount)
		fmt.Printf("Avg hops: %.1f\n", stats.MeanHops)
		fmt.Printf("Avg latency: %.1fs\n", stats.MeanLatencyMS/1000.0)
		fmt.Printf("Total tokens: %d\n", stats.TotalTokens)
		fmt.Printf("Total cost: $%.4f\n", stats.TotalCost)
	}

	if errCount > 0 {
		return fmt.Errorf("%d of %d questions failed", errCount, len(questions))
	}
	return nil
}
