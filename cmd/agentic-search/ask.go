package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask \"question\"",
	Short: "Ask a single research question",
	Long: `Ask runs the full research pipeline for one question: plan search
queries, iterate retrieve-then-decide hops, and synthesize an answer.
The run record is appended to the telemetry log.

Examples:
  agentic-search ask "What caused the 2008 financial crisis?"
  agentic-search ask -v "Who discovered penicillin and when?"`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	record, err := a.agent.Ask(cmd.Context(), args[0])
	if err != nil {
		// The answer may have been computed even when persisting the
		// record failed; surface it before reporting the failure.
		if record != nil {
			fmt.Printf("\n%s\n\n", record.FinalAnswer)
		}
		return err
	}

	fmt.Printf("\n%s\n\n", record.FinalAnswer)
	fmt.Println(record.Summary())
	return nil
}
