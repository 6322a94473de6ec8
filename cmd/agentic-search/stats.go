package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KShivendu/agentic-search/internal/config"
	"github.com/KShivendu/agentic-search/internal/telemetry"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print aggregate statistics over persisted runs",
	Long: `Stats loads every run record from the telemetry log and prints
aggregate statistics: run count, mean hops, mean latency, summed
tokens, and summed cost.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

// runStats reads the persisted log directly; no pipeline is wired.
func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	runLog, err := telemetry.NewRunLogger(cfg.Telemetry.Dir)
	if err != nil {
		return err
	}

	records, err := runLog.Load()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Println(telemetry.Aggregate(records))
	return nil
}
