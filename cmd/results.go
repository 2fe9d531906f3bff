package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okheath/crew/internal/output"
	"github.com/okheath/crew/internal/store"
)

var (
	resultsLimit     int
	resultsTaskID    string
	resultsAgentType string
	resultsEscalated bool
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "List journaled task results",
	RunE: func(cmd *cobra.Command, args []string) error {
		return resultsRun(cmd.Context())
	},
}

func init() {
	resultsCmd.Flags().IntVar(&resultsLimit, "limit", 20, "Maximum results to show")
	resultsCmd.Flags().StringVar(&resultsTaskID, "task", "", "Filter by task ID")
	resultsCmd.Flags().StringVar(&resultsAgentType, "role", "", "Filter by agent role")
	resultsCmd.Flags().BoolVar(&resultsEscalated, "escalated", false, "Show only escalated results")
	rootCmd.AddCommand(resultsCmd)
}

func resultsRun(ctx context.Context) error {
	s, err := getStore()
	if err != nil {
		return err
	}

	records, err := s.ListResults(ctx, store.ResultFilter{
		TaskID:    resultsTaskID,
		AgentType: resultsAgentType,
		Escalated: resultsEscalated,
	}, resultsLimit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		ui.Info("No results journaled yet")
		return nil
	}

	table := ui.Table([]string{"WHEN", "TASK", "ROLE", "OUTCOME", "ITER", "TOKENS", "REASON"})
	for _, r := range records {
		outcome := "failed"
		switch {
		case r.Result.Success:
			outcome = "success"
		case r.Result.Escalated:
			outcome = "escalated"
		}
		_ = table.Append([]string{
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Result.TaskID,
			r.Result.AgentType,
			output.OutcomeColor(outcome),
			fmt.Sprintf("%d", r.Result.Iterations),
			fmt.Sprintf("%d", r.Result.Usage.Total()),
			r.Result.Reason,
		})
	}
	_ = table.Render()
	return nil
}
