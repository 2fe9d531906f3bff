package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okheath/crew/internal/stats"
	"github.com/okheath/crew/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate run statistics and a reliability score",
	RunE: func(cmd *cobra.Command, args []string) error {
		return statsRun(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func statsRun(ctx context.Context) error {
	s, err := getStore()
	if err != nil {
		return err
	}

	records, err := s.ListResults(ctx, store.ResultFilter{}, 0)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		ui.Info("No results journaled yet")
		return nil
	}

	sum := stats.Aggregate(records)

	table := ui.Table([]string{"ROLE", "RUNS", "SUCCEEDED", "ESCALATED", "FAILED", "AVG ITER"})
	for role, rs := range sum.ByRole {
		avg := 0.0
		if rs.Total > 0 {
			avg = float64(rs.Iterations) / float64(rs.Total)
		}
		_ = table.Append([]string{
			role,
			fmt.Sprintf("%d", rs.Total),
			fmt.Sprintf("%d", rs.Succeeded),
			fmt.Sprintf("%d", rs.Escalated),
			fmt.Sprintf("%d", rs.Failed),
			fmt.Sprintf("%.1f", avg),
		})
	}
	_ = table.Render()

	ui.Info("Totals: %d runs, %d succeeded, %d escalated, %d failed", sum.Total, sum.Succeeded, sum.Escalated, sum.Failed)
	ui.Info("Tokens: %d in / %d out", sum.InputTokens, sum.OutputTokens)

	sc := stats.ComputeScore(sum)
	ui.Info("Reliability score: %d/100 (success %d, escalations %d, efficiency %d, recency %d)",
		sc.Total, sc.SuccessRate, sc.Escalations, sc.Efficiency, sc.Recency)
	return nil
}
