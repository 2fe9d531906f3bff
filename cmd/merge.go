package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/okheath/crew/internal/merge"
	"github.com/okheath/crew/internal/output"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Inspect merger agent output",
	Long: `Parse and evaluate a merger agent's reply.

The reply text is read from a file (or stdin with '-') and run through the
merge decision engine: the embedded JSON report is extracted, validated,
and checked against the fail-closed auto-complete policy.`,
}

var mergeParseCmd = &cobra.Command{
	Use:   "parse <reply-file>",
	Short: "Parse a merger reply and show the conflict table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mergeParseRun(args[0])
	},
}

var mergeSummaryCmd = &cobra.Command{
	Use:   "summary <reply-file>",
	Short: "Summarize a merger reply and print the auto-complete verdict",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mergeSummaryRun(args[0])
	},
}

func init() {
	mergeCmd.AddCommand(mergeParseCmd)
	mergeCmd.AddCommand(mergeSummaryCmd)
	rootCmd.AddCommand(mergeCmd)
}

// readReply loads the merger reply from a file or stdin.
func readReply(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read reply file: %w", err)
	}
	return string(data), nil
}

func mergeParseRun(path string) error {
	reply, err := readReply(path)
	if err != nil {
		return err
	}

	out, ok := merge.ParseOutput(reply)
	if !ok {
		return fmt.Errorf("no merge report found in %s", path)
	}

	table := ui.Table([]string{"FILE", "TYPE", "SEVERITY", "MANUAL", "DESCRIPTION"})
	for _, c := range out.Conflicts {
		manual := ""
		if c.NeedsManualReview {
			manual = output.Red("yes")
		}
		_ = table.Append([]string{
			c.File,
			string(c.Type),
			output.SeverityColor(string(c.Severity)),
			manual,
			c.Description,
		})
	}
	_ = table.Render()

	ui.Info("%d conflict(s), %d resolution(s), %d unresolved", len(out.Conflicts), len(out.Resolutions), out.UnresolvedCount)
	return nil
}

func mergeSummaryRun(path string) error {
	reply, err := readReply(path)
	if err != nil {
		return err
	}

	out, ok := merge.ParseOutput(reply)
	if !ok {
		return fmt.Errorf("no merge report found in %s", path)
	}

	fmt.Fprint(ui.Out, merge.Summarize(out))

	if merge.CanAutoComplete(out.Conflicts) && !out.RequiresHumanReview {
		ui.Success("Merge can auto-complete")
	} else {
		ui.Warning("Merge requires human review")
	}
	return nil
}
