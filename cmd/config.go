package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShowRun()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(ui.Out, "crew %s (commit %s, built %s)\n", buildVersion, buildCommit, buildDate)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// configKeys are the settings shown by `crew config`, in display order.
var configKeys = []string{
	"db_path",
	"anthropic.model",
	"agent.max_iterations",
	"agent.timeout",
	"agent.max_tokens",
	"tools.command",
	"tools.args",
}

func configShowRun() error {
	if file := viper.ConfigFileUsed(); file != "" {
		ui.Info("Config file: %s", file)
	} else {
		ui.Info("Config file: none (using defaults)")
	}

	table := ui.Table([]string{"KEY", "VALUE"})
	for _, key := range configKeys {
		_ = table.Append([]string{key, fmt.Sprintf("%v", viper.Get(key))})
	}

	// Never print the API key itself
	masked := "(not set)"
	if viper.GetString("anthropic.api_key") != "" {
		masked = "****"
	}
	_ = table.Append([]string{"anthropic.api_key", masked})

	return table.Render()
}
