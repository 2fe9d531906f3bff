package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/okheath/crew/internal/agent"
	"github.com/okheath/crew/internal/bus"
	"github.com/okheath/crew/internal/llm"
	"github.com/okheath/crew/internal/lock"
	"github.com/okheath/crew/internal/models"
	"github.com/okheath/crew/internal/output"
	"github.com/okheath/crew/internal/tool"
)

// timeRound trims durations for display.
const timeRound = 10 * time.Millisecond

var (
	runRole    string
	runWorkdir string
	runNoSave  bool
)

var runCmd = &cobra.Command{
	Use:   "run <task.yaml>",
	Short: "Execute a task file with an agent",
	Long: `Run a task through the bounded agent execution loop.

The task file is YAML with id, name, description, and optional files,
criteria, verify_command, and depends_on fields. Tool calls are dispatched
to the MCP backend configured under tools.command.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTaskRun(cmd.Context(), args[0])
	},
}

func init() {
	runCmd.Flags().StringVar(&runRole, "role", "coder", "Agent role: coder, tester, reviewer, merger, resolver")
	runCmd.Flags().StringVar(&runWorkdir, "workdir", "", "Working directory reported to the agent (default: cwd)")
	runCmd.Flags().BoolVar(&runNoSave, "no-save", false, "Do not journal the result")
	rootCmd.AddCommand(runCmd)
}

// roleByName maps the --role flag to a role configuration.
func roleByName(name string) (agent.Role, error) {
	switch strings.ToLower(name) {
	case "coder":
		return agent.CoderRole(), nil
	case "tester":
		return agent.TesterRole(), nil
	case "reviewer":
		return agent.ReviewerRole(), nil
	case "merger":
		return agent.MergerRole(), nil
	case "resolver":
		return agent.ConflictResolverRole(), nil
	default:
		return agent.Role{}, fmt.Errorf("unknown role: %s", name)
	}
}

func runTaskRun(ctx context.Context, taskPath string) error {
	task, err := models.LoadTaskFile(taskPath)
	if err != nil {
		return err
	}

	role, err := roleByName(runRole)
	if err != nil {
		return err
	}

	workdir := runWorkdir
	if workdir == "" {
		workdir, _ = os.Getwd()
	}
	agentCtx := &models.AgentContext{WorkingDir: workdir}

	// One agent run per workspace; stale locks from dead runs are replaced.
	wsLock := lock.ForWorkspace(workdir)
	if err := wsLock.Acquire(); err != nil {
		return err
	}
	defer func() { _ = wsLock.Release() }()

	client := llm.NewAnthropicClient(
		viper.GetString("anthropic.api_key"),
		viper.GetString("anthropic.model"),
	)

	var dispatcher tool.Dispatcher
	if command := viper.GetString("tools.command"); command != "" {
		mcpDispatcher, err := tool.NewMCPDispatcher(ctx, command, viper.GetStringSlice("tools.args")...)
		if err != nil {
			return fmt.Errorf("connect tool backend: %w", err)
		}
		defer mcpDispatcher.Close()
		dispatcher = mcpDispatcher
	} else if len(role.Tools) > 0 {
		return fmt.Errorf("role %s needs a tool backend; set tools.command", role.Type)
	}

	events := bus.NewInMemory()
	events.Subscribe(func(evt bus.Event) {
		ui.VerboseLog("%s task=%v", evt.Name, evt.Payload["task_id"])
	})

	runner, err := agent.NewRunner(role, client, dispatcher, events, agent.DefaultConfig())
	if err != nil {
		return err
	}

	ui.Info("Running task %s (%s) as %s", output.Cyan(task.ID), task.Name, runRole)

	result, err := runner.Execute(ctx, task, agentCtx)
	if err != nil {
		return err
	}

	printResult(result)

	if !runNoSave {
		s, err := getStore()
		if err != nil {
			return err
		}
		record, err := s.SaveResult(ctx, result)
		if err != nil {
			return fmt.Errorf("journal result: %w", err)
		}
		ui.VerboseLog("journaled result %s", record.ID)
	}

	if !result.Success {
		return fmt.Errorf("task did not complete: %s", result.Reason)
	}
	return nil
}

// printResult renders one terminal run result.
func printResult(result *models.AgentTaskResult) {
	outcome := "failed"
	switch {
	case result.Success:
		outcome = "success"
	case result.Escalated:
		outcome = "escalated"
	}

	if result.Success {
		ui.Success("Task %s completed in %d iteration(s), %s", result.TaskID, result.Iterations, result.Duration.Round(timeRound))
	} else {
		ui.Error("Task %s %s: %s", result.TaskID, outcome, result.Reason)
	}

	table := ui.Table([]string{"OUTCOME", "ITER", "TOKENS", "DURATION", "FILES"})
	_ = table.Append([]string{
		output.OutcomeColor(outcome),
		fmt.Sprintf("%d", result.Iterations),
		fmt.Sprintf("%d", result.Usage.Total()),
		result.Duration.Round(timeRound).String(),
		fmt.Sprintf("%d", len(result.FilesChanged)),
	})
	_ = table.Render()

	for _, f := range result.FilesChanged {
		ui.VerboseLog("changed %s", f)
	}
}
