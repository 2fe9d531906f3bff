package agent

import (
	"fmt"
	"strings"

	"github.com/okheath/crew/internal/models"
)

// writeTaskHeader renders the sections every role's task prompt shares:
// task identity, description, target files, acceptance criteria, related
// work, and the execution context.
func writeTaskHeader(b *strings.Builder, task *models.Task, agentCtx *models.AgentContext) {
	fmt.Fprintf(b, "# Task: %s\n\n", task.Name)

	if task.Description != "" {
		b.WriteString(task.Description)
		b.WriteString("\n\n")
	}

	if len(task.Files) > 0 {
		b.WriteString("## Target Files\n")
		for _, f := range task.Files {
			fmt.Fprintf(b, "- %s\n", f)
		}
		b.WriteString("\n")
	}

	if task.VerifyCommand != "" {
		fmt.Fprintf(b, "## Verification\nRun `%s` to verify your work.\n\n", task.VerifyCommand)
	}

	if len(task.Criteria) > 0 {
		b.WriteString("## Acceptance Criteria\n")
		for _, c := range task.Criteria {
			fmt.Fprintf(b, "- %s\n", c)
		}
		b.WriteString("\n")
	}

	if len(task.DependsOn) > 0 {
		b.WriteString("## Related Work (for context)\n")
		for _, dep := range task.DependsOn {
			fmt.Fprintf(b, "- depends on task %s\n", dep)
		}
		b.WriteString("\n")
	}

	writeContextSection(b, agentCtx)
}

// writeContextSection renders the AgentContext block.
func writeContextSection(b *strings.Builder, agentCtx *models.AgentContext) {
	if agentCtx == nil {
		return
	}

	b.WriteString("## Context\n")
	if agentCtx.WorkingDir != "" {
		fmt.Fprintf(b, "- Working directory: %s\n", agentCtx.WorkingDir)
	}
	if agentCtx.ProjectID != "" {
		fmt.Fprintf(b, "- Project: %s\n", agentCtx.ProjectID)
	}
	if agentCtx.FeatureID != "" {
		fmt.Fprintf(b, "- Feature: %s\n", agentCtx.FeatureID)
	}
	if len(agentCtx.RelevantFiles) > 0 {
		b.WriteString("- Relevant files:\n")
		for _, f := range agentCtx.RelevantFiles {
			fmt.Fprintf(b, "  - %s\n", f)
		}
	}
	b.WriteString("\n")

	if len(agentCtx.PreviousAttempts) > 0 {
		b.WriteString("## Previous Attempts\n")
		b.WriteString("Earlier attempts at this task did not succeed:\n")
		for i, attempt := range agentCtx.PreviousAttempts {
			fmt.Fprintf(b, "%d. %s\n", i+1, attempt)
		}
		b.WriteString("\n")
	}
}

// writeCompletionInstruction renders the shared completion-marker footer.
func writeCompletionInstruction(b *strings.Builder) {
	fmt.Fprintf(b, "When the task is fully complete, state %s on its own line.\n", CompletionMarker)
}
