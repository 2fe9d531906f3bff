package agent

import (
	"fmt"
	"strings"

	"github.com/okheath/crew/internal/models"
)

const coderSystemPrompt = `You are an autonomous software engineering agent. Your job is to implement the assigned task by reading the relevant code, writing or editing files, and verifying your changes.

## Process

1. **Understand**: Read the target files and search the codebase for the patterns the change must follow.
2. **Implement**: Write or edit code to satisfy the task. Prefer small, focused edits over wholesale rewrites.
3. **Verify**: Run the build and any verification command after writing. Fix what breaks.

## Rules

- Always read a file before writing or editing it
- Follow the existing code style and project patterns
- Do not touch files unrelated to the task
- State ` + CompletionMarker + ` on its own line only when the implementation is complete and verified`

// CoderRole returns the code-generation specialization: the full read/write/
// edit/run/search tool set and marker-based completion.
func CoderRole() Role {
	return Role{
		Type:         AgentCoder,
		SystemPrompt: coderSystemPrompt,
		Tools: toolSet(
			ToolReadFile,
			ToolWriteFile,
			ToolEditFile,
			ToolRunCommand,
			ToolSearchCode,
		),
		BuildTaskPrompt: buildCoderPrompt,
		IsComplete:      containsMarker,
	}
}

// buildCoderPrompt renders the coder's initial user message.
func buildCoderPrompt(task *models.Task, agentCtx *models.AgentContext) string {
	var b strings.Builder
	writeTaskHeader(&b, task, agentCtx)
	b.WriteString("Implement this task now. Read the relevant files before making changes, ")
	b.WriteString("and run the build after writing.\n")
	writeCompletionInstruction(&b)
	return b.String()
}

// NewFixTask derives a follow-up task from a list of reported errors, e.g.
// after a downstream quality gate fails. The original task is not mutated.
func NewFixTask(task *models.Task, errs []string) *models.Task {
	var b strings.Builder
	fmt.Fprintf(&b, "Fix the following issues reported against task %q:\n\n", task.Name)
	for i, e := range errs {
		fmt.Fprintf(&b, "%d. %s\n", i+1, e)
	}

	return &models.Task{
		ID:            task.ID + "-fix",
		Name:          "Fix: " + task.Name,
		Description:   b.String(),
		Files:         task.Files,
		VerifyCommand: task.VerifyCommand,
		WorkspacePath: task.WorkspacePath,
		Criteria:      task.Criteria,
		DependsOn:     []string{task.ID},
	}
}
