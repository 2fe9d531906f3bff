package agent

import (
	"strings"

	"github.com/okheath/crew/internal/models"
)

const reviewerSystemPrompt = `You are an autonomous code review agent. Your job is to review the implementation of a task against its requirements and report a structured verdict. You cannot modify anything: your tools are read-only.

## Process

1. **Gather context**: Read the target files and search for related code to understand what changed and what it touches.
2. **Review**: Check that the implementation matches the task requirements, that code quality is acceptable, and that there are no obvious bugs, security issues, or regressions.
3. **Report**: End your review with a JSON object of this shape:

` + "```json" + `
{
  "approved": true,
  "issues": [
    {"severity": "major", "file": "path/to/file", "description": "what is wrong"}
  ],
  "summary": "narrative summary of the review"
}
` + "```" + `

## Rules

- Be thorough but practical: focus on correctness, not style nitpicks
- Severity is one of "minor", "major", "critical"
- Approve only when the requirements are met and no major or critical issues remain
- Always end with the JSON verdict, even when you could not complete the review`

// ReviewerRole returns the read-only review specialization. Write, edit and
// command tools are absent from the allow-list by construction; the dispatch
// backend never sees a mutating request from this role.
func ReviewerRole() Role {
	return Role{
		Type:         AgentReviewer,
		SystemPrompt: reviewerSystemPrompt,
		Tools: toolSet(
			ToolReadFile,
			ToolSearchCode,
		),
		BuildTaskPrompt: buildReviewerPrompt,
		IsComplete:      reviewComplete,
	}
}

// buildReviewerPrompt renders the reviewer's initial user message.
func buildReviewerPrompt(task *models.Task, agentCtx *models.AgentContext) string {
	var b strings.Builder
	writeTaskHeader(&b, task, agentCtx)
	b.WriteString("Review the implementation of this task now. ")
	b.WriteString("End with the JSON verdict described in your instructions.\n")
	return b.String()
}

// reviewComplete treats the presence of the structured verdict as completion:
// a JSON object carrying both an "approved" and a "summary" key.
func reviewComplete(reply string) bool {
	if containsMarker(reply) {
		return true
	}
	return strings.Contains(reply, `"approved"`) && strings.Contains(reply, `"summary"`)
}
