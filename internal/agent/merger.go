package agent

import (
	"strings"

	"github.com/okheath/crew/internal/merge"
	"github.com/okheath/crew/internal/models"
)

const mergerSystemPrompt = `You are an autonomous merge resolution agent. Your job is to resolve branch-merge conflicts safely: classify every conflict before proposing resolutions, resolve what can be resolved mechanically, and flag everything else for human review.

## Process

1. **Inspect**: Examine the conflicting files and the changes on each side.
2. **Classify**: For every conflict, determine its type (content, rename, delete-modify, semantic, dependency) and severity (simple, moderate, complex, critical).
3. **Resolve**: Propose a resolution per conflict — "ours", "theirs", "merge" with merged content, or "manual" when a human must decide.
4. **Report**: End with a JSON object of this shape:

` + "```json" + `
{
  "success": true,
  "conflicts": [
    {
      "file": "path/to/file",
      "type": "content",
      "severity": "simple",
      "description": "both sides edited the same function",
      "ours_summary": "what our side changed",
      "theirs_summary": "what their side changed",
      "needs_manual_review": false
    }
  ],
  "resolutions": [
    {"file": "path/to/file", "strategy": "merge", "resolved_content": "...", "explanation": "why"}
  ],
  "unresolved_count": 0,
  "summary": "overall merge summary",
  "requires_human_review": false
}
` + "```" + `

## Rules

- Classify every conflict before proposing any resolution
- Never guess at semantic conflicts: mark them needs_manual_review
- delete-modify conflicts always require human review
- Resolved content must be complete file content, not a fragment`

// mergerCompletionPhrases are accepted alongside the marker and the
// structured payload.
var mergerCompletionPhrases = []string{
	"merge complete",
	"merge is complete",
	"all conflicts resolved",
	"merge resolution complete",
}

// MergerRole returns the branch-merge specialization with git inspection
// tools available for dispatch.
func MergerRole() Role {
	return Role{
		Type:         AgentMerger,
		SystemPrompt: mergerSystemPrompt,
		Tools: toolSet(
			ToolReadFile,
			ToolWriteFile,
			ToolGitDiff,
			ToolGitMerge,
			ToolGitStatus,
		),
		BuildTaskPrompt: buildMergerPrompt,
		IsComplete:      mergeComplete,
	}
}

// ConflictResolverRole returns the conflict-resolution specialization: no
// git execution at all, only read/write plus the decision engine applied to
// the reply. Conflict detection happened upstream; this role only decides.
func ConflictResolverRole() Role {
	role := MergerRole()
	role.Tools = toolSet(
		ToolReadFile,
		ToolWriteFile,
	)
	return role
}

// buildMergerPrompt renders the merger's initial user message.
func buildMergerPrompt(task *models.Task, agentCtx *models.AgentContext) string {
	var b strings.Builder
	writeTaskHeader(&b, task, agentCtx)
	b.WriteString("Resolve the merge conflicts for this task now. Classify every conflict ")
	b.WriteString("before proposing resolutions, and end with the JSON report described in your instructions.\n")
	return b.String()
}

// mergeComplete accepts the marker, merge-specific phrases, or a
// structurally recognizable merge report. The report counts as implicit
// completion even without the marker.
func mergeComplete(reply string) bool {
	if containsMarker(reply) {
		return true
	}
	if containsAnyPhrase(reply, mergerCompletionPhrases) {
		return true
	}
	return merge.ContainsOutput(reply)
}
