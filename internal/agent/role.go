package agent

import (
	"strings"

	"github.com/okheath/crew/internal/models"
	"github.com/okheath/crew/internal/tool"
)

// AgentType identifies a role specialization.
type AgentType string

const (
	AgentCoder    AgentType = "coder"
	AgentTester   AgentType = "tester"
	AgentReviewer AgentType = "reviewer"
	AgentMerger   AgentType = "merger"
)

// CompletionMarker is the explicit line agents are instructed to emit when
// their task is finished.
const CompletionMarker = "TASK_COMPLETE"

// defaultContinuation nudges the model when a reply neither requests tools
// nor satisfies the completion predicate.
const defaultContinuation = "Continue working on the task. When you are finished, " +
	"state " + CompletionMarker + " on its own line."

// Role is the tagged configuration that specializes the generic loop. The
// loop is polymorphic over exactly these four capabilities: what the agent is
// told it is, which tools it may call, how its task prompt is built, and how
// completion is detected. Everything else is shared.
type Role struct {
	Type         AgentType
	SystemPrompt string

	// Tools is the allow-list forwarded to the model. Capability restriction
	// happens here by construction: a tool absent from this list cannot be
	// requested, regardless of what the dispatch backend offers.
	Tools []tool.Definition

	// CriticalTools name tools whose execution failure aborts the task
	// instead of being surfaced back to the model.
	CriticalTools map[string]bool

	// BuildTaskPrompt renders the initial user message for a task.
	BuildTaskPrompt func(task *models.Task, agentCtx *models.AgentContext) string

	// IsComplete decides, from a reply's text, whether the task is finished.
	// The predicate list is configuration, not a guaranteed-complete
	// definition of "done".
	IsComplete func(reply string) bool

	// Continuation is appended when a reply is neither tool use nor
	// completion. Empty falls back to the shared default.
	Continuation string
}

// continuation returns the role's continuation prompt or the shared default.
func (r Role) continuation() string {
	if r.Continuation != "" {
		return r.Continuation
	}
	return defaultContinuation
}

// HasTool reports whether the role's allow-list contains the named tool.
func (r Role) HasTool(name string) bool {
	for _, d := range r.Tools {
		if d.Name == name {
			return true
		}
	}
	return false
}

// containsMarker checks for the explicit completion marker.
func containsMarker(reply string) bool {
	return strings.Contains(reply, CompletionMarker)
}

// containsAnyPhrase checks for any of the phrases, case-insensitively.
func containsAnyPhrase(reply string, phrases []string) bool {
	lower := strings.ToLower(reply)
	for _, p := range phrases {
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
