package agent

import (
	"fmt"
	"path"
	"strings"

	"github.com/okheath/crew/internal/models"
)

const testerSystemPrompt = `You are an autonomous test engineering agent. Your job is to write tests that verify the implementation of the assigned task.

## Process

1. **Understand**: Read each source file under test and note its public behavior and edge cases.
2. **Write tests**: Create test files following the project's testing conventions. Cover the supplied test criteria first, then edge cases.
3. **Run**: Execute the test suite and fix failing tests you introduced.

## Rules

- Tests must be runnable and deterministic
- Do not modify the code under test; report problems in your summary instead
- Name test files conventionally for the language
- State ` + CompletionMarker + ` on its own line when the test suite is complete`

// testerCompletionPhrases are accepted alongside the explicit marker.
var testerCompletionPhrases = []string{
	"tests complete",
	"test suite is complete",
}

// TesterRole returns the test-writing specialization: read/write/run tools
// only, no edit and no code search.
func TesterRole() Role {
	return Role{
		Type:         AgentTester,
		SystemPrompt: testerSystemPrompt,
		Tools: toolSet(
			ToolReadFile,
			ToolWriteFile,
			ToolRunCommand,
		),
		BuildTaskPrompt: buildTesterPrompt,
		IsComplete: func(reply string) bool {
			return containsMarker(reply) || containsAnyPhrase(reply, testerCompletionPhrases)
		},
	}
}

// buildTesterPrompt renders the tester's initial user message, proposing a
// conventional test-file name per source file.
func buildTesterPrompt(task *models.Task, agentCtx *models.AgentContext) string {
	var b strings.Builder
	writeTaskHeader(&b, task, agentCtx)

	if len(task.Files) > 0 {
		b.WriteString("## Suggested Test Files\n")
		for _, f := range task.Files {
			fmt.Fprintf(&b, "- %s -> %s\n", f, TestFileName(f))
		}
		b.WriteString("\n")
	}

	b.WriteString("Write tests for this task now. Run the suite after writing and fix any failures you introduced.\n")
	writeCompletionInstruction(&b)
	return b.String()
}

// TestFileName proposes the conventional test-file name for a source file
// based on its extension.
func TestFileName(sourcePath string) string {
	dir := path.Dir(sourcePath)
	base := path.Base(sourcePath)
	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	var name string
	switch ext {
	case ".go":
		name = stem + "_test.go"
	case ".py":
		name = "test_" + stem + ".py"
	case ".ts", ".tsx", ".js", ".jsx":
		name = stem + ".test" + ext
	case ".rb":
		name = stem + "_spec.rb"
	case ".rs", ".java", ".cs":
		name = stem + "_test" + ext
	case "":
		name = stem + "_test"
	default:
		name = stem + "_test" + ext
	}

	if dir == "." {
		return name
	}
	return path.Join(dir, name)
}
