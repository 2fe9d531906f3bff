package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleIdentities(t *testing.T) {
	assert.Equal(t, AgentCoder, CoderRole().Type)
	assert.Equal(t, AgentTester, TesterRole().Type)
	assert.Equal(t, AgentReviewer, ReviewerRole().Type)
	assert.Equal(t, AgentMerger, MergerRole().Type)
	assert.Equal(t, AgentMerger, ConflictResolverRole().Type)
}

func TestSystemPromptsAreTopical(t *testing.T) {
	cases := []struct {
		role  Role
		vocab []string
	}{
		{CoderRole(), []string{"software engineering", "implement"}},
		{TesterRole(), []string{"test", "suite"}},
		{ReviewerRole(), []string{"review", "read-only"}},
		{MergerRole(), []string{"merge", "conflict"}},
	}

	for _, tc := range cases {
		t.Run(string(tc.role.Type), func(t *testing.T) {
			assert.Greater(t, len(tc.role.SystemPrompt), 200, "prompt should be non-trivial")
			for _, word := range tc.vocab {
				assert.Contains(t, tc.role.SystemPrompt, word)
			}
		})
	}
}

func TestCoderTools(t *testing.T) {
	role := CoderRole()
	for _, name := range []string{ToolReadFile, ToolWriteFile, ToolEditFile, ToolRunCommand, ToolSearchCode} {
		assert.True(t, role.HasTool(name), name)
	}
}

func TestTesterTools(t *testing.T) {
	role := TesterRole()
	assert.True(t, role.HasTool(ToolReadFile))
	assert.True(t, role.HasTool(ToolWriteFile))
	assert.True(t, role.HasTool(ToolRunCommand))
	assert.False(t, role.HasTool(ToolEditFile), "tester has no edit tool")
	assert.False(t, role.HasTool(ToolSearchCode), "tester has no search tool")
}

func TestReviewerToolsAreReadOnly(t *testing.T) {
	role := ReviewerRole()
	assert.True(t, role.HasTool(ToolReadFile))
	assert.True(t, role.HasTool(ToolSearchCode))

	// Mutating tools are absent by construction, not merely unused.
	for _, name := range []string{ToolWriteFile, ToolEditFile, ToolRunCommand, ToolGitMerge} {
		assert.False(t, role.HasTool(name), name)
	}
}

func TestMergerTools(t *testing.T) {
	role := MergerRole()
	for _, name := range []string{ToolReadFile, ToolWriteFile, ToolGitDiff, ToolGitMerge, ToolGitStatus} {
		assert.True(t, role.HasTool(name), name)
	}

	resolver := ConflictResolverRole()
	assert.True(t, resolver.HasTool(ToolReadFile))
	assert.True(t, resolver.HasTool(ToolWriteFile))
	for _, name := range []string{ToolGitDiff, ToolGitMerge, ToolGitStatus, ToolRunCommand} {
		assert.False(t, resolver.HasTool(name), "resolver executes no git: %s", name)
	}
}

func TestCoderCompletion(t *testing.T) {
	role := CoderRole()
	assert.True(t, role.IsComplete("done\n"+CompletionMarker))
	assert.False(t, role.IsComplete("still working on it"))
	assert.False(t, role.IsComplete("tests complete"), "coder accepts only the marker")
}

func TestTesterCompletion(t *testing.T) {
	role := TesterRole()
	assert.True(t, role.IsComplete(CompletionMarker))
	assert.True(t, role.IsComplete("All tests complete."))
	assert.True(t, role.IsComplete("The test suite is complete and passing."))
	assert.False(t, role.IsComplete("writing more tests now"))
}

func TestReviewerCompletion(t *testing.T) {
	role := ReviewerRole()
	assert.True(t, role.IsComplete(`{"approved": true, "issues": [], "summary": "looks good"}`))
	assert.False(t, role.IsComplete("I will now review the changes"))
}

func TestMergerCompletion(t *testing.T) {
	role := MergerRole()

	t.Run("marker", func(t *testing.T) {
		assert.True(t, role.IsComplete(CompletionMarker))
	})

	t.Run("phrases", func(t *testing.T) {
		assert.True(t, role.IsComplete("All conflicts resolved."))
		assert.True(t, role.IsComplete("The merge is complete."))
	})

	t.Run("implicit JSON payload", func(t *testing.T) {
		reply := "Here is my report:\n```json\n{\"success\": true, \"conflicts\": []}\n```"
		assert.True(t, role.IsComplete(reply))
	})

	t.Run("JSON without required keys", func(t *testing.T) {
		assert.False(t, role.IsComplete(`{"approved": true}`))
	})

	t.Run("plain text", func(t *testing.T) {
		assert.False(t, role.IsComplete("inspecting the conflicting files"))
	})
}

func TestTestFileName(t *testing.T) {
	cases := map[string]string{
		"internal/agent/runner.go": "internal/agent/runner_test.go",
		"src/app.py":               "src/test_app.py",
		"web/App.tsx":              "web/App.test.tsx",
		"lib/util.js":              "lib/util.test.js",
		"app/models/user.rb":       "app/models/user_spec.rb",
		"src/main.rs":              "src/main_test.rs",
		"main.go":                  "main_test.go",
		"Makefile":                 "Makefile_test",
	}
	for source, want := range cases {
		assert.Equal(t, want, TestFileName(source), source)
	}
}

func TestNewFixTask(t *testing.T) {
	task := testTask()
	fix := NewFixTask(task, []string{"TestFoo fails", "missing nil check"})

	assert.Equal(t, "task-1-fix", fix.ID)
	assert.Equal(t, "Fix: Add retry logic", fix.Name)
	assert.Contains(t, fix.Description, "1. TestFoo fails")
	assert.Contains(t, fix.Description, "2. missing nil check")
	assert.Equal(t, task.Files, fix.Files)
	assert.Equal(t, []string{"task-1"}, fix.DependsOn)

	// Original task untouched.
	require.Equal(t, "task-1", task.ID)
	require.Equal(t, "Add retry logic", task.Name)
}
