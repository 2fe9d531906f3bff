package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/okheath/crew/internal/models"
)

func promptTask() *models.Task {
	return &models.Task{
		ID:            "task-9",
		Name:          "Add pagination",
		Description:   "List endpoints must support cursor pagination",
		Files:         []string{"internal/api/list.go", "internal/api/cursor.go"},
		VerifyCommand: "make test",
		Criteria:      []string{"cursor survives restarts", "page size capped at 100"},
		DependsOn:     []string{"task-7"},
	}
}

func promptContext() *models.AgentContext {
	return &models.AgentContext{
		ProjectID:        "proj-1",
		WorkingDir:       "/work/task-9",
		RelevantFiles:    []string{"internal/api/api.go"},
		PreviousAttempts: []string{"attempt 1: pagination broke ordering"},
	}
}

func TestBuildCoderPrompt(t *testing.T) {
	prompt := buildCoderPrompt(promptTask(), promptContext())

	assert.Contains(t, prompt, "Add pagination")
	assert.Contains(t, prompt, "cursor pagination")
	assert.Contains(t, prompt, "internal/api/list.go")
	assert.Contains(t, prompt, "make test")
	assert.Contains(t, prompt, "page size capped at 100")
	assert.Contains(t, prompt, "depends on task task-7")
	assert.Contains(t, prompt, "/work/task-9")
	assert.Contains(t, prompt, "internal/api/api.go")
	assert.Contains(t, prompt, "Previous Attempts")
	assert.Contains(t, prompt, "pagination broke ordering")
	assert.Contains(t, prompt, CompletionMarker)
}

func TestBuildCoderPrompt_MinimalTask(t *testing.T) {
	task := &models.Task{ID: "t", Name: "Tiny change"}
	prompt := buildCoderPrompt(task, nil)

	assert.Contains(t, prompt, "Tiny change")
	assert.NotContains(t, prompt, "Target Files")
	assert.NotContains(t, prompt, "Acceptance Criteria")
	assert.NotContains(t, prompt, "Previous Attempts")
}

func TestBuildTesterPrompt_SuggestsTestFiles(t *testing.T) {
	prompt := buildTesterPrompt(promptTask(), promptContext())

	assert.Contains(t, prompt, "Suggested Test Files")
	assert.Contains(t, prompt, "internal/api/list_test.go")
	assert.Contains(t, prompt, "internal/api/cursor_test.go")
	assert.Contains(t, prompt, "cursor survives restarts")
}

func TestBuildReviewerPrompt(t *testing.T) {
	prompt := buildReviewerPrompt(promptTask(), promptContext())

	assert.Contains(t, prompt, "Review")
	assert.Contains(t, prompt, "JSON verdict")
	assert.Contains(t, prompt, "Add pagination")
}

func TestBuildMergerPrompt(t *testing.T) {
	prompt := buildMergerPrompt(promptTask(), promptContext())

	assert.Contains(t, prompt, "Classify every conflict")
	assert.Contains(t, prompt, "Add pagination")
}
