package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTaskFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "task.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadTaskFile(t *testing.T) {
	path := writeTaskFile(t, `
id: task-42
name: Add caching
description: Cache expensive lookups
files:
  - internal/cache/cache.go
verify_command: make test
criteria:
  - cache hit ratio is observable
depends_on:
  - task-41
`)

	task, err := LoadTaskFile(path)
	require.NoError(t, err)

	assert.Equal(t, "task-42", task.ID)
	assert.Equal(t, "Add caching", task.Name)
	assert.Equal(t, "Cache expensive lookups", task.Description)
	assert.Equal(t, []string{"internal/cache/cache.go"}, task.Files)
	assert.Equal(t, "make test", task.VerifyCommand)
	assert.Equal(t, []string{"cache hit ratio is observable"}, task.Criteria)
	assert.Equal(t, []string{"task-41"}, task.DependsOn)
}

func TestLoadTaskFile_MissingID(t *testing.T) {
	path := writeTaskFile(t, "name: No ID here\n")
	_, err := LoadTaskFile(path)
	assert.ErrorContains(t, err, "missing id")
}

func TestLoadTaskFile_Empty(t *testing.T) {
	path := writeTaskFile(t, "id: task-1\n")
	_, err := LoadTaskFile(path)
	assert.ErrorContains(t, err, "name or description")
}

func TestLoadTaskFile_NotFound(t *testing.T) {
	_, err := LoadTaskFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadTaskFile_BadYAML(t *testing.T) {
	path := writeTaskFile(t, "id: [unclosed\n")
	_, err := LoadTaskFile(path)
	assert.Error(t, err)
}

func TestTokenUsage(t *testing.T) {
	var u TokenUsage
	u.Add(TokenUsage{InputTokens: 100, OutputTokens: 20})
	u.Add(TokenUsage{InputTokens: 50, OutputTokens: 5})

	assert.Equal(t, 150, u.InputTokens)
	assert.Equal(t, 25, u.OutputTokens)
	assert.Equal(t, 175, u.Total())
}
