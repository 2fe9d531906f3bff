package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okheath/crew/internal/tool"
)

func TestToMessageParams(t *testing.T) {
	messages := []Message{
		{Role: RoleSystem, Content: "you are helpful"},
		{Role: RoleUser, Content: "do the task"},
		{Role: RoleAssistant, Content: "reading first", ToolCalls: []ToolCall{
			{ID: "tu_1", Name: "read_file", Arguments: map[string]any{"path": "a.go"}},
		}},
		{Role: RoleTool, ToolCallID: "tu_1", Content: "package main"},
		{Role: RoleAssistant, Content: "done"},
	}

	params := toMessageParams(messages)

	// System messages travel on the request, not in the message list; the
	// tool result becomes a user turn per the Messages API.
	require.Len(t, params, 4)
	assert.Equal(t, "user", string(params[0].Role))
	assert.Equal(t, "assistant", string(params[1].Role))
	assert.Equal(t, "user", string(params[2].Role))
	assert.Equal(t, "assistant", string(params[3].Role))

	// Assistant turn carries both the text and the tool_use block.
	assert.Len(t, params[1].Content, 2)
}

func TestToMessageParams_SkipsEmptyAssistant(t *testing.T) {
	params := toMessageParams([]Message{
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: ""},
	})
	assert.Len(t, params, 1)
}

func TestToToolParams(t *testing.T) {
	defs := []tool.Definition{
		{
			Name:        "write_file",
			Description: "Create or overwrite a file.",
			Properties: map[string]any{
				"path": map[string]any{"type": "string"},
			},
			Required: []string{"path"},
		},
	}

	params := toToolParams(defs)
	require.Len(t, params, 1)
	require.NotNil(t, params[0].OfTool)
	assert.Equal(t, "write_file", params[0].OfTool.Name)
	assert.Equal(t, []string{"path"}, params[0].OfTool.InputSchema.Required)
}

func TestNewAnthropicClient(t *testing.T) {
	c := NewAnthropicClient("test-key", "claude-sonnet-4-5-20250929")
	require.NotNil(t, c)
	assert.Equal(t, "claude-sonnet-4-5-20250929", string(c.model))
}
