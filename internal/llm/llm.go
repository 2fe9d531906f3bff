// Package llm defines the model-backend boundary the agent loop calls
// through, plus the Anthropic implementation used in production.
package llm

import (
	"context"

	"github.com/okheath/crew/internal/tool"
)

// Message roles used in a conversation.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ToolCall is one tool invocation requested by the model.
type ToolCall struct {
	ID        string
	Name      string
	Arguments map[string]any
}

// Message is one conversation entry. Assistant messages may carry tool calls;
// tool messages carry the matching call ID and the result payload.
type Message struct {
	Role       string
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
	IsError    bool
}

// Usage reports tokens consumed by one backend call.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// ChatRequest is one backend call: the full conversation so far plus the
// tool definitions the model may invoke.
type ChatRequest struct {
	System    string
	Messages  []Message
	Tools     []tool.Definition
	MaxTokens int
}

// ChatResponse is the model's reply to one ChatRequest.
type ChatResponse struct {
	Content      string
	ToolCalls    []ToolCall
	Usage        Usage
	FinishReason string
}

// Client is the model backend contract. Implementations must be safe for
// concurrent use by multiple runners.
type Client interface {
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
	CountTokens(ctx context.Context, text string) (int, error)
}
