package agent

import "github.com/okheath/crew/internal/llm"

// Conversation is the append-only message log for one task execution. It
// starts empty per task and is never mutated in place; every runner state
// change is a new appended message.
type Conversation struct {
	messages []llm.Message
}

// Append adds a message to the end of the log.
func (c *Conversation) Append(m llm.Message) {
	c.messages = append(c.messages, m)
}

// AppendUser appends a plain user message.
func (c *Conversation) AppendUser(content string) {
	c.Append(llm.Message{Role: llm.RoleUser, Content: content})
}

// AppendToolResult appends one tool-result message matched to its call by ID.
func (c *Conversation) AppendToolResult(callID, content string, isError bool) {
	c.Append(llm.Message{
		Role:       llm.RoleTool,
		ToolCallID: callID,
		Content:    content,
		IsError:    isError,
	})
}

// Messages returns the log in append order. The returned slice is shared;
// callers must treat it as read-only.
func (c *Conversation) Messages() []llm.Message {
	return c.messages
}

// Len reports the number of messages.
func (c *Conversation) Len() int {
	return len(c.messages)
}
