// Package tool defines the boundary through which the agent loop asks an
// external backend to perform concrete actions (file I/O, command execution,
// git operations) on the model's behalf. The loop only ever sees tool names,
// argument maps, and results — never the implementations.
package tool

import (
	"context"
	"fmt"
)

// Definition describes one callable tool: its name, a description for the
// model, and a JSON-schema fragment for its arguments.
type Definition struct {
	Name        string
	Description string
	Properties  map[string]any
	Required    []string
}

// Call is one tool invocation requested by the model. Results are matched to
// calls by ID, never by position.
type Call struct {
	ID        string
	Name      string
	Arguments map[string]any
}

// Result is the outcome of one dispatched call.
type Result struct {
	CallID  string
	Content string
	IsError bool
}

// ExecutionError is a recoverable tool failure. The loop reports it back into
// the conversation as an error tool-result so the model can self-correct,
// unless the role marks the tool as critical.
type ExecutionError struct {
	Tool string
	Err  error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("tool %s: %v", e.Tool, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// NewExecutionError wraps err as a recoverable failure of the named tool.
func NewExecutionError(tool string, err error) *ExecutionError {
	return &ExecutionError{Tool: tool, Err: err}
}

// Dispatcher is the narrow contract the loop calls through. Implementations
// must be safe for concurrent use by multiple runners.
type Dispatcher interface {
	Execute(ctx context.Context, name string, args map[string]any) (*Result, error)
	ListAvailableTools(ctx context.Context) ([]Definition, error)
}
