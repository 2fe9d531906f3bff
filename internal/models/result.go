package models

import "time"

// TokenUsage accumulates backend token consumption across a run.
type TokenUsage struct {
	InputTokens  int
	OutputTokens int
}

// Add accumulates another usage sample.
func (u *TokenUsage) Add(other TokenUsage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
}

// Total returns the combined token count.
func (u TokenUsage) Total() int {
	return u.InputTokens + u.OutputTokens
}

// AgentTaskResult is the terminal outcome of one runner execution. Built once
// at loop exit and never revised afterward. Escalated results are expected
// terminal states, not faults: the caller decides whether to re-plan, retry
// with more budget, or hand off to a human.
type AgentTaskResult struct {
	TaskID       string
	AgentType    string
	Success      bool
	Iterations   int
	Usage        TokenUsage
	Duration     time.Duration
	FilesChanged []string
	Output       string
	Escalated    bool
	Reason       string
}
