// Package agent implements the bounded task-execution loop that drives one
// task to a terminal result through repeated model calls and tool dispatch,
// and the role configurations that specialize it.
package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okheath/crew/internal/bus"
	"github.com/okheath/crew/internal/llm"
	"github.com/okheath/crew/internal/models"
	"github.com/okheath/crew/internal/tool"
)

// Runner drives one task at a time through the generic execution loop.
// A runner is stateless between Execute calls; multiple runners may run
// concurrently as long as the dispatcher and bus tolerate it.
type Runner struct {
	role       Role
	client     llm.Client
	dispatcher tool.Dispatcher
	events     bus.Bus
	cfg        Config
}

// nopBus swallows events when no bus is injected.
type nopBus struct{}

func (nopBus) Emit(string, map[string]any) {}

// NewRunner builds a role-configured runner. The dispatcher may be nil only
// for roles with an empty tool allow-list.
func NewRunner(role Role, client llm.Client, dispatcher tool.Dispatcher, events bus.Bus, cfg Config) (*Runner, error) {
	if client == nil {
		return nil, fmt.Errorf("runner needs a model client")
	}
	if dispatcher == nil && len(role.Tools) > 0 {
		return nil, fmt.Errorf("role %s has tools but no dispatcher", role.Type)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid runner config: %w", err)
	}
	if events == nil {
		events = nopBus{}
	}

	return &Runner{
		role:       role,
		client:     client,
		dispatcher: dispatcher,
		events:     events,
		cfg:        cfg,
	}, nil
}

// AgentType identifies the runner's role.
func (r *Runner) AgentType() AgentType {
	return r.role.Type
}

// Execute drives the task to a terminal result. Budget exhaustion, deadline
// expiry and cancellation all come back as escalated results, never as
// errors; the error return is reserved for unusable input. The task and
// context are borrowed for the duration of the call and never mutated.
func (r *Runner) Execute(ctx context.Context, task *models.Task, agentCtx *models.AgentContext) (*models.AgentTaskResult, error) {
	if task == nil {
		return nil, fmt.Errorf("execute: nil task")
	}

	start := time.Now()
	cctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	conv := &Conversation{}
	conv.AppendUser(r.role.BuildTaskPrompt(task, agentCtx))

	r.events.Emit(bus.EventAgentStarted, map[string]any{
		"task_id":    task.ID,
		"agent_type": string(r.role.Type),
	})

	var (
		usage      models.TokenUsage
		files      = newPathSet()
		iterations int
		output     string
		completed  bool
		fatal      string
	)

loop:
	for iterations < r.cfg.MaxIterations {
		if cctx.Err() != nil {
			break
		}
		iterations++

		req := &llm.ChatRequest{
			System:    r.role.SystemPrompt,
			Messages:  conv.Messages(),
			Tools:     r.role.Tools,
			MaxTokens: r.cfg.MaxTokens,
		}

		resp, err := r.chatWithRetry(cctx, req)
		if err != nil {
			if cctx.Err() != nil {
				break
			}
			fatal = fmt.Sprintf("model call failed after retry: %v", err)
			break
		}

		usage.Add(models.TokenUsage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
		})
		conv.Append(llm.Message{
			Role:      llm.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		if len(resp.ToolCalls) > 0 {
			for _, call := range resp.ToolCalls {
				res, err := r.dispatcher.Execute(cctx, call.Name, call.Arguments)
				if err != nil {
					if cctx.Err() != nil {
						break loop
					}
					if r.role.CriticalTools[call.Name] {
						fatal = fmt.Sprintf("critical tool %s failed: %v", call.Name, err)
						break loop
					}
					// Recoverable: the model sees the failure and can
					// self-correct on the next round.
					conv.AppendToolResult(call.ID, err.Error(), true)
					continue
				}
				conv.AppendToolResult(call.ID, res.Content, false)
				if writeTools[call.Name] {
					files.add(pathArgument(call.Arguments))
				}
			}
			// The tool round rides on the iteration counted above.
			continue
		}

		output = resp.Content
		if r.role.IsComplete(resp.Content) {
			completed = true
			break
		}
		if iterations < r.cfg.MaxIterations {
			conv.AppendUser(r.role.continuation())
		}
	}

	result := &models.AgentTaskResult{
		TaskID:       task.ID,
		AgentType:    string(r.role.Type),
		Iterations:   iterations,
		Usage:        usage,
		Duration:     time.Since(start),
		FilesChanged: files.list(),
		Output:       output,
	}

	switch {
	case completed:
		result.Success = true
	case fatal != "":
		// Infrastructure failure, not task difficulty: distinguishable
		// from an escalation by the unset flag.
		result.Reason = fatal
	case cctx.Err() != nil:
		result.Escalated = true
		if errors.Is(cctx.Err(), context.DeadlineExceeded) {
			result.Reason = fmt.Sprintf("task timed out after %s", r.cfg.Timeout)
		} else {
			result.Reason = "task cancelled"
		}
	default:
		result.Escalated = true
		result.Reason = fmt.Sprintf("reached maximum iterations (%d) without completion", r.cfg.MaxIterations)
	}

	r.emitTerminal(result)
	return result, nil
}

// FixIssues derives a fix task from reported errors and executes it. Used
// after a downstream quality gate reports failures against a completed task.
func (r *Runner) FixIssues(ctx context.Context, task *models.Task, agentCtx *models.AgentContext, errs []string) (*models.AgentTaskResult, error) {
	if task == nil {
		return nil, fmt.Errorf("fix issues: nil task")
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("fix issues: no errors reported")
	}
	return r.Execute(ctx, NewFixTask(task, errs), agentCtx)
}

// chatWithRetry performs one model call with a single same-iteration retry
// on transient failure. A second consecutive failure is returned to the
// caller, which treats it as fatal.
func (r *Runner) chatWithRetry(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	resp, err := r.client.Chat(ctx, req)
	if err == nil {
		return resp, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}
	return r.client.Chat(ctx, req)
}

// emitTerminal sends exactly one terminal notification for the run.
func (r *Runner) emitTerminal(result *models.AgentTaskResult) {
	payload := map[string]any{
		"task_id":       result.TaskID,
		"agent_type":    result.AgentType,
		"success":       result.Success,
		"iterations":    result.Iterations,
		"duration_ms":   result.Duration.Milliseconds(),
		"tokens":        result.Usage.Total(),
		"files_changed": len(result.FilesChanged),
	}
	if result.Success {
		r.events.Emit(bus.EventTaskCompleted, payload)
		return
	}
	payload["reason"] = result.Reason
	r.events.Emit(bus.EventTaskEscalated, payload)
}

// pathSet is an insertion-ordered set of file paths.
type pathSet struct {
	seen  map[string]bool
	paths []string
}

func newPathSet() *pathSet {
	return &pathSet{seen: map[string]bool{}}
}

func (s *pathSet) add(path string) {
	if path == "" || s.seen[path] {
		return
	}
	s.seen[path] = true
	s.paths = append(s.paths, path)
}

func (s *pathSet) list() []string {
	return s.paths
}

// pathArgument extracts the file path from a write tool's arguments.
func pathArgument(args map[string]any) string {
	for _, key := range []string{"path", "file_path"} {
		if v, ok := args[key].(string); ok {
			return v
		}
	}
	return ""
}
