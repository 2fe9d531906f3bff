package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Task is a single unit of work handed to an agent runner. It is immutable
// once passed to a runner; derived work (e.g. a fix pass) gets a new Task.
type Task struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description"`
	Files         []string `yaml:"files,omitempty"`
	VerifyCommand string   `yaml:"verify_command,omitempty"`
	WorkspacePath string   `yaml:"workspace_path,omitempty"`
	Criteria      []string `yaml:"criteria,omitempty"`
	DependsOn     []string `yaml:"depends_on,omitempty"`
}

// AgentContext is the execution-time environment for a task. Read-only input
// to prompt construction.
type AgentContext struct {
	ProjectID        string   `yaml:"project_id,omitempty"`
	FeatureID        string   `yaml:"feature_id,omitempty"`
	WorkingDir       string   `yaml:"working_dir"`
	RelevantFiles    []string `yaml:"relevant_files,omitempty"`
	PreviousAttempts []string `yaml:"previous_attempts,omitempty"`
}

// LoadTaskFile reads a task definition from a YAML file.
func LoadTaskFile(path string) (*Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read task file: %w", err)
	}

	var task Task
	if err := yaml.Unmarshal(data, &task); err != nil {
		return nil, fmt.Errorf("parse task file: %w", err)
	}

	if task.ID == "" {
		return nil, fmt.Errorf("task file %s: missing id", path)
	}
	if task.Name == "" && task.Description == "" {
		return nil, fmt.Errorf("task file %s: needs a name or description", path)
	}

	return &task, nil
}
