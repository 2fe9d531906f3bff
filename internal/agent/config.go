package agent

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config bounds one runner execution.
type Config struct {
	// MaxIterations caps the number of model round-trips per task.
	MaxIterations int
	// Timeout is the wall-clock deadline for the whole Execute call.
	Timeout time.Duration
	// MaxTokens is the per-call output token cap passed to the backend.
	MaxTokens int
}

// DefaultConfig returns the default runner config, reading from viper when
// available.
func DefaultConfig() Config {
	maxIterations := viper.GetInt("agent.max_iterations")
	if maxIterations <= 0 {
		maxIterations = 10
	}

	timeout := viper.GetDuration("agent.timeout")
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}

	maxTokens := viper.GetInt("agent.max_tokens")
	if maxTokens <= 0 {
		maxTokens = 8192
	}

	return Config{
		MaxIterations: maxIterations,
		Timeout:       timeout,
		MaxTokens:     maxTokens,
	}
}

// Validate rejects non-positive budgets instead of clamping them.
func (c Config) Validate() error {
	if c.MaxIterations <= 0 {
		return fmt.Errorf("max iterations must be positive, got %d", c.MaxIterations)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("max tokens must not be negative, got %d", c.MaxTokens)
	}
	return nil
}
