package agent

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := Config{MaxIterations: 10, Timeout: time.Minute, MaxTokens: 4096}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("zero iterations", func(t *testing.T) {
		cfg := Config{MaxIterations: 0, Timeout: time.Minute}
		assert.Error(t, cfg.Validate())
	})

	t.Run("negative iterations", func(t *testing.T) {
		cfg := Config{MaxIterations: -1, Timeout: time.Minute}
		assert.Error(t, cfg.Validate())
	})

	t.Run("zero timeout", func(t *testing.T) {
		cfg := Config{MaxIterations: 10, Timeout: 0}
		assert.Error(t, cfg.Validate())
	})

	t.Run("negative max tokens", func(t *testing.T) {
		cfg := Config{MaxIterations: 10, Timeout: time.Minute, MaxTokens: -1}
		assert.Error(t, cfg.Validate())
	})
}

func TestDefaultConfig(t *testing.T) {
	t.Run("fallback defaults", func(t *testing.T) {
		viper.Reset()
		cfg := DefaultConfig()
		assert.Equal(t, 10, cfg.MaxIterations)
		assert.Equal(t, 5*time.Minute, cfg.Timeout)
		assert.Equal(t, 8192, cfg.MaxTokens)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("reads viper overrides", func(t *testing.T) {
		viper.Reset()
		defer viper.Reset()
		viper.Set("agent.max_iterations", 25)
		viper.Set("agent.timeout", "90s")

		cfg := DefaultConfig()
		assert.Equal(t, 25, cfg.MaxIterations)
		assert.Equal(t, 90*time.Second, cfg.Timeout)
	})
}
