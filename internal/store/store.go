// Package store is the caller-side result journal: orchestrators and the CLI
// persist terminal AgentTaskResults here. The runner itself never touches it.
package store

import (
	"context"
	"time"

	"github.com/okheath/crew/internal/models"
)

// ResultRecord is one journaled task result.
type ResultRecord struct {
	ID        string
	Result    models.AgentTaskResult
	CreatedAt time.Time
}

// ResultFilter narrows journal listings.
type ResultFilter struct {
	TaskID    string
	AgentType string
	Escalated bool
}

// Store is the persistence interface for the result journal.
type Store interface {
	SaveResult(ctx context.Context, result *models.AgentTaskResult) (*ResultRecord, error)
	GetResult(ctx context.Context, id string) (*ResultRecord, error)
	ListResults(ctx context.Context, filter ResultFilter, limit int) ([]*ResultRecord, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
