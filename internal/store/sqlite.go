package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/okheath/crew/internal/models"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore implements Store using modernc.org/sqlite (pure Go, no CGO).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Ensure parent directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite only supports one concurrent writer. Limiting to a single
	// connection serializes all DB access through Go's connection pool, so
	// concurrent runners saving results never hit "database is locked".
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// newULID generates a new ULID string.
func newULID() string {
	entropy := rand.New(rand.NewSource(time.Now().UnixNano()))
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulid.Monotonic(entropy, 0)).String()
}

// Migrate runs all embedded SQL migration files in order.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		filename TEXT PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT (datetime('now'))
	)`)
	if err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()

		var count int
		err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations WHERE filename = ?", name).Scan(&count)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", name, err)
		}
		if count > 0 {
			continue
		}

		data, err := migrationsFS.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}

		if _, err := s.db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}

		if _, err := s.db.ExecContext(ctx, "INSERT INTO schema_migrations (filename) VALUES (?)", name); err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// boolToInt converts a bool to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// SaveResult journals a terminal task result and returns the record.
func (s *SQLiteStore) SaveResult(ctx context.Context, result *models.AgentTaskResult) (*ResultRecord, error) {
	if result == nil {
		return nil, fmt.Errorf("save result: nil result")
	}

	files, err := json.Marshal(result.FilesChanged)
	if err != nil {
		return nil, fmt.Errorf("marshal files changed: %w", err)
	}

	record := &ResultRecord{
		ID:        newULID(),
		Result:    *result,
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx, `INSERT INTO task_results
		(id, task_id, agent_type, success, iterations, input_tokens, output_tokens,
		 duration_ms, files_changed, output, escalated, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		result.TaskID,
		result.AgentType,
		boolToInt(result.Success),
		result.Iterations,
		result.Usage.InputTokens,
		result.Usage.OutputTokens,
		result.Duration.Milliseconds(),
		string(files),
		result.Output,
		boolToInt(result.Escalated),
		result.Reason,
		record.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert result: %w", err)
	}

	return record, nil
}

// GetResult fetches one journaled result by record ID.
func (s *SQLiteStore) GetResult(ctx context.Context, id string) (*ResultRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, task_id, agent_type, success, iterations,
		input_tokens, output_tokens, duration_ms, files_changed, output, escalated, reason, created_at
		FROM task_results WHERE id = ?`, id)

	record, err := scanResult(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("result not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get result: %w", err)
	}
	return record, nil
}

// ListResults returns journaled results, newest first.
func (s *SQLiteStore) ListResults(ctx context.Context, filter ResultFilter, limit int) ([]*ResultRecord, error) {
	query := `SELECT id, task_id, agent_type, success, iterations, input_tokens, output_tokens,
		duration_ms, files_changed, output, escalated, reason, created_at FROM task_results`

	var conds []string
	var args []any
	if filter.TaskID != "" {
		conds = append(conds, "task_id = ?")
		args = append(args, filter.TaskID)
	}
	if filter.AgentType != "" {
		conds = append(conds, "agent_type = ?")
		args = append(args, filter.AgentType)
	}
	if filter.Escalated {
		conds = append(conds, "escalated = 1")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	query += " ORDER BY created_at DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var records []*ResultRecord
	for rows.Next() {
		record, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for scanResult.
type scanner interface {
	Scan(dest ...any) error
}

func scanResult(row scanner) (*ResultRecord, error) {
	var (
		record     ResultRecord
		success    int
		escalated  int
		durationMS int64
		files      string
	)

	err := row.Scan(
		&record.ID,
		&record.Result.TaskID,
		&record.Result.AgentType,
		&success,
		&record.Result.Iterations,
		&record.Result.Usage.InputTokens,
		&record.Result.Usage.OutputTokens,
		&durationMS,
		&files,
		&record.Result.Output,
		&escalated,
		&record.Result.Reason,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Result.Success = success == 1
	record.Result.Escalated = escalated == 1
	record.Result.Duration = time.Duration(durationMS) * time.Millisecond

	if files != "" {
		if err := json.Unmarshal([]byte(files), &record.Result.FilesChanged); err != nil {
			return nil, fmt.Errorf("unmarshal files changed: %w", err)
		}
	}

	return &record, nil
}
