// Package storage provides the SQLite invocation log.
//
// Information Hiding:
// - SQLite connection management hidden behind the Log type
// - Schema details encapsulated
// - Thread-safe via sql.DB's built-in connection pooling
//
// The log records every suggested command together with whether it was
// executed and how it exited. It is never consulted when answering a
// request; it only feeds the `log` subcommand.

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Invocation is one logged suggestion.
type Invocation struct {
	ID        string
	CreatedAt time.Time
	Prompt    string
	Command   string
	Model     string
	Executed  bool
	ExitCode  int // meaningful only when Executed
}

// Log stores invocations in a SQLite database file.
type Log struct {
	db *sql.DB
}

// OpenLog opens or creates the invocation log at the given path.
// Creates parent directories if they don't exist.
func OpenLog(path string) (*Log, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open invocation log: %w", err)
	}

	l := &Log{db: db}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return l, nil
}

// NewLogInMemory creates an in-memory log (useful for testing).
func NewLogInMemory() (*Log, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory log: %w", err)
	}

	l := &Log{db: db}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return l, nil
}

// Close closes the database connection.
func (l *Log) Close() error {
	return l.db.Close()
}

func (l *Log) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS invocations (
			id TEXT PRIMARY KEY,
			created_at INTEGER NOT NULL,
			prompt TEXT NOT NULL,
			command TEXT NOT NULL,
			model TEXT NOT NULL,
			executed INTEGER NOT NULL DEFAULT 0,
			exit_code INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_invocations_created
		ON invocations(created_at DESC);
	`
	_, err := l.db.Exec(schema)
	return err
}

// Record stores a new suggestion and returns its id.
func (l *Log) Record(ctx context.Context, prompt, command, model string) (string, error) {
	id := uuid.NewString()
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO invocations (id, created_at, prompt, command, model) VALUES (?, ?, ?, ?, ?)`,
		id, time.Now().Unix(), prompt, command, model,
	)
	if err != nil {
		return "", fmt.Errorf("failed to record invocation: %w", err)
	}
	return id, nil
}

// MarkExecuted flags an invocation as executed with the command's exit code.
func (l *Log) MarkExecuted(ctx context.Context, id string, exitCode int) error {
	res, err := l.db.ExecContext(ctx,
		`UPDATE invocations SET executed = 1, exit_code = ? WHERE id = ?`,
		exitCode, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update invocation: %w", err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("no invocation with id %s", id)
	}
	return nil
}

// Recent returns up to limit invocations, most recent first.
func (l *Log) Recent(ctx context.Context, limit int) ([]Invocation, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, created_at, prompt, command, model, executed, exit_code
		 FROM invocations ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query invocations: %w", err)
	}
	defer rows.Close()

	var result []Invocation
	for rows.Next() {
		var inv Invocation
		var createdAt int64
		var executed int
		if err := rows.Scan(&inv.ID, &createdAt, &inv.Prompt, &inv.Command, &inv.Model, &executed, &inv.ExitCode); err != nil {
			return nil, fmt.Errorf("failed to scan invocation: %w", err)
		}
		inv.CreatedAt = time.Unix(createdAt, 0)
		inv.Executed = executed != 0
		result = append(result, inv)
	}
	return result, rows.Err()
}
