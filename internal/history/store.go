// Package history persists one record per conversion job in a local SQLite
// database so past runs can be reviewed with "aax2mp3 history".
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Status describes the terminal state of a conversion job.
type Status string

const (
	StatusDone   Status = "done"
	StatusFailed Status = "failed"
)

// Record is one completed (or failed) conversion job.
type Record struct {
	ID         string
	InputPath  string
	Title      string
	Author     string
	Format     string
	Status     Status
	Stage      string
	ErrorKind  string
	Error      string
	Chapters   int
	OutputDir  string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Store manages history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database and applies
// migrations.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) applyMigrations(ctx context.Context) error {
	const schema = `CREATE TABLE IF NOT EXISTS conversions (
        id TEXT PRIMARY KEY,
        input_path TEXT NOT NULL,
        title TEXT NOT NULL DEFAULT '',
        author TEXT NOT NULL DEFAULT '',
        format TEXT NOT NULL,
        status TEXT NOT NULL,
        stage TEXT NOT NULL DEFAULT '',
        error_kind TEXT NOT NULL DEFAULT '',
        error TEXT NOT NULL DEFAULT '',
        chapters INTEGER NOT NULL DEFAULT 0,
        output_dir TEXT NOT NULL DEFAULT '',
        started_at TEXT NOT NULL,
        finished_at TEXT NOT NULL
    )`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Add inserts a finished job record.
func (s *Store) Add(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (
            id, input_path, title, author, format, status, stage,
            error_kind, error, chapters, output_dir, started_at, finished_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.InputPath,
		rec.Title,
		rec.Author,
		rec.Format,
		string(rec.Status),
		rec.Stage,
		rec.ErrorKind,
		rec.Error,
		rec.Chapters,
		rec.OutputDir,
		rec.StartedAt.UTC().Format(time.RFC3339Nano),
		rec.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert history record: %w", err)
	}
	return nil
}

// Recent returns the most recent records, newest first. When failedOnly is
// set only failed jobs are returned.
func (s *Store) Recent(ctx context.Context, limit int, failedOnly bool) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, input_path, title, author, format, status, stage,
        error_kind, error, chapters, output_dir, started_at, finished_at
        FROM conversions`
	args := []any{}
	if failedOnly {
		query += " WHERE status = ?"
		args = append(args, string(StatusFailed))
	}
	query += " ORDER BY finished_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var status, startedAt, finishedAt string
		if err := rows.Scan(
			&rec.ID, &rec.InputPath, &rec.Title, &rec.Author, &rec.Format,
			&status, &rec.Stage, &rec.ErrorKind, &rec.Error, &rec.Chapters,
			&rec.OutputDir, &startedAt, &finishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan history record: %w", err)
		}
		rec.Status = Status(status)
		rec.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAt)
		rec.FinishedAt, _ = time.Parse(time.RFC3339Nano, finishedAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}
