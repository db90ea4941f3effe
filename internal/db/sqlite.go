package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/imgajeed76/mojifix/internal/util"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the journal in a local SQLite file.
type SQLiteStore struct {
	conn *sql.DB
}

var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*PostgresStore)(nil)
)

const createRunsTable = `
CREATE TABLE IF NOT EXISTS mojifix_runs (
	id              TEXT PRIMARY KEY,
	path            TEXT NOT NULL,
	table_name      TEXT NOT NULL DEFAULT '',
	rules_applied   INTEGER NOT NULL,
	replacements    INTEGER NOT NULL,
	before_hash     TEXT NOT NULL,
	after_hash      TEXT NOT NULL,
	dry_run         INTEGER NOT NULL DEFAULT 0,
	created_at      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created ON mojifix_runs(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_runs_path ON mojifix_runs(path);
`

const createMetadataTable = `
CREATE TABLE IF NOT EXISTS mojifix_metadata (
	key     TEXT PRIMARY KEY,
	value   TEXT NOT NULL
);
`

// OpenSQLite opens (creating if needed) the journal file at dbPath.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, errors.New("empty sqlite path")
	}

	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows one writer at a time.
	conn.SetMaxOpenConns(1)

	return &SQLiteStore{conn: conn}, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// InitSchema creates the journal tables
func (s *SQLiteStore) InitSchema(ctx context.Context) error {
	if _, err := s.conn.ExecContext(ctx, createRunsTable); err != nil {
		return fmt.Errorf("failed to create runs schema: %w", err)
	}
	if _, err := s.conn.ExecContext(ctx, createMetadataTable); err != nil {
		return fmt.Errorf("failed to create metadata schema: %w", err)
	}
	return s.SetMetadata(ctx, MetaKeySchemaVersion, strconv.Itoa(SchemaVersion))
}

// RecordRun inserts one journal entry
func (s *SQLiteStore) RecordRun(ctx context.Context, r *Run) error {
	prepareRun(r)

	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO mojifix_runs (id, path, table_name, rules_applied, replacements, before_hash, after_hash, dry_run, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Path, r.Table, r.RulesApplied, r.Replacements,
		r.BeforeHash, r.AfterHash, boolToInt(r.DryRun), r.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to record run for %s: %w", r.Path, err)
	}
	return nil
}

// ListRuns returns the most recent runs first. limit <= 0 means no limit.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT id, path, table_name, rules_applied, replacements, before_hash, after_hash, dry_run, created_at
		FROM mojifix_runs
		ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r       Run
			dryRun  int
			created string
		)
		if err := rows.Scan(&r.ID, &r.Path, &r.Table, &r.RulesApplied, &r.Replacements,
			&r.BeforeHash, &r.AfterHash, &dryRun, &created); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.DryRun = dryRun != 0
		r.CreatedAt, err = parseTimestamp(created)
		if err != nil {
			// Rows edited by hand still carry their time in the ULID.
			idTime, idErr := util.RunTime(r.ID)
			if idErr != nil {
				return nil, fmt.Errorf("run %s: %w", r.ID, err)
			}
			r.CreatedAt = idTime.UTC()
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetMetadata retrieves a metadata value by key. A missing key returns "".
func (s *SQLiteStore) GetMetadata(ctx context.Context, key string) (string, error) {
	var value string
	err := s.conn.QueryRowContext(ctx, "SELECT value FROM mojifix_metadata WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetMetadata sets a metadata key-value pair (upsert)
func (s *SQLiteStore) SetMetadata(ctx context.Context, key, value string) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO mojifix_metadata (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// parseTimestamp accepts RFC 3339 and SQLite's datetime() format.
func parseTimestamp(ts string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, ts); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", ts)
}
