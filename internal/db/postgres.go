package db

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps the journal in a PostgreSQL database.
type PostgresStore struct {
	pool *pgxpool.Pool
	url  string
}

// ConnectPostgres opens a small connection pool. Journal writes are one
// row per file, so a handful of connections is plenty even with many workers.
func ConnectPostgres(ctx context.Context, url string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("invalid connection URL: %w", err)
	}

	config.MaxConns = 4
	config.MinConns = 0
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool, url: url}, nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}
	return nil
}

// InitSchema creates the journal tables
func (s *PostgresStore) InitSchema(ctx context.Context) error {
	sql := `
	CREATE TABLE IF NOT EXISTS mojifix_runs (
		id              TEXT PRIMARY KEY,
		path            TEXT NOT NULL,
		table_name      TEXT NOT NULL DEFAULT '',
		rules_applied   INTEGER NOT NULL,
		replacements    INTEGER NOT NULL,
		before_hash     TEXT NOT NULL,
		after_hash      TEXT NOT NULL,
		dry_run         BOOLEAN NOT NULL DEFAULT FALSE,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`
	if _, err := s.pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("failed to create mojifix_runs: %w", err)
	}

	_, _ = s.pool.Exec(ctx, "CREATE INDEX IF NOT EXISTS idx_runs_created ON mojifix_runs(created_at DESC)")
	_, _ = s.pool.Exec(ctx, "CREATE INDEX IF NOT EXISTS idx_runs_path ON mojifix_runs(path)")

	if _, err := s.pool.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS mojifix_metadata (
		key     TEXT PRIMARY KEY,
		value   TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("failed to create mojifix_metadata: %w", err)
	}

	return s.SetMetadata(ctx, MetaKeySchemaVersion, strconv.Itoa(SchemaVersion))
}

// RecordRun inserts one journal entry
func (s *PostgresStore) RecordRun(ctx context.Context, r *Run) error {
	prepareRun(r)

	sql := `
	INSERT INTO mojifix_runs (id, path, table_name, rules_applied, replacements, before_hash, after_hash, dry_run, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.pool.Exec(ctx, sql, r.ID, r.Path, r.Table, r.RulesApplied, r.Replacements,
		r.BeforeHash, r.AfterHash, r.DryRun, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record run for %s: %w", r.Path, err)
	}
	return nil
}

// ListRuns returns the most recent runs first. limit <= 0 means no limit.
func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	sql := `
	SELECT id, path, table_name, rules_applied, replacements, before_hash, after_hash, dry_run, created_at
	FROM mojifix_runs
	ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		sql += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Path, &r.Table, &r.RulesApplied, &r.Replacements,
			&r.BeforeHash, &r.AfterHash, &r.DryRun, &r.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetMetadata retrieves a metadata value by key. A missing key returns "".
func (s *PostgresStore) GetMetadata(ctx context.Context, key string) (string, error) {
	var value string
	err := s.pool.QueryRow(ctx, "SELECT value FROM mojifix_metadata WHERE key = $1", key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetMetadata sets a metadata key-value pair (upsert)
func (s *PostgresStore) SetMetadata(ctx context.Context, key, value string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO mojifix_metadata (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, key, value)
	return err
}
