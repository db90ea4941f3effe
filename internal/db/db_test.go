package db

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/imgajeed76/mojifix/internal/util"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal", "runs.db")

	store, err := Open(context.Background(), "sqlite:"+path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	s, ok := store.(*SQLiteStore)
	if !ok {
		t.Fatalf("Open(sqlite:) returned %T", store)
	}
	return s
}

func TestOpenSQLiteCreatesSchema(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	v, err := s.GetMetadata(ctx, MetaKeySchemaVersion)
	if err != nil {
		t.Fatalf("GetMetadata: %v", err)
	}
	if v != "1" {
		t.Errorf("schema_version = %q, want 1", v)
	}

	// InitSchema is idempotent
	if err := s.InitSchema(ctx); err != nil {
		t.Fatalf("second InitSchema: %v", err)
	}

	missing, err := s.GetMetadata(ctx, "nope")
	if err != nil || missing != "" {
		t.Errorf("missing key = %q, %v", missing, err)
	}
}

func TestRecordAndListRuns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	runs := []*Run{
		{Path: "app/page.tsx", Table: "built-in", RulesApplied: 3, Replacements: 7, BeforeHash: "aa", AfterHash: "bb", CreatedAt: base},
		{Path: "app/layout.tsx", Table: "built-in", BeforeHash: "cc", AfterHash: "cc", DryRun: true, CreatedAt: base.Add(time.Minute)},
		{Path: "lib/data.ts", Table: "custom.toml", RulesApplied: 1, Replacements: 1, BeforeHash: "dd", AfterHash: "ee", CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, r := range runs {
		if err := s.RecordRun(ctx, r); err != nil {
			t.Fatalf("RecordRun(%s): %v", r.Path, err)
		}
		if r.ID == "" {
			t.Fatalf("RecordRun did not assign an ID to %s", r.Path)
		}
	}

	got, err := s.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d runs, want 3", len(got))
	}

	// Newest first
	if got[0].Path != "lib/data.ts" || got[2].Path != "app/page.tsx" {
		t.Errorf("order = %s, %s, %s", got[0].Path, got[1].Path, got[2].Path)
	}
	if !got[1].DryRun || got[0].DryRun {
		t.Error("dry_run flag not preserved")
	}
	if got[2].RulesApplied != 3 || got[2].Replacements != 7 || got[2].AfterHash != "bb" {
		t.Errorf("fields not preserved: %+v", got[2])
	}
	if !got[2].CreatedAt.Equal(base) {
		t.Errorf("CreatedAt = %v, want %v", got[2].CreatedAt, base)
	}

	ts, err := util.RunTime(got[0].ID)
	if err != nil {
		t.Fatalf("RunTime: %v", err)
	}
	if !ts.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("ID timestamp = %v", ts)
	}

	limited, err := s.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns(2): %v", err)
	}
	if len(limited) != 2 || limited[0].Path != "lib/data.ts" {
		t.Errorf("limited = %+v", limited)
	}
}

func TestListRunsFallsBackToIDTime(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	at := time.Date(2025, 11, 3, 8, 0, 0, 0, time.UTC)
	id := util.NewRunIDAt(at)
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO mojifix_runs (id, path, table_name, rules_applied, replacements, before_hash, after_hash, dry_run, created_at)
		VALUES (?, 'a.txt', 'built-in', 1, 1, 'x', 'y', 0, 'yesterday')`, id)
	if err != nil {
		t.Fatal(err)
	}

	runs, err := s.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 || !runs[0].CreatedAt.Equal(at) {
		t.Fatalf("runs = %+v, want CreatedAt %v", runs, at)
	}

	if _, err := s.conn.ExecContext(ctx, `UPDATE mojifix_runs SET id = 'not-a-ulid'`); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ListRuns(ctx, 0); err == nil {
		t.Error("expected error for unparseable timestamp and ID")
	}
}

func TestRecordRunDuplicateID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	r := &Run{ID: util.NewRunIDAt(time.Now()), Path: "a.txt", BeforeHash: "x", AfterHash: "y"}
	if err := s.RecordRun(ctx, r); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	dup := *r
	if err := s.RecordRun(ctx, &dup); err == nil {
		t.Error("expected primary key violation for duplicate ID")
	}
}

func TestOpenUnsupportedURL(t *testing.T) {
	_, err := Open(context.Background(), "mysql://localhost/runs")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, util.ErrJournalURL) {
		t.Errorf("error should match ErrJournalURL: %v", err)
	}
}

func TestOpenEmptySQLitePath(t *testing.T) {
	if _, err := Open(context.Background(), "sqlite:"); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestSQLitePath(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"sqlite:runs.db", "runs.db"},
		{"sqlite:/var/lib/mojifix/runs.db", "/var/lib/mojifix/runs.db"},
		{"sqlite://runs.db", "runs.db"},
		{"sqlite:///abs/runs.db", "/abs/runs.db"},
	}
	for _, tt := range tests {
		if got := sqlitePath(tt.url); got != tt.want {
			t.Errorf("sqlitePath(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestPostgresJournal(t *testing.T) {
	url := os.Getenv("MOJIFIX_TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("MOJIFIX_TEST_POSTGRES_URL not set")
	}
	ctx := context.Background()

	store, err := Open(ctx, url)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	r := &Run{Path: t.Name(), BeforeHash: "a", AfterHash: "b", RulesApplied: 1, Replacements: 2}
	if err := store.RecordRun(ctx, r); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	runs, err := store.ListRuns(ctx, 1)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != r.ID {
		t.Errorf("latest run = %+v, want ID %s", runs, r.ID)
	}
}
