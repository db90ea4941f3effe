// Package fixer applies a substitution table to files on disk: read with the
// source encoding, repair, write back with the destination encoding.
package fixer

import (
	"bytes"
	"context"
	"path/filepath"
	"sync"

	"github.com/imgajeed76/mojifix/internal/db"
	"github.com/imgajeed76/mojifix/internal/diff"
	"github.com/imgajeed76/mojifix/internal/repair"
	"github.com/imgajeed76/mojifix/internal/textio"
	"github.com/imgajeed76/mojifix/internal/util"
	"golang.org/x/sync/errgroup"
)

// SuccessMessage is printed after every file has been processed.
const SuccessMessage = "Emojis fixed successfully!"

// Recorder receives one journal entry per processed file.
// db.Store implements it.
type Recorder interface {
	RecordRun(ctx context.Context, r *db.Run) error
}

// Options controls a fix run.
type Options struct {
	Table     repair.Table
	TableName string
	Source    textio.Encoding
	Dest      textio.Encoding

	// DryRun computes the result and diff without touching the file.
	DryRun bool
	// Backup writes <path>.bak with the original bytes before replacing.
	Backup bool
	// Context is the number of unchanged lines around each diff hunk.
	Context int

	Recorder Recorder
}

// FileResult describes what happened to one file.
type FileResult struct {
	Path       string
	Counts     []int // occurrences per rule, in table order
	Total      int
	Changed    bool // repaired text differs from the decoded original
	Written    bool // bytes on disk were replaced
	BeforeHash string
	AfterHash  string
	Hunks      []diff.Hunk // only populated for dry runs
}

// RulesApplied returns the number of rules that matched at least once.
func (r *FileResult) RulesApplied() int {
	n := 0
	for _, c := range r.Counts {
		if c > 0 {
			n++
		}
	}
	return n
}

// FixFile repairs a single file. The file is rewritten when its encoded
// output differs from the bytes on disk, which covers both repaired text and
// a change of encoding (e.g. adding a byte-order marker).
func FixFile(ctx context.Context, path string, opts Options) (*FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := util.Logger().With("path", path)

	doc, err := textio.ReadFile(path, opts.Source)
	if err != nil {
		return nil, err
	}

	res := repair.Apply(doc.Text, opts.Table)

	out, err := opts.Dest.Encode(path, res.Text)
	if err != nil {
		return nil, err
	}

	result := &FileResult{
		Path:       path,
		Counts:     res.Counts,
		Total:      res.Total,
		Changed:    res.Changed(),
		BeforeHash: util.HashBytes(doc.Raw),
		AfterHash:  util.HashBytes(out),
	}
	needsWrite := !bytes.Equal(out, doc.Raw)

	switch {
	case opts.DryRun:
		if result.Changed {
			result.Hunks = diff.GenerateHunks(doc.Text, res.Text, opts.Context)
		}
		log.Debug("dry run", "replacements", res.Total, "would_write", needsWrite)

	case needsWrite:
		if opts.Backup {
			if err := textio.WriteBackup(doc); err != nil {
				return nil, err
			}
			log.Debug("backup written", "backup", textio.BackupPath(path))
		}
		if err := textio.WriteBytes(path, out, doc.Mode); err != nil {
			return nil, err
		}
		result.Written = true
		log.Debug("repaired", "replacements", res.Total, "rules", res.RulesApplied(), "encoding", opts.Dest)

	default:
		log.Debug("unchanged")
	}

	if opts.Recorder != nil {
		run := &db.Run{
			Path:         absPath(path),
			Table:        opts.TableName,
			RulesApplied: result.RulesApplied(),
			Replacements: result.Total,
			BeforeHash:   result.BeforeHash,
			AfterHash:    result.AfterHash,
			DryRun:       opts.DryRun,
		}
		if err := opts.Recorder.RecordRun(ctx, run); err != nil {
			// Journal failures are logged, not returned.
			log.Warn("failed to record run", "err", err)
		}
	}

	return result, nil
}

// FixFiles repairs paths concurrently with at most workers files in flight.
// Results are returned in input order. Duplicate paths are repaired once.
// The first error cancels files that have not started yet.
//
// onDone, if non-nil, is called after each successful file; calls are
// serialised.
func FixFiles(ctx context.Context, paths []string, opts Options, workers int, onDone func(*FileResult)) ([]*FileResult, error) {
	paths = UniquePaths(paths)
	results := make([]*FileResult, len(paths))
	if len(paths) == 0 {
		return results, nil
	}
	if workers < 1 {
		workers = 1
	}

	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(workers, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			r, err := FixFile(gctx, path, opts)
			if err != nil {
				return err
			}
			// index i is unique per goroutine
			results[i] = r
			if onDone != nil {
				mu.Lock()
				onDone(r)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Summary aggregates a batch of results.
type Summary struct {
	Files        int
	Changed      int
	Written      int
	Replacements int
}

// Summarize totals results; nil entries (files that never ran) are skipped.
func Summarize(results []*FileResult) Summary {
	var s Summary
	for _, r := range results {
		if r == nil {
			continue
		}
		s.Files++
		s.Replacements += r.Total
		if r.Changed {
			s.Changed++
		}
		if r.Written {
			s.Written++
		}
	}
	return s
}

// UniquePaths drops repeated paths, comparing absolute forms and keeping
// first occurrences in order.
func UniquePaths(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		key := absPath(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
