package cli

import (
	"fmt"
	"io"

	"github.com/imgajeed76/mojifix/internal/diff"
	"github.com/imgajeed76/mojifix/internal/fixer"
	"github.com/imgajeed76/mojifix/internal/ui"
	"github.com/imgajeed76/mojifix/internal/ui/styles"
	"github.com/imgajeed76/mojifix/internal/util"
	"github.com/spf13/cobra"
)

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix <file>...",
		Short: "Repair files in place",
		Long: `Repair mojibake sequences in the given files.

Each file is read with the source encoding, every rule of the substitution
table is applied in order, and the result is written back with the
destination encoding. Files whose bytes would not change are left alone.

Examples:
  mojifix fix app/page.tsx                   # Repair using the built-in table
  mojifix fix --dry-run app/*.tsx            # Show a diff, write nothing
  mojifix fix --backup app/page.tsx          # Keep app/page.tsx.bak
  mojifix fix --to utf-8 app/page.tsx        # Write without a byte-order marker
  mojifix fix --table fixes.toml src/*.ts    # Use a custom table
  mojifix fix --journal sqlite:runs.db a.ts  # Record the run`,
		RunE: runFix,
	}

	addTableFlags(cmd)
	cmd.Flags().String("to", "", "Encoding used to write files (default: config encoding.dest)")
	cmd.Flags().BoolP("dry-run", "n", false, "Show what would change without writing")
	cmd.Flags().Bool("backup", false, "Keep <file>.bak with the original bytes")
	cmd.Flags().IntP("workers", "j", 0, "Files repaired in parallel (default: config fix.workers)")
	cmd.Flags().String("journal", "", "Record runs to postgres://… or sqlite:<path>")
	cmd.Flags().IntP("context", "U", -1, "Context lines in --dry-run diffs (default: config fix.context)")

	return cmd
}

func runFix(cmd *cobra.Command, args []string) error {
	if err := requireFiles(args, "mojifix fix app/page.tsx"); err != nil {
		return err
	}

	env, err := loadRunEnv(cmd)
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	backup := env.cfg.Fix.Backup
	if cmd.Flags().Changed("backup") {
		backup, _ = cmd.Flags().GetBool("backup")
	}
	workers := env.cfg.Fix.Workers
	if w, _ := cmd.Flags().GetInt("workers"); w > 0 {
		workers = w
	}
	contextLines := env.cfg.Fix.Context
	if c, _ := cmd.Flags().GetInt("context"); c >= 0 {
		contextLines = c
	}
	journalURL := env.cfg.Journal.URL
	if cmd.Flags().Changed("journal") {
		journalURL, _ = cmd.Flags().GetString("journal")
	}

	ctx := cmd.Context()

	store, err := openJournal(ctx, journalURL)
	if err != nil {
		return err
	}
	defer closeStore(store)

	opts := fixer.Options{
		Table:     env.table,
		TableName: env.tableName,
		Source:    env.source,
		Dest:      env.dest,
		DryRun:    dryRun,
		Backup:    backup,
		Context:   contextLines,
	}
	if store != nil {
		opts.Recorder = store
	}

	paths := fixer.UniquePaths(args)

	// Progress bar only for interactive multi-file runs
	var progress *ui.Progress
	if len(paths) > 1 && ui.IsTTY() && !styles.IsAccessible() {
		progress = ui.NewProgress("Repairing", len(paths))
	}
	onDone := func(*fixer.FileResult) {
		if progress != nil {
			progress.Increment()
		}
	}

	results, err := fixer.FixFiles(ctx, paths, opts, workers, onDone)
	if progress != nil {
		progress.Done()
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, r := range results {
		printFileResult(out, r, dryRun)
	}

	sum := fixer.Summarize(results)
	util.Logger().Debug("fix finished",
		"files", sum.Files, "changed", sum.Changed, "written", sum.Written, "replacements", sum.Replacements)

	if dryRun {
		fmt.Fprintln(out)
		fmt.Fprintln(out, styles.Mutef("Dry run: %s would change, %s in total",
			plural(sum.Changed, "file"), plural(sum.Replacements, "replacement")))
		return nil
	}

	fmt.Fprintln(out, styles.SuccessMsg(fixer.SuccessMessage))
	return nil
}

func printFileResult(w io.Writer, r *fixer.FileResult, dryRun bool) {
	if dryRun {
		if len(r.Hunks) > 0 {
			fmt.Fprint(w, diff.Format(r.Path, r.Hunks, styles.NoColor()))
		}
		return
	}

	switch {
	case r.Changed:
		fmt.Fprintf(w, "%s %s %s\n",
			styles.Repaired("fixed"),
			r.Path,
			styles.Mutef("(%s, %s)", plural(r.Total, "replacement"), plural(r.RulesApplied(), "rule")))
	case r.Written:
		fmt.Fprintf(w, "%s %s %s\n", styles.Mute("rewrote"), r.Path, styles.Mute("(encoding only)"))
	default:
		fmt.Fprintf(w, "%s %s\n", styles.Mute("clean"), r.Path)
	}
}
