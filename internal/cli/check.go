package cli

import (
	"fmt"
	"strings"

	"github.com/imgajeed76/mojifix/internal/fixer"
	"github.com/imgajeed76/mojifix/internal/ui/styles"
	"github.com/imgajeed76/mojifix/internal/util"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Report corrupted sequences without writing",
		Long: `Count the sequences each file would have repaired, without touching it.

Exits with status 1 if any file contains corrupted sequences, so it can
guard a pre-commit hook or CI job.

Examples:
  mojifix check app/page.tsx
  mojifix check --quiet src/*.ts && echo clean`,
		RunE: runCheck,
	}

	addTableFlags(cmd)
	cmd.Flags().BoolP("quiet", "q", false, "Print nothing, only set the exit status")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	if err := requireFiles(args, "mojifix check app/page.tsx"); err != nil {
		return err
	}

	quiet, _ := cmd.Flags().GetBool("quiet")

	env, err := loadRunEnv(cmd)
	if err != nil {
		return err
	}

	opts := fixer.Options{
		Table:     env.table,
		TableName: env.tableName,
		Source:    env.source,
		Dest:      env.dest,
		DryRun:    true,
		Context:   0,
	}

	results, err := fixer.FixFiles(cmd.Context(), args, opts, env.cfg.Fix.Workers, nil)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	dirty := 0
	total := 0
	for _, r := range results {
		if r.Total == 0 {
			continue
		}
		dirty++
		total += r.Total
		if quiet {
			continue
		}

		var parts []string
		for i, n := range r.Counts {
			if n > 0 {
				parts = append(parts, fmt.Sprintf("%s ×%d", env.table[i].Name, n))
			}
		}
		fmt.Fprintf(out, "%s %s %s\n",
			styles.ErrorText(r.Path),
			styles.WarningText(plural(r.Total, "sequence")),
			styles.Mute("("+strings.Join(parts, ", ")+")"))
	}

	if dirty == 0 {
		if !quiet {
			fmt.Fprintln(out, styles.SuccessMsg(fmt.Sprintf("No corrupted sequences in %s", plural(len(results), "file"))))
		}
		return nil
	}

	if !quiet {
		fmt.Fprintln(out)
		fmt.Fprintln(out, styles.WarningMsg(fmt.Sprintf("%s in %s; run 'mojifix fix' to repair",
			plural(total, "corrupted sequence"), plural(dirty, "file"))))
	}
	return fmt.Errorf("%w: %d in %d files", util.ErrCorruptionFound, total, dirty)
}
